package mediumghost

import (
	"encoding/json"
)

// MobiledocVersion is the Mobiledoc format version understood by Ghost 2.x.
const MobiledocVersion = "0.3.1"

// Markups every document starts with, at fixed indices.
const (
	MarkupEm     = 0
	MarkupStrong = 1
)

// AtomSoftReturn is the name of the atom Ghost renders as a line break.
const AtomSoftReturn = "soft-return"

// Section type identifiers from the Mobiledoc 0.3 format.
const (
	sectionMarkup = 1
	sectionList   = 3
	sectionCard   = 10
)

// Marker type identifiers from the Mobiledoc 0.3 format.
const (
	markerText = 0
	markerAtom = 1
)

// Mobiledoc is a rich-text document in Ghost's editor format.
//
// Cards, markups and atoms are arenas: they are only ever appended to, and
// sections and markers refer to their entries by index.
type Mobiledoc struct {
	Version  string
	Atoms    []Atom
	Cards    []Card
	Markups  []Markup
	Sections []Section
}

// NewMobiledoc returns an empty document with the em and strong markups
// already registered at MarkupEm and MarkupStrong.
func NewMobiledoc() *Mobiledoc {
	return &Mobiledoc{
		Version:  MobiledocVersion,
		Atoms:    []Atom{},
		Cards:    []Card{},
		Markups:  []Markup{{Tag: "em"}, {Tag: "strong"}},
		Sections: []Section{},
	}
}

// AddMarkup appends a markup and returns its index.
func (d *Mobiledoc) AddMarkup(m Markup) int {
	d.Markups = append(d.Markups, m)
	return len(d.Markups) - 1
}

// AddAtom appends an atom and returns its index.
func (d *Mobiledoc) AddAtom(a Atom) int {
	d.Atoms = append(d.Atoms, a)
	return len(d.Atoms) - 1
}

// AddCard appends a card and returns its index.
func (d *Mobiledoc) AddCard(c Card) int {
	d.Cards = append(d.Cards, c)
	return len(d.Cards) - 1
}

// AddSection appends a section and returns its index.
func (d *Mobiledoc) AddSection(s Section) int {
	d.Sections = append(d.Sections, s)
	return len(d.Sections) - 1
}

// Images returns the image cards in document order.
func (d *Mobiledoc) Images() []*ImageCard {
	var images []*ImageCard
	for _, c := range d.Cards {
		if img, ok := c.(*ImageCard); ok {
			images = append(images, img)
		}
	}
	return images
}

// Validate returns an error if any section or marker refers to a card,
// markup or atom that does not exist.
func (d *Mobiledoc) Validate() error {
	if d.Version == "" {
		return Errorf(EINVALID, "mobiledoc version required")
	}
	for i, s := range d.Sections {
		switch s := s.(type) {
		case *MarkupSection:
			if err := d.validateMarkers(s.Markers); err != nil {
				return Errorf(EINVALID, "section %d: %s", i, ErrorMessage(err))
			}
		case *ListSection:
			for _, item := range s.Items {
				if err := d.validateMarkers(item); err != nil {
					return Errorf(EINVALID, "section %d: %s", i, ErrorMessage(err))
				}
			}
		case *CardSection:
			if s.Card < 0 || s.Card >= len(d.Cards) {
				return Errorf(EINVALID, "section %d: card %d out of range", i, s.Card)
			}
		}
	}
	return nil
}

func (d *Mobiledoc) validateMarkers(markers []Marker) error {
	for _, m := range markers {
		switch m := m.(type) {
		case TextMarker:
			for _, idx := range m.Markups {
				if idx < 0 || idx >= len(d.Markups) {
					return Errorf(EINVALID, "markup %d out of range", idx)
				}
			}
		case AtomMarker:
			if m.Atom < 0 || m.Atom >= len(d.Atoms) {
				return Errorf(EINVALID, "atom %d out of range", m.Atom)
			}
		}
	}
	return nil
}

// MarshalJSON encodes the document in Mobiledoc's array-based wire format.
func (d *Mobiledoc) MarshalJSON() ([]byte, error) {
	cards := make([][2]any, 0, len(d.Cards))
	for _, c := range d.Cards {
		cards = append(cards, [2]any{c.CardName(), c})
	}
	return json.Marshal(struct {
		Version  string    `json:"version"`
		Atoms    []Atom    `json:"atoms"`
		Cards    [][2]any  `json:"cards"`
		Markups  []Markup  `json:"markups"`
		Sections []Section `json:"sections"`
	}{
		Version:  d.Version,
		Atoms:    orEmpty(d.Atoms),
		Cards:    cards,
		Markups:  orEmpty(d.Markups),
		Sections: orEmpty(d.Sections),
	})
}

// Markup is an inline formatting definition: a bare tag such as em, or a
// link carrying its href.
type Markup struct {
	Tag  string
	Href string
}

// LinkMarkup returns an anchor markup pointing at href.
func LinkMarkup(href string) Markup {
	return Markup{Tag: "a", Href: href}
}

// MarshalJSON encodes the markup as ["em"] or ["a", ["href", url]].
func (m Markup) MarshalJSON() ([]byte, error) {
	if m.Tag == "a" {
		return json.Marshal([]any{m.Tag, []string{"href", m.Href}})
	}
	return json.Marshal([]string{m.Tag})
}

// Atom is a zero-width inline element.
type Atom struct {
	Name    string
	Text    string
	Payload map[string]any
}

// SoftReturn returns a soft-return atom.
func SoftReturn() Atom {
	return Atom{Name: AtomSoftReturn}
}

// MarshalJSON encodes the atom as [name, text, payload].
func (a Atom) MarshalJSON() ([]byte, error) {
	payload := a.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return json.Marshal([]any{a.Name, a.Text, payload})
}

// Card is a block-level embed. The card itself is encoded as the payload;
// CardName is the card type Ghost dispatches on. Every card kind can carry
// a caption; AppendCaption adds text to it.
type Card interface {
	CardName() string
	AppendCaption(text string)
}

// ImageCard is an image embed.
type ImageCard struct {
	Src       string `json:"src"`
	CardWidth string `json:"cardWidth,omitempty"`
	Caption   string `json:"caption,omitempty"`

	// Featured marks the post's featured image. It is post metadata and is
	// never written into the card payload.
	Featured bool `json:"-"`
}

func (*ImageCard) CardName() string { return "image" }

func (c *ImageCard) AppendCaption(text string) { c.Caption += text }

// CodeCard is a preformatted code block.
type CodeCard struct {
	Code    string `json:"code"`
	Caption string `json:"caption,omitempty"`
}

func (*CodeCard) CardName() string { return "code" }

func (c *CodeCard) AppendCaption(text string) { c.Caption += text }

// HTMLCard is raw markup passed through to the rendered post.
type HTMLCard struct {
	HTML    string `json:"html"`
	Caption string `json:"caption,omitempty"`
}

func (*HTMLCard) CardName() string { return "html" }

func (c *HTMLCard) AppendCaption(text string) { c.Caption += text }

// HRCard is a horizontal rule.
type HRCard struct {
	Caption string `json:"caption,omitempty"`
}

func (*HRCard) CardName() string { return "hr" }

func (c *HRCard) AppendCaption(text string) { c.Caption += text }

// Section is one block of the document in reading order.
type Section interface {
	json.Marshaler
	sectionType() int
}

// MarkupSection is a paragraph, heading or blockquote.
type MarkupSection struct {
	Tag     string
	Markers []Marker
}

func (*MarkupSection) sectionType() int { return sectionMarkup }

// MarshalJSON encodes the section as [1, tag, markers].
func (s *MarkupSection) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{sectionMarkup, s.Tag, orEmpty(s.Markers)})
}

// ListSection is an ordered (ol) or unordered (ul) list.
type ListSection struct {
	Tag   string
	Items [][]Marker
}

func (*ListSection) sectionType() int { return sectionList }

// MarshalJSON encodes the section as [3, tag, items].
func (s *ListSection) MarshalJSON() ([]byte, error) {
	items := make([][]Marker, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, orEmpty(item))
	}
	return json.Marshal([]any{sectionList, s.Tag, items})
}

// CardSection places the card at index Card into the document.
type CardSection struct {
	Card int
}

func (*CardSection) sectionType() int { return sectionCard }

// MarshalJSON encodes the section as [10, cardIndex].
func (s *CardSection) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{sectionCard, s.Card})
}

// Marker is an inline run inside a section.
type Marker interface {
	json.Marshaler
	isMarker()
}

// TextMarker is a run of text with the markups active for it. Every markup
// it opens is closed again at the end of the run.
type TextMarker struct {
	Markups []int
	Text    string
}

func (TextMarker) isMarker() {}

// MarshalJSON encodes the marker as [0, markups, len(markups), text].
func (m TextMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{markerText, orEmpty(m.Markups), len(m.Markups), m.Text})
}

// AtomMarker places the atom at index Atom into a section.
type AtomMarker struct {
	Atom int
}

func (AtomMarker) isMarker() {}

// MarshalJSON encodes the marker as [1, [], 0, atomIndex].
func (m AtomMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{markerAtom, []int{}, 0, m.Atom})
}

// orEmpty keeps nil slices from encoding as JSON null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
