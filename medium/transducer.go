// Package medium translates the markup of Medium's post export into Mobiledoc.
//
// The export is a narrow HTML dialect with a handful of systematic artifacts:
// the post title repeated as the first heading, a leading section divider,
// footer boilerplate, one <pre> per line of code and quotations split into
// one <blockquote> per paragraph. The Transducer consumes the markup as a
// stream of tag and text events and repairs these while it builds the
// document. It is not a general HTML converter.
package medium

import (
	"html"
	"strings"

	"github.com/fwojciec/mediumghost"
)

// Markers the export uses for content that needs special handling.
const (
	// WideImagePath is part of the CDN URL Medium serves full-width images from.
	WideImagePath = "/max/1000/"

	// LinkSummaryClass marks the container of a link preview embed.
	LinkSummaryClass = "graf"

	// FeaturedAttr marks the post's featured image.
	FeaturedAttr = "data-is-featured"
)

// EmbedHosts are the script sources passed through as raw markup.
var EmbedHosts = []string{"gist.github.com"}

// Attr is a single tag attribute.
type Attr struct {
	Key string
	Val string
}

// Transducer builds a Mobiledoc document from the tag and text events of
// one exported post. A Transducer is single use: create one per post and
// call Finish once the last event has been delivered.
type Transducer struct {
	doc *mediumghost.Mobiledoc

	stack   []string
	markers []mediumghost.Marker
	items   [][]mediumghost.Marker

	lastBlock element
	lastQuote int // section index of the last blockquote, -1 if none
	code      int // card index of the code block being written, -1 if none

	inFooter      bool
	seenH3        bool
	seenHR        bool
	inLinkSummary bool

	finished bool
	err      error
}

// NewTransducer returns a Transducer with an empty document.
func NewTransducer() *Transducer {
	return &Transducer{
		doc:       mediumghost.NewMobiledoc(),
		lastQuote: -1,
		code:      -1,
	}
}

// OpenTag handles a start tag. name must be lower case.
func (t *Transducer) OpenTag(name string, attrs []Attr) {
	if t.inFooter {
		return
	}

	elem := lookup(name)
	if elem == elemFooter {
		t.inFooter = true
		return
	}

	a := newAttributes(attrs)

	if elem.exclusiveBlock() {
		t.checkNesting(name)
	}
	if !voidElements[name] {
		t.stack = append(t.stack, name)
	}

	switch elem {
	case elemP, elemH1, elemH2, elemH3, elemH4, elemBlockquote, elemUL, elemOL, elemDiv:
		t.markers = nil
		t.items = nil
		if elem == elemDiv && hasClass(a.get("class"), LinkSummaryClass) {
			t.inLinkSummary = true
		}
	case elemLI:
		t.markers = nil
	case elemA:
		t.doc.AddMarkup(mediumghost.LinkMarkup(a.get("href")))
	case elemImg:
		t.openImage(a)
	case elemPre:
		t.openPre()
	case elemIframe:
		t.addCard(&mediumghost.HTMLCard{HTML: rawTag(name, a)})
	case elemScript:
		if isEmbed(a.get("src")) {
			t.addCard(&mediumghost.HTMLCard{HTML: rawTag(name, a)})
		}
	case elemHR:
		// The export starts every post with a divider that is not content.
		if t.seenHR {
			t.addCard(&mediumghost.HRCard{})
		}
		t.seenHR = true
	case elemBR:
		if t.inside("pre") {
			t.appendCode("\n")
		} else {
			t.markers = append(t.markers, t.softReturn())
		}
	}
}

// CloseTag handles an end tag. name must be lower case.
func (t *Transducer) CloseTag(name string) {
	if t.inFooter || voidElements[name] {
		return
	}

	elem := lookup(name)
	markers := t.markers

	switch elem {
	case elemP:
		t.addMarkupSection("p", markers)
	case elemDiv:
		if t.inLinkSummary {
			t.inLinkSummary = false
			t.addMarkupSection("p", markers)
		}
	case elemLI:
		t.items = append(t.items, markers)
		t.markers = nil
	case elemUL:
		t.doc.AddSection(&mediumghost.ListSection{Tag: "ul", Items: t.items})
		t.items = nil
	case elemOL:
		t.doc.AddSection(&mediumghost.ListSection{Tag: "ol", Items: t.items})
		t.items = nil
	case elemBlockquote:
		t.closeBlockquote(markers)
	case elemH3:
		// The first h3 repeats the post title, which Ghost renders itself.
		if t.seenH3 {
			t.addMarkupSection("h2", markers)
		} else {
			t.markers = nil
		}
		t.seenH3 = true
	case elemH4:
		t.addMarkupSection("h3", markers)
	}

	if elem.tracksLastBlock() {
		t.lastBlock = elem
	}

	t.pop(name)
}

// Text handles a run of character data.
func (t *Transducer) Text(data string) {
	if t.inFooter || data == "" {
		return
	}

	if t.inside("figcaption") {
		t.appendCaption(data)
		return
	}

	if t.inside("pre") {
		t.appendCode(data)
		return
	}

	var markups []int
	if t.inside("a") {
		markups = append(markups, len(t.doc.Markups)-1)
	}
	if t.inside("em") {
		markups = append(markups, mediumghost.MarkupEm)
	}
	if t.inside("strong") {
		markups = append(markups, mediumghost.MarkupStrong)
	}

	t.markers = append(t.markers, mediumghost.TextMarker{Markups: markups, Text: data})
}

// Finish returns the completed document. It returns EINVALID if block
// elements were nested, which the export never does, or if called twice.
func (t *Transducer) Finish() (*mediumghost.Mobiledoc, error) {
	if t.finished {
		return nil, mediumghost.Errorf(mediumghost.EINVALID, "transducer already finished")
	}
	t.finished = true

	if t.err != nil {
		return nil, t.err
	}
	if err := t.doc.Validate(); err != nil {
		return nil, err
	}
	return t.doc, nil
}

func (t *Transducer) openImage(a attributes) {
	src := a.get("src")
	card := &mediumghost.ImageCard{Src: src}

	// Medium does not export display width, but wide images are served
	// from a larger CDN size.
	if strings.Contains(src, WideImagePath) {
		card.CardWidth = "wide"
	}
	if a.get(FeaturedAttr) == "true" {
		card.Featured = true
	}

	t.addCard(card)
}

func (t *Transducer) openPre() {
	// Each line of code is exported as its own <pre>.
	if t.lastBlock == elemPre && t.code >= 0 {
		t.appendCode("\n\n")
		return
	}
	t.code = t.addCard(&mediumghost.CodeCard{})
}

func (t *Transducer) closeBlockquote(markers []mediumghost.Marker) {
	if t.lastBlock != elemBlockquote || t.lastQuote < 0 {
		t.lastQuote = t.addMarkupSection("blockquote", markers)
		return
	}

	// Consecutive quotes are one quotation split by the export. The
	// earlier section is extended in place; it is not visible to anyone
	// until Finish.
	prev := t.doc.Sections[t.lastQuote].(*mediumghost.MarkupSection)
	prev.Markers = append(prev.Markers, t.softReturn())
	prev.Markers = append(prev.Markers, markers...)
	t.markers = nil
}

// addCard appends a card together with the section that places it.
func (t *Transducer) addCard(c mediumghost.Card) int {
	idx := t.doc.AddCard(c)
	t.doc.AddSection(&mediumghost.CardSection{Card: idx})
	t.lastBlock = elemIgnored
	return idx
}

func (t *Transducer) addMarkupSection(tag string, markers []mediumghost.Marker) int {
	t.markers = nil
	return t.doc.AddSection(&mediumghost.MarkupSection{Tag: tag, Markers: markers})
}

func (t *Transducer) softReturn() mediumghost.Marker {
	return mediumghost.AtomMarker{Atom: t.doc.AddAtom(mediumghost.SoftReturn())}
}

func (t *Transducer) appendCode(s string) {
	if t.code < 0 {
		return
	}
	t.doc.Cards[t.code].(*mediumghost.CodeCard).Code += s
}

// appendCaption captions the most recent card of any kind. Medium wraps
// both images and embeds in a <figure> with a <figcaption>.
func (t *Transducer) appendCaption(s string) {
	if len(t.doc.Cards) == 0 {
		return
	}
	t.doc.Cards[len(t.doc.Cards)-1].AppendCaption(s)
}

func (t *Transducer) checkNesting(name string) {
	if t.err != nil {
		return
	}
	if t.inLinkSummary {
		t.err = mediumghost.Errorf(mediumghost.EINVALID, "<%s> nested inside link summary", name)
		return
	}
	for i := len(t.stack) - 1; i >= 0; i-- {
		if lookup(t.stack[i]).exclusiveBlock() {
			t.err = mediumghost.Errorf(mediumghost.EINVALID, "<%s> nested inside <%s>", name, t.stack[i])
			return
		}
	}
}

func (t *Transducer) inside(name string) bool {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == name {
			return true
		}
	}
	return false
}

// pop removes the innermost open tag called name and everything opened
// after it. A close tag with no matching open tag is ignored.
func (t *Transducer) pop(name string) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == name {
			t.stack = t.stack[:i]
			return
		}
	}
}

// attributes holds a tag's attributes in first-seen order. A repeated key
// keeps its first position and takes the last value.
type attributes []Attr

func newAttributes(attrs []Attr) attributes {
	a := make(attributes, 0, len(attrs))
	for _, attr := range attrs {
		if i := a.index(attr.Key); i >= 0 {
			a[i].Val = attr.Val
			continue
		}
		a = append(a, attr)
	}
	return a
}

func (a attributes) index(key string) int {
	for i := range a {
		if a[i].Key == key {
			return i
		}
	}
	return -1
}

func (a attributes) get(key string) string {
	if i := a.index(key); i >= 0 {
		return a[i].Val
	}
	return ""
}

// rawTag renders an empty element with its attributes.
func rawTag(name string, a attributes) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	for _, attr := range a {
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteString(`"`)
	}
	b.WriteString("></")
	b.WriteString(name)
	b.WriteString(">")
	return b.String()
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

func isEmbed(src string) bool {
	for _, host := range EmbedHosts {
		if strings.Contains(src, host) {
			return true
		}
	}
	return false
}
