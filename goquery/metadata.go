package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mediumghost"
)

// Ensure Extractor implements mediumghost.MetadataExtractor at compile time.
var _ mediumghost.MetadataExtractor = (*Extractor)(nil)

// Selectors for the post-level elements of a Medium export.
const (
	TitleSelector    = "h1.p-name"
	SubtitleSelector = "section.p-summary"
)

// TitleMarkerSelectors locate the title heading at the top of a post body,
// in order of preference. Older posts use h2.
var TitleMarkerSelectors = []string{"h3.graf--title", "h2.graf--title"}

// Extractor reads post metadata from exported post markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata returns the title, subtitle and title-marker presence of a
// post. Missing elements yield empty fields; it is up to the caller to decide
// whether a post without them is usable.
func (e *Extractor) ExtractMetadata(html string) (*mediumghost.Metadata, error) {
	if strings.TrimSpace(html) == "" {
		return nil, mediumghost.Errorf(mediumghost.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mediumghost.Errorf(mediumghost.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := &mediumghost.Metadata{
		Title:    firstText(doc, TitleSelector),
		Subtitle: firstText(doc, SubtitleSelector),
	}

	for _, sel := range TitleMarkerSelectors {
		if doc.Find(sel).Length() > 0 {
			meta.HasTitleMarker = true
			break
		}
	}

	return meta, nil
}

func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
