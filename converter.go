package mediumghost

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Used to fill the plain-text rendition Ghost keeps next to the
	// Mobiledoc body.
	Convert(html string) (string, error)
}
