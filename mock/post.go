package mock

import (
	"context"

	"github.com/fwojciec/mediumghost"
)

var _ mediumghost.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of mediumghost.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*mediumghost.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*mediumghost.Metadata, error) {
	return e.ExtractMetadataFn(html)
}

var _ mediumghost.Parser = (*Parser)(nil)

// Parser is a mock implementation of mediumghost.Parser.
type Parser struct {
	ParseFn func(html string) (*mediumghost.Mobiledoc, error)
}

func (p *Parser) Parse(html string) (*mediumghost.Mobiledoc, error) {
	return p.ParseFn(html)
}

var _ mediumghost.PostSource = (*PostSource)(nil)

// PostSource is a mock implementation of mediumghost.PostSource.
type PostSource struct {
	PostsFn func(ctx context.Context) ([]*mediumghost.PostFile, error)
}

func (s *PostSource) Posts(ctx context.Context) ([]*mediumghost.PostFile, error) {
	return s.PostsFn(ctx)
}

var _ mediumghost.Converter = (*Converter)(nil)

// Converter is a mock implementation of mediumghost.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
