// Package nethtml implements mediumghost.Parser on top of the
// golang.org/x/net/html tokenizer.
package nethtml

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/mediumghost"
	"github.com/fwojciec/mediumghost/medium"
	"golang.org/x/net/html"
)

// Ensure Parser implements mediumghost.Parser at compile time.
var _ mediumghost.Parser = (*Parser)(nil)

// Parser converts exported post markup into Mobiledoc. It holds no state
// between calls and is safe for concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse tokenizes markup and feeds the tokens, in document order, to a new
// medium.Transducer. Tag names and attribute keys arrive lower-cased and
// text arrives with entities decoded. Comments and doctypes are dropped.
func (p *Parser) Parse(markup string) (*mediumghost.Mobiledoc, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, mediumghost.Errorf(mediumghost.EINVALID, "empty HTML input")
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	tr := medium.NewTransducer()

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, mediumghost.Errorf(mediumghost.EINVALID, "tokenize post markup: %v", err)
			}
			return tr.Finish()
		case html.StartTagToken:
			tok := z.Token()
			tr.OpenTag(tok.Data, attrs(tok.Attr))
		case html.SelfClosingTagToken:
			tok := z.Token()
			tr.OpenTag(tok.Data, attrs(tok.Attr))
			tr.CloseTag(tok.Data)
		case html.EndTagToken:
			tok := z.Token()
			tr.CloseTag(tok.Data)
		case html.TextToken:
			tr.Text(string(z.Text()))
		}
	}
}

func attrs(in []html.Attribute) []medium.Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]medium.Attr, 0, len(in))
	for _, a := range in {
		out = append(out, medium.Attr{Key: a.Key, Val: a.Val})
	}
	return out
}
