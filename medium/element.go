package medium

// element is the closed set of tags the transducer acts on. Every other tag
// maps to elemIgnored and only takes part in stack bookkeeping.
type element int

const (
	elemIgnored element = iota
	elemA
	elemBlockquote
	elemBR
	elemDiv
	elemEm
	elemFigcaption
	elemFooter
	elemH1
	elemH2
	elemH3
	elemH4
	elemHR
	elemIframe
	elemImg
	elemLI
	elemOL
	elemP
	elemPre
	elemScript
	elemStrong
	elemUL
)

var elements = map[string]element{
	"a":          elemA,
	"blockquote": elemBlockquote,
	"br":         elemBR,
	"div":        elemDiv,
	"em":         elemEm,
	"figcaption": elemFigcaption,
	"footer":     elemFooter,
	"h1":         elemH1,
	"h2":         elemH2,
	"h3":         elemH3,
	"h4":         elemH4,
	"hr":         elemHR,
	"iframe":     elemIframe,
	"img":        elemImg,
	"li":         elemLI,
	"ol":         elemOL,
	"p":          elemP,
	"pre":        elemPre,
	"script":     elemScript,
	"strong":     elemStrong,
	"ul":         elemUL,
}

func lookup(name string) element {
	return elements[name]
}

// startsBlock reports whether the element opens a container whose text is
// collected into the marker accumulators.
func (e element) startsBlock() bool {
	switch e {
	case elemP, elemH1, elemH2, elemH3, elemH4, elemBlockquote, elemUL, elemOL, elemDiv:
		return true
	}
	return false
}

// exclusiveBlock reports whether the element may not be nested inside
// another exclusive block. div is excluded because the export wraps every
// section of a post in layout divs.
func (e element) exclusiveBlock() bool {
	return e.startsBlock() && e != elemDiv
}

// tracksLastBlock reports whether closing the element is remembered for
// merging split code blocks and quotations.
func (e element) tracksLastBlock() bool {
	switch e {
	case elemP, elemBlockquote, elemH3, elemH4, elemPre, elemOL, elemUL, elemDiv:
		return true
	}
	return false
}

// voidElements never receive a close tag, so they are never pushed.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}
