package dialect

import (
	"fmt"
	"strings"

	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/node"
)

// Kind identifies the dialect of a block.
type Kind int

const (
	// KindNone marks a comment that is not an annotation.
	KindNone Kind = iota
	// KindXML marks an <api> element.
	KindXML
	// KindHeader marks an @api header block.
	KindHeader
)

// String returns the dialect name.
func (k Kind) String() string {
	switch k {
	case KindXML:
		return "xml"
	case KindHeader:
		return "header"
	default:
		return "none"
	}
}

// Parser turns one annotation block into a generic node tree rooted at an
// "api" node.
type Parser interface {
	Parse(block extract.Block) (*node.Node, error)
}

var parsers = map[Kind]Parser{
	KindXML:    XMLParser{},
	KindHeader: HeaderParser{},
}

// Register installs the parser for a dialect, replacing any previous one.
// It is meant to be called from init functions.
func Register(kind Kind, p Parser) {
	parsers[kind] = p
}

// ParserFor returns the parser registered for kind.
func ParserFor(kind Kind) (Parser, bool) {
	p, ok := parsers[kind]
	return p, ok
}

// Parse detects the dialect of block and parses it. For a block that is not
// an annotation it returns a nil node, KindNone, and no error.
func Parse(block extract.Block) (*node.Node, Kind, error) {
	kind := Detect(block.Text)
	if kind == KindNone {
		return nil, KindNone, nil
	}
	p, ok := ParserFor(kind)
	if !ok {
		return nil, kind, fmt.Errorf("dialect: no parser registered for %s", kind)
	}
	n, err := p.Parse(block)
	return n, kind, err
}

// Detect classifies a block by its first significant characters.
// Leading whitespace, XML declarations, processing instructions, and XML
// comments are skipped before looking for <api or @api.
func Detect(text string) Kind {
	rest := skipProlog(text)
	switch {
	case hasWord(rest, "<api"):
		return KindXML
	case hasWord(rest, "@api"):
		return KindHeader
	default:
		return KindNone
	}
}

// skipProlog drops whitespace, <?...?> and <!--...--> from the start of text.
func skipProlog(text string) string {
	for {
		text = strings.TrimLeft(text, " \t\r\n")
		var end string
		switch {
		case strings.HasPrefix(text, "<?"):
			end = "?>"
		case strings.HasPrefix(text, "<!--"):
			end = "-->"
		default:
			return text
		}
		idx := strings.Index(text, end)
		if idx < 0 {
			return text
		}
		text = text[idx+len(end):]
	}
}

// hasWord reports whether text starts with prefix followed by a delimiter,
// so that "<apidoc" and "@apis" do not match.
func hasWord(text, prefix string) bool {
	if !strings.HasPrefix(text, prefix) {
		return false
	}
	if len(text) == len(prefix) {
		return true
	}
	switch text[len(prefix)] {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}
