package dialect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/node"
)

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

var standardEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": `"`,
}

// XMLParser parses the XML dialect with a recursive-descent parser.
//
// CDATA sections are copied verbatim into the text of their element.
// Character data outside CDATA is trimmed and entity-decoded; whitespace
// between elements is dropped.
type XMLParser struct{}

// Parse parses one <api> element.
func (XMLParser) Parse(block extract.Block) (*node.Node, error) {
	p := &xmlParser{block: block, src: block.Text, newlines: newlineOffsets(block.Text)}
	return p.parse()
}

type xmlParser struct {
	block    extract.Block
	src      string
	pos      int
	newlines []int // byte offsets of every '\n' in src, ascending
}

func newlineOffsets(src string) []int {
	offsets := make([]int, 0, strings.Count(src, "\n"))
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func (p *xmlParser) parse() (*node.Node, error) {
	if err := p.skipMisc(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(p.rest(), "<") {
		return nil, p.errorf(p.pos, "expected <api> element")
	}
	start := p.pos
	root, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	if root.Name != "api" {
		return nil, p.errorf(start, "root element must be <api>, found <%s>", root.Name)
	}
	if err := p.skipMisc(); err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf(p.pos, "unexpected content after </api>")
	}
	return root, nil
}

// parseElement parses an element starting at '<', including its children.
func (p *xmlParser) parseElement() (*node.Node, error) {
	start := p.pos
	p.pos++
	name := p.scanName()
	if name == "" {
		return nil, p.errorf(start, "expected element name after '<'")
	}
	n := node.New(name, p.lineOf(start))

	selfClosing, err := p.parseAttrs(n, start)
	if err != nil {
		return nil, err
	}
	if selfClosing {
		finishElement(n)
		return n, nil
	}

	var (
		text    strings.Builder
		hasText bool
	)
	for {
		if p.pos >= len(p.src) {
			return nil, p.errorf(start, "element <%s> is never closed", name)
		}
		rest := p.rest()
		switch {
		case strings.HasPrefix(rest, cdataOpen):
			end := strings.Index(rest, cdataClose)
			if end < 0 {
				return nil, p.errorf(p.pos, "unterminated CDATA section")
			}
			text.WriteString(rest[len(cdataOpen):end])
			hasText = true
			p.pos += end + len(cdataClose)

		case strings.HasPrefix(rest, "<!--"):
			if err := p.skipComment(); err != nil {
				return nil, err
			}

		case strings.HasPrefix(rest, "</"):
			closeStart := p.pos
			p.pos += 2
			closeName := p.scanName()
			p.skipSpace()
			if !strings.HasPrefix(p.rest(), ">") {
				return nil, p.errorf(closeStart, "malformed closing tag </%s", closeName)
			}
			p.pos++
			if closeName != name {
				return nil, p.errorf(start, "element <%s> closed by </%s> at line %d", name, closeName, p.lineOf(closeStart))
			}
			if hasText {
				n.SetText(text.String())
			}
			finishElement(n)
			return n, nil

		case rest[0] == '<':
			child, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)

		default:
			end := strings.IndexByte(rest, '<')
			if end < 0 {
				end = len(rest)
			}
			if chunk := strings.TrimSpace(rest[:end]); chunk != "" {
				text.WriteString(unescape(chunk))
				hasText = true
			}
			p.pos += end
		}
	}
}

// parseAttrs reads attributes up to the end of the start tag and reports
// whether the element is self-closing.
func (p *xmlParser) parseAttrs(n *node.Node, start int) (bool, error) {
	for {
		p.skipSpace()
		rest := p.rest()
		switch {
		case rest == "":
			return false, p.errorf(start, "start tag <%s is never closed", n.Name)
		case strings.HasPrefix(rest, "/>"):
			p.pos += 2
			return true, nil
		case rest[0] == '>':
			p.pos++
			return false, nil
		}

		attrStart := p.pos
		key := p.scanName()
		if key == "" {
			r, _ := utf8.DecodeRuneInString(rest)
			return false, p.errorf(p.pos, "unexpected character %q in <%s>", r, n.Name)
		}
		p.skipSpace()
		if !strings.HasPrefix(p.rest(), "=") {
			return false, p.errorf(attrStart, "attribute %s of <%s> has no value", key, n.Name)
		}
		p.pos++
		p.skipSpace()
		rest = p.rest()
		if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
			return false, p.errorf(attrStart, "value of attribute %s must be quoted", key)
		}
		quote := rest[0]
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return false, p.errorf(attrStart, "unterminated value for attribute %s", key)
		}
		if _, dup := n.Get(key); dup {
			return false, p.errorf(attrStart, "duplicate attribute %s on <%s>", key, n.Name)
		}
		n.Attrs = append(n.Attrs, node.Attr{Key: key, Value: unescape(rest[1 : end+1])})
		p.pos += end + 2
	}
}

// skipMisc skips whitespace, processing instructions, and comments.
func (p *xmlParser) skipMisc() error {
	for {
		p.skipSpace()
		rest := p.rest()
		switch {
		case strings.HasPrefix(rest, "<?"):
			end := strings.Index(rest, "?>")
			if end < 0 {
				return p.errorf(p.pos, "unterminated processing instruction")
			}
			p.pos += end + 2
		case strings.HasPrefix(rest, "<!--"):
			if err := p.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *xmlParser) skipComment() error {
	end := strings.Index(p.rest(), "-->")
	if end < 0 {
		return p.errorf(p.pos, "unterminated comment")
	}
	p.pos += end + 3
	return nil
}

func (p *xmlParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *xmlParser) scanName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isNameByte(c, p.pos == start) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9', c == '-', c == '.', c == ':':
		return !first
	}
	return false
}

func (p *xmlParser) rest() string {
	return p.src[p.pos:]
}

// linesBefore returns the number of newlines in src[:pos].
func (p *xmlParser) linesBefore(pos int) int {
	return sort.SearchInts(p.newlines, pos)
}

func (p *xmlParser) lineOf(pos int) int {
	return p.block.LineAt(p.linesBefore(pos))
}

func (p *xmlParser) columnOf(pos int) int {
	n := p.linesBefore(pos)
	if n == 0 {
		return pos + 1
	}
	return pos - p.newlines[n-1]
}

func (p *xmlParser) errorf(pos int, format string, args ...any) error {
	return &docerrors.LexError{
		File:    p.block.File,
		Line:    p.lineOf(pos),
		Column:  p.columnOf(pos),
		Message: fmt.Sprintf(format, args...),
	}
}

// finishElement applies element-specific rules once an element is complete.
func finishElement(n *node.Node) {
	if n.Name == "description" && strings.EqualFold(n.Attr("type"), "html") {
		n.TextIsHTML = true
	}
}

// unescape decodes entity and character references. Text that does not
// form a valid reference is kept as written.
func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			sb.WriteByte(s[i])
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 2 {
			sb.WriteByte('&')
			continue
		}
		ref := s[i+1 : i+semi]
		if replacement, ok := resolveEntity(ref); ok {
			sb.WriteString(replacement)
			i += semi
			continue
		}
		sb.WriteByte('&')
	}
	return sb.String()
}

func resolveEntity(ref string) (string, bool) {
	if v, ok := standardEntities[ref]; ok {
		return v, true
	}
	if !strings.HasPrefix(ref, "#") {
		return "", false
	}
	var (
		code uint64
		err  error
	)
	if strings.HasPrefix(ref, "#x") || strings.HasPrefix(ref, "#X") {
		code, err = strconv.ParseUint(ref[2:], 16, 32)
	} else {
		code, err = strconv.ParseUint(ref[1:], 10, 32)
	}
	if err != nil || !utf8.ValidRune(rune(code)) {
		return "", false
	}
	return string(rune(code)), true
}
