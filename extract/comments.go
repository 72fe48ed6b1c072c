package extract

import (
	"strings"
)

// commentScanner walks source text and collects comments, skipping string
// literals. The text is scanned with a leading newline so that markers
// anchored at the start of a line (ruby's =begin) also match on line 1.
type commentScanner struct {
	lang *Language
	src  string
	pos  int
	line int

	lineHasCode bool
}

// Extract returns the comment blocks of content written in lang.
// Consecutive line comments that each start their own line form one block;
// a comment trailing code and every block comment is a block of its own.
func Extract(lang *Language, file, content string) []Block {
	s := &commentScanner{
		lang: lang,
		src:  "\n" + strings.ReplaceAll(content, "\r\n", "\n"),
	}

	var (
		blocks   []Block
		run      []string
		runStart int
		runLast  int
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		blocks = append(blocks, Block{File: file, Line: runStart, Index: len(blocks), Text: strings.Join(run, "\n")})
		run = nil
	}

	for s.pos < len(s.src) {
		if d, ok := s.matchDelim(lang.BlockComments); ok {
			flush()
			s.advance(len(d.Begin))
			start := s.line
			body := s.until(d.End, "")
			blocks = append(blocks, Block{File: file, Line: start, Index: len(blocks), Text: stripStars(body)})
			s.lineHasCode = true
			continue
		}

		if marker, ok := s.matchMarker(lang.LineComments); ok {
			trailing := s.lineHasCode
			if trailing || len(run) == 0 || s.line != runLast+1 {
				flush()
				runStart = s.line
			}
			s.advance(len(marker))
			text := s.restOfLine()
			text = strings.TrimPrefix(text, " ")
			run = append(run, strings.TrimRight(text, " \t"))
			runLast = s.line
			// a comment after code never joins the lines below it
			if trailing {
				flush()
			}
			continue
		}

		if d, ok := s.matchDelim(lang.Strings); ok {
			flush()
			s.advance(len(d.Begin))
			s.until(d.End, d.Escape)
			s.lineHasCode = true
			continue
		}

		switch s.src[s.pos] {
		case '\n':
			s.lineHasCode = false
		case ' ', '\t':
		default:
			flush()
			s.lineHasCode = true
		}
		s.advance(1)
	}
	flush()
	return blocks
}

func (s *commentScanner) matchDelim(delims []Delim) (Delim, bool) {
	for _, d := range delims {
		if strings.HasPrefix(s.src[s.pos:], d.Begin) {
			return d, true
		}
	}
	return Delim{}, false
}

func (s *commentScanner) matchMarker(markers []string) (string, bool) {
	for _, m := range markers {
		if strings.HasPrefix(s.src[s.pos:], m) {
			return m, true
		}
	}
	return "", false
}

// advance moves forward n bytes, counting newlines.
func (s *commentScanner) advance(n int) {
	end := min(s.pos+n, len(s.src))
	s.line += strings.Count(s.src[s.pos:end], "\n")
	s.pos = end
}

// until consumes up to and including end and returns the text before it.
// With a non-empty escape, the byte after the escape sequence is skipped.
// An unterminated construct runs to the end of the source.
func (s *commentScanner) until(end, escape string) string {
	start := s.pos
	for s.pos < len(s.src) {
		rest := s.src[s.pos:]
		switch {
		case escape != "" && strings.HasPrefix(rest, escape):
			s.advance(len(escape) + 1)
		case strings.HasPrefix(rest, end):
			text := s.src[start:s.pos]
			s.advance(len(end))
			return text
		default:
			s.advance(1)
		}
	}
	return s.src[start:]
}

// restOfLine consumes the text up to, but not including, the next newline.
func (s *commentScanner) restOfLine() string {
	start := s.pos
	idx := strings.IndexByte(s.src[s.pos:], '\n')
	if idx < 0 {
		s.pos = len(s.src)
	} else {
		s.pos += idx
	}
	return s.src[start:s.pos]
}

// stripStars removes the decorative leading "*" of javadoc-style lines.
func stripStars(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case trimmed == "*":
			lines[i] = ""
		case strings.HasPrefix(trimmed, "* "):
			lines[i] = trimmed[2:]
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
