package extract

import (
	"strings"
)

// Block is the text of one comment with the comment markers stripped.
type Block struct {
	// File is the path of the source file
	File string
	// Line is the 1-based line of the first line of Text in File
	Line int
	// Index is the position of the block among the blocks of File
	Index int
	// Text is the comment content, one source line per line
	Text string
}

// LineAt returns the absolute source line of the given 0-based line of Text.
func (b Block) LineAt(offset int) int {
	if b.Line <= 0 {
		return offset + 1
	}
	return b.Line + offset
}

// Lines splits Text into lines.
func (b Block) Lines() []string {
	return strings.Split(b.Text, "\n")
}
