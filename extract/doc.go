// Package extract turns source files into raw annotation blocks.
//
// A [Source] yields [Block] values: the text of one comment with the
// comment syntax removed, plus the file and 1-based line the comment starts
// on. Comment syntax is described per language in a [Language] table;
// string literals are skipped so that comment markers inside strings are
// ignored. Non-UTF-8 files are decoded through golang.org/x/text.
package extract
