package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Encodings lists commonly used source encodings. Any label known to the
// WHATWG encoding index is accepted.
func Encodings() []string {
	return []string{"utf-8", "gbk", "gb18030", "big5", "shift_jis", "euc-jp", "euc-kr", "utf-16le", "utf-16be", "windows-1252"}
}

// IsUTF8Encoding reports whether name selects UTF-8 (the default).
func IsUTF8Encoding(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// CheckEncoding reports whether name is a usable encoding label.
func CheckEncoding(name string) error {
	if IsUTF8Encoding(name) {
		return nil
	}
	if _, err := htmlindex.Get(name); err != nil {
		return fmt.Errorf("extract: unsupported encoding %q", name)
	}
	return nil
}

// Decode converts data in the named encoding to UTF-8 text.
func Decode(data []byte, encoding string) (string, error) {
	if IsUTF8Encoding(encoding) {
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("extract: content is not valid UTF-8 (set an encoding)")
		}
		return string(data), nil
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return "", fmt.Errorf("extract: unsupported encoding %q", encoding)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("extract: decoding %s: %w", encoding, err)
	}
	return string(out), nil
}
