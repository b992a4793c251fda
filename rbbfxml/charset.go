package rbbfxml

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Charset selects how the bytes of string values are turned into text.
type Charset string

const (
	// CharsetASCII maps bytes above 0x7F to '?'.
	CharsetASCII       Charset = "ascii"
	CharsetLatin1      Charset = "latin1"
	CharsetWindows1252 Charset = "windows-1252"
	CharsetMacintosh   Charset = "macintosh"
	// CharsetUTF8 replaces invalid sequences with U+FFFD.
	CharsetUTF8 Charset = "utf-8"
)

// ParseCharset returns the charset with the given name. Names are matched
// without regard to case; an empty name selects CharsetASCII.
func ParseCharset(s string) (Charset, error) {
	switch c := Charset(strings.ToLower(s)); c {
	case "":
		return CharsetASCII, nil
	case CharsetASCII, CharsetLatin1, CharsetWindows1252, CharsetMacintosh, CharsetUTF8:
		return c, nil
	case "iso-8859-1":
		return CharsetLatin1, nil
	case "utf8":
		return CharsetUTF8, nil
	}
	return "", fmt.Errorf("unknown charset %q", s)
}

func (c Charset) encoding() encoding.Encoding {
	switch c {
	case CharsetLatin1:
		return charmap.ISO8859_1
	case CharsetWindows1252:
		return charmap.Windows1252
	case CharsetMacintosh:
		return charmap.Macintosh
	}
	return nil
}

// Decode returns b as text.
func (c Charset) Decode(b []byte) string {
	switch c {
	case CharsetUTF8:
		if utf8.Valid(b) {
			return string(b)
		}
		return strings.ToValidUTF8(string(b), "�")
	case "", CharsetASCII:
		return decodeASCII(b)
	}
	enc := c.encoding()
	if enc == nil {
		return decodeASCII(b)
	}
	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return decodeASCII(b)
	}
	return string(s)
}

func decodeASCII(b []byte) string {
	s := make([]byte, len(b))
	for i, c := range b {
		if c > 0x7F {
			c = '?'
		}
		s[i] = c
	}
	return string(s)
}
