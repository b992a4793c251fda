package rbbfxml

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/xojotools/rbbf"
)

// Prefixes of text that is already escaped and must not be escaped again.
var escapedPrefixes = [...]string{"&amp;h", "&amp;H", "&amp;c", "&amp;C"}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// EscapeText escapes s for use as element content. Text that begins with an
// escaped hexadecimal or color literal is returned unchanged.
func EscapeText(s string) string {
	for _, p := range escapedPrefixes {
		if strings.HasPrefix(s, p) {
			return s
		}
	}
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for use as a double-quoted attribute value. Control
// characters are removed.
func EscapeAttr(s string) string {
	if HasControl(s) {
		s = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return r
		}, s)
	}
	return attrEscaper.Replace(s)
}

// HasControl returns whether s contains a Unicode control character.
func HasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// EncodeHex returns b as a Hex element: two uppercase digits per byte with no
// separators.
func EncodeHex(b []byte) string {
	const digits = "0123456789ABCDEF"
	var s strings.Builder
	s.Grow(len(b)*2 + 32)
	s.WriteString(`<Hex bytes="`)
	s.WriteString(strconv.Itoa(len(b)))
	s.WriteString(`">`)
	for _, c := range b {
		s.WriteByte(digits[c>>4])
		s.WriteByte(digits[c&0x0F])
	}
	s.WriteString(`</Hex>`)
	return s.String()
}

// EncodeRect returns r as an inline Rect element.
func EncodeRect(r rbbf.ValueRect) string {
	b := make([]byte, 0, 64)
	b = append(b, `<Rect left="`...)
	b = strconv.AppendInt(b, int64(r.Left), 10)
	b = append(b, `" top="`...)
	b = strconv.AppendInt(b, int64(r.Top), 10)
	b = append(b, `" width="`...)
	b = strconv.AppendInt(b, int64(r.Width), 10)
	b = append(b, `" height="`...)
	b = strconv.AppendInt(b, int64(r.Height), 10)
	b = append(b, `"/>`...)
	return string(b)
}

// Text returns the plain text of a value, before any escaping. Strings are
// decoded with cs. Padding has no text.
func Text(v rbbf.Value, cs Charset) string {
	switch v := v.(type) {
	case rbbf.ValueString:
		return cs.Decode(v)
	case rbbf.ValueInt:
		return strconv.FormatInt(int64(v), 10)
	case rbbf.ValueDouble:
		return strconv.FormatFloat(float64(v), 'f', 2, 64)
	case rbbf.ValueRect:
		return EncodeRect(v)
	}
	return ""
}

// EncodeValue returns a value as element content. Text containing a control
// character is rendered as a Hex element of the raw bytes; other text is
// escaped. Rectangles are never escaped or rendered as hex.
func EncodeValue(v rbbf.Value, cs Charset) string {
	switch v := v.(type) {
	case nil, rbbf.ValuePadding:
		return ""
	case rbbf.ValueRect:
		return EncodeRect(v)
	case rbbf.ValueString:
		s := cs.Decode(v)
		if HasControl(s) {
			return EncodeHex(v)
		}
		return EscapeText(s)
	}
	s := Text(v, cs)
	if HasControl(s) {
		return EncodeHex([]byte(s))
	}
	return EscapeText(s)
}
