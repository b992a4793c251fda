package rbbf

import "strconv"

// Tag is a four-character code. It is stored in files as a big-endian 32-bit
// integer, so the first character occupies the most significant byte.
type Tag uint32

// Tags with fixed meaning in the container grammar.
const (
	TagSignature Tag = 'R'<<24 | 'b'<<16 | 'B'<<8 | 'F' // RbBF
	TagBlock     Tag = 'B'<<24 | 'l'<<16 | 'o'<<8 | 'k' // Blok
	TagEOF       Tag = 'E'<<24 | 'O'<<16 | 'F'<<8 | '!' // EOF!
	TagGroup     Tag = 'G'<<24 | 'r'<<16 | 'u'<<8 | 'p' // Grup
	TagEndGroup  Tag = 'E'<<24 | 'n'<<16 | 'd'<<8 | 'G' // EndG

	// TagSavedInVersion is the field carrying the version of the IDE that
	// saved the project.
	TagSavedInVersion Tag = 'P'<<24 | 'S'<<16 | 'I'<<8 | 'V' // PSIV
)

// Type tags that follow a field tag and select how its value is decoded.
const (
	TypeString  Tag = 'S'<<24 | 't'<<16 | 'r'<<8 | 'n' // Strn
	TypeInt     Tag = 'I'<<24 | 'n'<<16 | 't'<<8 | ' ' // "Int "
	TypeDouble  Tag = 'D'<<24 | 'b'<<16 | 'l'<<8 | ' ' // "Dbl "
	TypeRect    Tag = 'R'<<24 | 'e'<<16 | 'c'<<8 | 't' // Rect
	TypePadding Tag = 'P'<<24 | 'a'<<16 | 'd'<<8 | 'n' // Padn
)

// ParseTag returns the tag spelled by s. It reports false if s is not
// exactly four bytes long.
func ParseTag(s string) (Tag, bool) {
	if len(s) != 4 {
		return 0, false
	}
	return Tag(s[0])<<24 | Tag(s[1])<<16 | Tag(s[2])<<8 | Tag(s[3]), true
}

// MustTag is like ParseTag, but panics if s is not a valid tag.
func MustTag(s string) Tag {
	t, ok := ParseTag(s)
	if !ok {
		panic("rbbf: invalid tag " + strconv.Quote(s))
	}
	return t
}

// Bytes returns the four characters of the tag in file order.
func (t Tag) Bytes() [4]byte {
	return [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
}

// String returns the four characters of the tag. Each byte becomes one
// character, so the result may not be valid UTF-8.
func (t Tag) String() string {
	b := t.Bytes()
	return string(b[:])
}

// Printable returns the tag with non-printable bytes replaced by '.'.
func (t Tag) Printable() string {
	b := t.Bytes()
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			b[i] = '.'
		}
	}
	return string(b[:])
}
