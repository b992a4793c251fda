// Package fixture builds RbBF containers in memory for tests.
package fixture

import (
	"encoding/binary"
	"math"
)

// Builder appends big-endian container items. Methods return the Builder so
// that calls can be chained.
type Builder struct {
	b []byte
}

// Bytes returns the built data.
func (b *Builder) Bytes() []byte {
	return b.b
}

// Len returns the number of bytes built so far.
func (b *Builder) Len() int {
	return len(b.b)
}

// Raw appends bytes verbatim.
func (b *Builder) Raw(p ...byte) *Builder {
	b.b = append(b.b, p...)
	return b
}

// Tag appends a four-character code. It panics if tag is not four bytes.
func (b *Builder) Tag(tag string) *Builder {
	if len(tag) != 4 {
		panic("fixture: tag must be four bytes: " + tag)
	}
	b.b = append(b.b, tag...)
	return b
}

// Int32 appends a 32-bit integer.
func (b *Builder) Int32(v int32) *Builder {
	b.b = binary.BigEndian.AppendUint32(b.b, uint32(v))
	return b
}

// Float64 appends a 64-bit double.
func (b *Builder) Float64(v float64) *Builder {
	b.b = binary.BigEndian.AppendUint64(b.b, math.Float64bits(v))
	return b
}

// String appends a string field. The data is padded with zeros to a
// multiple of 4.
func (b *Builder) String(tag, s string) *Builder {
	return b.StringBytes(tag, []byte(s), 0)
}

// StringBytes appends a string field holding p, padded with the given byte.
func (b *Builder) StringBytes(tag string, p []byte, pad byte) *Builder {
	b.Tag(tag).Tag("Strn").Int32(int32(len(p)))
	b.b = append(b.b, p...)
	for n := len(p); n%4 != 0; n++ {
		b.b = append(b.b, pad)
	}
	return b
}

// Int appends an integer field.
func (b *Builder) Int(tag string, v int32) *Builder {
	return b.Tag(tag).Tag("Int ").Int32(v)
}

// Double appends a double field.
func (b *Builder) Double(tag string, v float64) *Builder {
	return b.Tag(tag).Tag("Dbl ").Float64(v)
}

// Rect appends a rectangle field.
func (b *Builder) Rect(tag string, left, top, width, height int32) *Builder {
	return b.Tag(tag).Tag("Rect").Int32(left).Int32(top).Int32(width).Int32(height)
}

// Padding appends a padding field of n zero bytes.
func (b *Builder) Padding(tag string, n int32) *Builder {
	b.Tag(tag).Tag("Padn").Int32(n)
	b.b = append(b.b, make([]byte, n)...)
	return b
}

// Group appends a group introduced by tag, whose items are built by fn, and
// a trailer that echoes id.
func (b *Builder) Group(tag string, id int32, fn func(g *Builder)) *Builder {
	return b.GroupTrailer(tag, id, "Int ", id, fn)
}

// GroupTrailer is like Group, but writes the given trailer.
func (b *Builder) GroupTrailer(tag string, id int32, endType string, endID int32, fn func(g *Builder)) *Builder {
	var g Builder
	if fn != nil {
		fn(&g)
	}
	b.Tag(tag).Tag("Grup").Int32(int32(4 + g.Len())).Int32(id)
	b.b = append(b.b, g.b...)
	return b.Tag("EndG").Tag(endType).Int32(endID)
}

// Body returns the bytes built by fn.
func Body(fn func(b *Builder)) []byte {
	var b Builder
	fn(&b)
	return b.Bytes()
}

// Block is one block of a File.
type Block struct {
	Type      string
	ID        int32
	Revision  int32
	KeyFormat int32
	Key1      int32
	Key2      int32
	Body      []byte
	// Size overrides the computed block size when not zero.
	Size int32
}

// File describes a container.
type File struct {
	// FormatVersion defaults to 1.
	FormatVersion int32
	// MinIDEVersion is written only for format 2.
	MinIDEVersion int32
	// Gap is the number of zero bytes between the header and the first
	// block.
	Gap    int
	Blocks []Block
	// NoEOF leaves out the end-of-file tag.
	NoEOF bool
}

// Bytes returns the encoded container.
func (f File) Bytes() []byte {
	version := f.FormatVersion
	if version == 0 {
		version = 1
	}
	header := 20
	if version == 2 {
		header = 24
	}
	var b Builder
	b.Tag("RbBF").Int32(version).Int32(0).Int32(0).Int32(int32(header + f.Gap))
	if version == 2 {
		b.Int32(f.MinIDEVersion)
	}
	b.Raw(make([]byte, f.Gap)...)
	for _, blk := range f.Blocks {
		size := blk.Size
		if size == 0 {
			size = int32(32 + len(blk.Body))
		}
		b.Tag("Blok").Tag(blk.Type).
			Int32(blk.ID).Int32(blk.Revision).Int32(size).
			Int32(blk.KeyFormat).Int32(blk.Key1).Int32(blk.Key2)
		b.Raw(blk.Body...)
	}
	if !f.NoEOF {
		b.Tag("EOF!")
	}
	return b.Bytes()
}
