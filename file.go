// Package rbbf models the tagged binary container used by legacy IDE
// project files.
//
// A file begins with a Header, followed by a sequence of framed Blocks and an
// end-of-file tag. The body of each block is a sequence of tagged items: a
// field tag followed either by a typed Value, or by a group frame containing
// further items. A decoded body is represented as a tree of Nodes.
//
// This package only describes the data. The rbbfxml package decodes files
// and renders them as XML.
package rbbf

import "encoding/binary"

// Header sizes, in bytes, for each recognized format version.
const (
	HeaderSize1 = 20
	HeaderSize2 = 24
)

// DefaultMinIDEVersion is the minimum IDE version reported for files whose
// header does not carry one.
const DefaultMinIDEVersion = 201201

// Header is the container header. It is read once and determines which tag
// tables apply to the rest of the file.
type Header struct {
	// Signature identifies the file type; always TagSignature.
	Signature Tag

	// FormatVersion is 1 or 2.
	FormatVersion int32

	// Reserved fields with no known meaning.
	Reserved1 int32
	Reserved2 int32

	// FirstBlock is the absolute offset of the first block tag.
	FirstBlock int32

	// MinIDEVersion is read only for format 2. For format 1 it is set to
	// DefaultMinIDEVersion.
	MinIDEVersion int32
}

// Size returns the number of bytes occupied by the header for its format
// version.
func (h Header) Size() int64 {
	if h.FormatVersion == 2 {
		return HeaderSize2
	}
	return HeaderSize1
}

// BlockHeaderSize is the size of the seven header fields following a block
// tag. BlockFrameSize includes the block tag itself.
const (
	BlockHeaderSize = 28
	BlockFrameSize  = 4 + BlockHeaderSize
)

// BlockHeader is the fixed header of a block.
type BlockHeader struct {
	// Type selects the element name of the block.
	Type Tag

	// ID identifies the block within the project.
	ID int32

	Revision int32

	// Size is the total size of the block, including the block tag and this
	// header.
	Size int32

	// KeyFormat is zero for plain blocks. Any other value marks the body as
	// opaque.
	KeyFormat int32

	Key1 int32
	Key2 int32
}

// BodySize returns the number of body bytes that follow the header.
func (h BlockHeader) BodySize() int64 {
	return int64(h.Size) - BlockFrameSize
}

// Opaque returns whether the block body must be reproduced verbatim rather
// than decoded.
func (h BlockHeader) Opaque() bool {
	return h.KeyFormat != 0
}

// AppendBinary appends the big-endian encoding of the header to b.
func (h BlockHeader) AppendBinary(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(h.Type))
	for _, v := range [...]int32{h.ID, h.Revision, h.Size, h.KeyFormat, h.Key1, h.Key2} {
		b = binary.BigEndian.AppendUint32(b, uint32(v))
	}
	return b
}

// Block is one top-level framed unit.
type Block struct {
	Header BlockHeader

	// Offset is the absolute offset of the block tag.
	Offset int64

	// Body holds exactly Header.BodySize() bytes.
	Body []byte
}

// Frame returns the block as it appears in a file: the block tag, the
// big-endian header, and the body.
func (b *Block) Frame() []byte {
	p := make([]byte, 0, BlockFrameSize+len(b.Body))
	p = binary.BigEndian.AppendUint32(p, uint32(TagBlock))
	p = b.Header.AppendBinary(p)
	return append(p, b.Body...)
}
