// Package endian reads fixed-size primitives from a seekable byte stream in
// a chosen byte order.
//
// Every read is all-or-nothing: a read that would run past the end of the
// stream consumes nothing and fails with ErrUnexpectedEOF.
package endian

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/anaminus/parse"
	"github.com/xojotools/rbbf"
)

var (
	// ErrUnexpectedEOF indicates a read that would run past the end of the
	// stream.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")
	// ErrNegativeLength indicates a negative byte count.
	ErrNegativeLength = errors.New("negative length")
	// ErrSeekRange indicates a seek outside of the stream.
	ErrSeekRange = errors.New("seek out of range")
)

// Error describes a failed read or seek.
type Error struct {
	// Offset is the stream position at which the operation started.
	Offset int64
	// Op names the operation, such as "read int32".
	Op string

	Cause error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", err.Op, err.Offset, err.Cause)
}

func (err *Error) Unwrap() error {
	return err.Cause
}

// Reader reads primitives from a stream. The zero value is not usable; use
// NewReader or NewBytesReader.
type Reader struct {
	rs    io.ReadSeeker
	fr    *parse.BinaryReader
	order binary.ByteOrder

	// base is the stream position at which fr was created.
	base int64
	size int64
	// err is set when the underlying stream fails. It is sticky.
	err error
	buf [8]byte
}

// NewReader returns a Reader over rs using the given byte order. Reading
// starts at the current position of rs.
func NewReader(rs io.ReadSeeker, order binary.ByteOrder) (*Reader, error) {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return nil, err
	}
	return &Reader{
		rs:    rs,
		fr:    parse.NewBinaryReader(rs),
		order: order,
		base:  cur,
		size:  size,
	}, nil
}

// NewBytesReader returns a Reader over an isolated byte region.
func NewBytesReader(b []byte, order binary.ByteOrder) *Reader {
	br := bytes.NewReader(b)
	return &Reader{
		rs:    br,
		fr:    parse.NewBinaryReader(br),
		order: order,
		size:  int64(len(b)),
	}
}

// Order returns the byte order of the reader.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// Offset returns the current position in the stream.
func (r *Reader) Offset() int64 {
	return r.base + r.fr.N()
}

// Size returns the total length of the stream.
func (r *Reader) Size() int64 {
	return r.size
}

// Remaining returns the number of bytes between the current position and
// the end of the stream.
func (r *Reader) Remaining() int64 {
	return r.size - r.Offset()
}

// EOF returns whether the stream is exhausted.
func (r *Reader) EOF() bool {
	return r.Remaining() <= 0
}

func (r *Reader) fail(op string, off int64, cause error) error {
	return &Error{Offset: off, Op: op, Cause: cause}
}

// read fills p entirely or consumes nothing.
func (r *Reader) read(op string, p []byte) error {
	off := r.Offset()
	if r.err != nil {
		return r.fail(op, off, r.err)
	}
	if int64(len(p)) > r.Remaining() {
		return r.fail(op, off, ErrUnexpectedEOF)
	}
	if r.fr.Bytes(p) {
		err := r.fr.Err()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrUnexpectedEOF
		}
		r.err = err
		return r.fail(op, off, err)
	}
	return nil
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n int64) ([]byte, error) {
	if n < 0 {
		return nil, r.fail("read bytes", r.Offset(), ErrNegativeLength)
	}
	if n > r.Remaining() {
		return nil, r.fail("read bytes", r.Offset(), ErrUnexpectedEOF)
	}
	p := make([]byte, n)
	if err := r.read("read bytes", p); err != nil {
		return nil, err
	}
	return p, nil
}

// Uint16 reads an unsigned 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	if err := r.read("read uint16", r.buf[:2]); err != nil {
		return 0, err
	}
	return r.order.Uint16(r.buf[:2]), nil
}

// Int16 reads a signed 16-bit integer.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint32 reads an unsigned 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.read("read uint32", r.buf[:4]); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.buf[:4]), nil
}

// Int32 reads a signed 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Int32s reads one signed 32-bit integer into each of dst, in order. It
// stops at the first failure.
func (r *Reader) Int32s(dst ...*int32) error {
	for _, p := range dst {
		v, err := r.Int32()
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

// Uint64 reads an unsigned 64-bit integer.
func (r *Reader) Uint64() (uint64, error) {
	if err := r.read("read uint64", r.buf[:8]); err != nil {
		return 0, err
	}
	return r.order.Uint64(r.buf[:8]), nil
}

// Int64 reads a signed 64-bit integer.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float64 reads a 64-bit IEEE double.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	return math.Float64frombits(v), err
}

// Tag reads a four-character code as a 32-bit integer.
func (r *Reader) Tag() (rbbf.Tag, error) {
	v, err := r.Uint32()
	return rbbf.Tag(v), err
}

// Seek moves to an absolute offset.
func (r *Reader) Seek(offset int64) error {
	if r.err != nil {
		return r.fail("seek", r.Offset(), r.err)
	}
	if offset < 0 || offset > r.size {
		return r.fail("seek", r.Offset(), ErrSeekRange)
	}
	if _, err := r.rs.Seek(offset, io.SeekStart); err != nil {
		r.err = err
		return r.fail("seek", r.Offset(), err)
	}
	r.fr = parse.NewBinaryReader(r.rs)
	r.base = offset
	return nil
}

// Skip moves relative to the current position. A negative delta un-reads
// bytes.
func (r *Reader) Skip(delta int64) error {
	return r.Seek(r.Offset() + delta)
}
