package rbbfxml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xojotools/rbbf"
)

var (
	// Indicates a header that cannot be decoded.
	ErrMalformedHeader = errors.New("malformed header")
	// Indicates an unexpected file signature.
	ErrInvalidSig = errors.New("invalid signature")
	// Indicates a first-block offset outside of the file.
	ErrFirstBlock = errors.New("first block offset out of range")
	// Indicates a top-level tag that is neither a block nor the end of file,
	// or a block type with no name.
	ErrUnknownBlockTag = errors.New("unknown block tag")
	// Indicates a value type tag that cannot be decoded.
	ErrUnknownTypeTag = errors.New("unknown type tag")
	// Indicates a group whose trailer does not echo its id.
	ErrGroupTrailerMismatch = errors.New("group trailer mismatch")
	// Indicates a block size smaller than its own header.
	ErrBlockSize = errors.New("block size smaller than block header")
	// Indicates a negative string or padding length.
	ErrNegativeLength = errors.New("negative length")
	// Indicates that the stream ended without an end-of-file tag.
	ErrMissingEOF = errors.New("missing end-of-file tag")
)

// ErrUnrecognizedVersion indicates a container format version other than 1
// or 2.
type ErrUnrecognizedVersion int32

func (err ErrUnrecognizedVersion) Error() string {
	return fmt.Sprintf("unrecognized format version %d", int32(err))
}

// HeaderError wraps a failure to decode the container header. It matches
// ErrMalformedHeader.
type HeaderError struct {
	Cause error
}

func (err HeaderError) Error() string {
	if err.Cause == nil {
		return ErrMalformedHeader.Error()
	}
	return ErrMalformedHeader.Error() + ": " + err.Cause.Error()
}

func (err HeaderError) Is(target error) bool {
	return target == ErrMalformedHeader
}

func (err HeaderError) Unwrap() error {
	return err.Cause
}

// TagError reports a tag that could not be interpreted.
type TagError struct {
	// Err is ErrUnknownBlockTag or ErrUnknownTypeTag.
	Err error
	Tag rbbf.Tag
	// Offset is the position of the tag.
	Offset int64
}

func (err TagError) Error() string {
	return fmt.Sprintf("%s %q (0x%08X) at %d", err.Err, err.Tag.Printable(), uint32(err.Tag), err.Offset)
}

func (err TagError) Unwrap() error {
	return err.Err
}

// TrailerError reports a group whose trailer does not match its frame.
type TrailerError struct {
	// Tag is the tag that introduced the group.
	Tag rbbf.Tag
	// Offset is the position of Tag within the block body.
	Offset int64

	ID      int32
	EndType rbbf.Tag
	EndID   int32
}

func (err TrailerError) Error() string {
	if err.EndType != rbbf.TypeInt {
		return fmt.Sprintf("%s: group %q at %d: trailer type %q, expected %q",
			ErrGroupTrailerMismatch, err.Tag.Printable(), err.Offset, err.EndType.Printable(), rbbf.TypeInt)
	}
	return fmt.Sprintf("%s: group %q at %d: trailer id %d, expected %d",
		ErrGroupTrailerMismatch, err.Tag.Printable(), err.Offset, err.EndID, err.ID)
}

func (err TrailerError) Unwrap() error {
	return ErrGroupTrailerMismatch
}

// BlockError wraps an error that occurred while decoding the body of a
// block.
type BlockError struct {
	// Index is the position of the block within the file.
	Index int
	Type  rbbf.Tag
	Name  string
	ID    int32
	// Offset is the position of the block tag.
	Offset int64

	Cause error
}

func (err BlockError) Error() string {
	var s strings.Builder
	s.WriteString("block #")
	s.WriteString(strconv.Itoa(err.Index))
	s.WriteString(" ")
	s.WriteString(strconv.Quote(err.Type.Printable()))
	if err.Name != "" {
		s.WriteString(" (")
		s.WriteString(err.Name)
		s.WriteString(")")
	}
	s.WriteString(" id ")
	s.WriteString(strconv.FormatInt(int64(err.ID), 10))
	s.WriteString(" at ")
	s.WriteString(strconv.FormatInt(err.Offset, 10))
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err BlockError) Unwrap() error {
	return err.Cause
}

// DataError wraps an error that occurred while reading the top-level stream.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}
