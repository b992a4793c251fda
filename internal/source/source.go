// Package source opens project files for decoding.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bkaradzic/go-lz4"
)

// File is an opened input. Compressed inputs are held in memory, so the
// reader is always seekable.
type File struct {
	io.ReadSeeker
	Path       string
	Compressed bool
	closer     io.Closer
}

// Close releases the file.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Open opens the file at path. Files with an ".lz4" extension are
// decompressed first. The path "-" reads all of standard input.
func Open(path string) (*File, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &File{ReadSeeker: bytes.NewReader(b), Path: path}, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".lz4") {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data, err := Decompress(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &File{ReadSeeker: bytes.NewReader(data), Path: path, Compressed: true}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if fi, err := f.Stat(); err == nil && fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	return &File{ReadSeeker: f, Path: path, closer: f}, nil
}

// NotExist reports whether err indicates a missing input.
func NotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Decompress decodes data written as one lz4 block preceded by its
// little-endian decompressed length.
func Decompress(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, errors.New("lz4: data too short")
	}
	data, err := lz4.Decode(nil, b)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	return data, nil
}
