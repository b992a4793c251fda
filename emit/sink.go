package emit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bkaradzic/go-lz4"
)

// ConsoleSink writes lines to a stream, usually standard output. Closing it
// flushes the stream but does not close it.
type ConsoleSink struct {
	w *bufio.Writer
}

// NewConsoleSink returns a sink writing to w, or to os.Stdout if w is nil.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{w: bufio.NewWriter(w)}
}

func (s *ConsoleSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Write writes p as is, so that the sink can also carry free-form text.
func (s *ConsoleSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *ConsoleSink) Close() error {
	return s.w.Flush()
}

// FileSink writes lines to a named file. A compressed sink holds the whole
// document and writes it as one lz4 block, preceded by its decompressed
// length, when closed.
type FileSink struct {
	path     string
	file     *os.File
	w        *bufio.Writer
	buf      *bytes.Buffer
	compress bool
}

// CreateFile creates or truncates the file at path. Output is compressed if
// compress is set or the path has an ".lz4" extension.
func CreateFile(path string, compress bool) (*FileSink, error) {
	if strings.EqualFold(filepath.Ext(path), ".lz4") {
		compress = true
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := &FileSink{path: path, file: f, compress: compress}
	if compress {
		s.buf = new(bytes.Buffer)
		s.w = bufio.NewWriter(s.buf)
	} else {
		s.w = bufio.NewWriter(f)
	}
	return s, nil
}

// Path returns the path of the file.
func (s *FileSink) Path() string {
	return s.path
}

// Compressed returns whether the file is written as lz4.
func (s *FileSink) Compressed() bool {
	return s.compress
}

func (s *FileSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

func (s *FileSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *FileSink) Close() error {
	err := s.w.Flush()
	if err == nil && s.compress && s.buf.Len() > 0 {
		var data []byte
		if data, err = lz4.Encode(nil, s.buf.Bytes()); err != nil {
			err = fmt.Errorf("lz4: %w", err)
		} else {
			_, err = s.file.Write(data)
		}
	}
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// MemorySink keeps lines in memory.
type MemorySink struct {
	Lines  []string
	Closed bool
}

func (s *MemorySink) WriteLine(line string) error {
	s.Lines = append(s.Lines, line)
	return nil
}

func (s *MemorySink) Close() error {
	s.Closed = true
	return nil
}

// String returns the lines joined as a document.
func (s *MemorySink) String() string {
	var b strings.Builder
	for _, line := range s.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
