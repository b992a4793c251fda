package rbbfxml

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/xojotools/rbbf"
	"github.com/xojotools/rbbf/endian"
	"github.com/xojotools/rbbf/errors"
	"github.com/xojotools/rbbf/tags"
)

// Dump writes to w a readable representation of the container structure
// decoded from r: the header, then each block with its raw tags, group
// frames and trailers. Bodies that fail to decode are dumped up to the
// failure, which is returned as a warning. Trailer mismatches are returned
// as warnings too, unless d.Trailers is TrailerIgnore.
func (d Decoder) Dump(w io.Writer, r io.ReadSeeker) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if w == nil {
		return nil, errors.New("nil writer")
	}
	er, err := endian.NewReader(r, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	h, err := ReadHeader(er)
	if err != nil {
		return nil, err
	}
	tables, err := tags.For(h.FormatVersion)
	if err != nil {
		return nil, HeaderError{Cause: err}
	}
	if err := er.Seek(int64(h.FirstBlock)); err != nil {
		return nil, DataError{Offset: int64(h.FirstBlock), Cause: err}
	}

	var warns errors.Errors
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	bw.WriteString("Signature: ")
	dumpTag(bw, h.Signature)
	fmt.Fprintf(bw, "\nFormatVersion: %d", h.FormatVersion)
	fmt.Fprintf(bw, "\nReserved: %d, %d", h.Reserved1, h.Reserved2)
	fmt.Fprintf(bw, "\nFirstBlock: %d", h.FirstBlock)
	fmt.Fprintf(bw, "\nMinIDEVersion: %d", h.MinIDEVersion)
	fmt.Fprintf(bw, "\nHeaderSize: %d", h.Size())
	fmt.Fprintf(bw, "\nTables: format %d, %d block types", tables.FormatVersion(), tables.BlockCount())
	bw.WriteString("\nBlocks: {")
	for i := 0; ; i++ {
		if er.EOF() {
			warns = warns.Append(DataError{Offset: er.Offset(), Cause: ErrMissingEOF})
			break
		}
		off := er.Offset()
		tag, err := er.Tag()
		if err != nil {
			return warns.Return(), DataError{Offset: off, Cause: err}
		}
		if tag == rbbf.TagEOF {
			break
		}
		if tag != rbbf.TagBlock {
			return warns.Return(), TagError{Err: ErrUnknownBlockTag, Tag: tag, Offset: off}
		}
		b, name, err := readBlock(er, tables, off)
		if err != nil {
			return warns.Return(), err
		}
		if err := d.dumpBlock(bw, 1, i, b, name, tables); err != nil {
			warns = warns.Append(BlockError{Index: i, Type: b.Header.Type, Name: name, ID: b.Header.ID, Offset: off, Cause: err})
		}
	}
	bw.WriteString("\n}\n")
	return warns.Return(), nil
}

func (d Decoder) dumpBlock(w *bufio.Writer, indent, i int, b *rbbf.Block, name string, tables *tags.Tables) error {
	h := b.Header
	dumpNewline(w, indent)
	fmt.Fprintf(w, "#%d: ", i)
	dumpTag(w, h.Type)
	fmt.Fprintf(w, " %s {", name)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Offset: %d", b.Offset)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "ID: %d", h.ID)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Revision: %d", h.Revision)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Size: %d", h.Size)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "KeyFormat: %d", h.KeyFormat)
	dumpNewline(w, indent+1)
	fmt.Fprintf(w, "Keys: %d, %d", h.Key1, h.Key2)
	dumpNewline(w, indent+1)
	w.WriteString("Digest: ")
	w.WriteString(Digest(b.Frame()))

	var err error
	if h.Opaque() {
		dumpNewline(w, indent+1)
		w.WriteString("Body: ")
		dumpBytes(w, indent+1, b.Body)
	} else {
		p := newBodyParser(b.Body, tables, false)
		nodes, perr := p.parseBody()
		dumpNewline(w, indent+1)
		fmt.Fprintf(w, "Items: {")
		for _, n := range nodes {
			d.dumpNode(w, indent+2, n, tables)
		}
		dumpNewline(w, indent+1)
		w.WriteByte('}')
		if perr != nil {
			dumpNewline(w, indent+1)
			fmt.Fprintf(w, "Error: %s", perr)
		}
		var mismatches errors.Errors
		if d.Trailers != TrailerIgnore {
			for _, m := range p.mismatches {
				mismatches = mismatches.Append(m)
			}
		}
		err = errors.Union(perr, mismatches)
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
	return err
}

func (d Decoder) dumpNode(w *bufio.Writer, indent int, n *rbbf.Node, tables *tags.Tables) {
	dumpNewline(w, indent)
	dumpTag(w, n.Tag)
	switch n.Kind {
	case rbbf.NodeField:
		if name, _ := tables.FieldName(n.Tag); name != "" {
			fmt.Fprintf(w, " %s", name)
		}
		w.WriteString(": ")
		d.dumpValue(w, indent, n.Value)
		return
	case rbbf.NodeProperty:
		w.WriteString(" property")
	default:
		s, _ := tables.Special(n.Tag)
		if s.Name != "" {
			fmt.Fprintf(w, " %s", s.Name)
		}
		fmt.Fprintf(w, " %s", s.Binding)
	}
	fmt.Fprintf(w, " (size:%d id:%d) {", n.Size, n.ID)
	for _, c := range n.Children {
		d.dumpNode(w, indent+1, c, tables)
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
	switch {
	case !n.Closed:
		w.WriteString(" unterminated")
	case n.TrailerOK():
		fmt.Fprintf(w, " trailer %d ok", n.EndID)
	default:
		w.WriteString(" trailer ")
		dumpTag(w, n.EndType)
		fmt.Fprintf(w, " %d mismatch", n.EndID)
	}
}

func (d Decoder) dumpValue(w *bufio.Writer, indent int, v rbbf.Value) {
	dumpTag(w, v.Type())
	w.WriteByte(' ')
	switch v := v.(type) {
	case rbbf.ValueString:
		dumpString(w, indent, d.Charset.Decode(v), v)
	case rbbf.ValueInt:
		w.WriteString(strconv.FormatInt(int64(v), 10))
	case rbbf.ValueDouble:
		w.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
	case rbbf.ValueRect:
		fmt.Fprintf(w, "{%d, %d, %d, %d}", v.Left, v.Top, v.Width, v.Height)
	case rbbf.ValuePadding:
		fmt.Fprintf(w, "(len:%d)", int32(v))
	}
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpTag(w *bufio.Writer, tag rbbf.Tag) {
	b := tag.Bytes()
	w.WriteString(strconv.Quote(tag.Printable()))
	fmt.Fprintf(w, " (% 02X)", b)
}

func dumpString(w *bufio.Writer, indent int, s string, raw []byte) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			dumpBytes(w, indent, raw)
			return
		}
	}
	fmt.Fprintf(w, "(len:%d) ", len(raw))
	w.WriteString(strconv.Quote(s))
}

func dumpBytes(w *bufio.Writer, indent int, b []byte) {
	const digits = "0123456789abcdef"
	fmt.Fprintf(w, "(len:%d)", len(b))
	const width = 16
	for j := 0; j < len(b); j += width {
		dumpNewline(w, indent+1)
		w.WriteString("| ")
		for i := j; i < j+width; i++ {
			if i < len(b) {
				w.WriteByte(digits[b[i]>>4])
				w.WriteByte(digits[b[i]&0x0F])
			} else {
				w.WriteString("  ")
			}
			if (i+1)%8 == 0 && i+1 < j+width {
				w.WriteString("  ")
			} else {
				w.WriteByte(' ')
			}
		}
		w.WriteByte('|')
		n := min(j+width, len(b))
		for i := j; i < n; i++ {
			if 32 <= b[i] && b[i] <= 126 {
				w.WriteByte(b[i])
			} else {
				w.WriteByte('.')
			}
		}
		w.WriteByte('|')
	}
}
