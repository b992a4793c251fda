package rbbfxml

import (
	"encoding/binary"

	"github.com/xojotools/rbbf"
	"github.com/xojotools/rbbf/endian"
	"github.com/xojotools/rbbf/tags"
)

// bodyParser decodes the tagged items of one isolated block body.
type bodyParser struct {
	r      *endian.Reader
	tables *tags.Tables
	// strict makes a trailer mismatch fail the parse.
	strict bool
	// mismatches collects every group whose trailer did not match.
	mismatches []TrailerError
}

func newBodyParser(body []byte, tables *tags.Tables, strict bool) *bodyParser {
	return &bodyParser{
		r:      endian.NewBytesReader(body, binary.BigEndian),
		tables: tables,
		strict: strict,
	}
}

// parseBody decodes items until the body is exhausted. On failure, the nodes
// decoded so far are returned with the error; groups that were cut short are
// included and are not Closed.
func (p *bodyParser) parseBody() ([]*rbbf.Node, error) {
	var nodes []*rbbf.Node
	for !p.r.EOF() {
		off := p.r.Offset()
		tag, err := p.r.Tag()
		if err != nil {
			return nodes, err
		}
		n, err := p.item(tag, off)
		if n != nil {
			nodes = append(nodes, n)
		}
		if err != nil {
			return nodes, err
		}
	}
	return nodes, nil
}

// item decodes the item introduced by tag. A special tag followed by a group
// frame becomes a group; otherwise the tag is a plain field.
func (p *bodyParser) item(tag rbbf.Tag, off int64) (*rbbf.Node, error) {
	if s, ok := p.tables.Special(tag); ok {
		n, err := p.group(tag, off, s.Binding)
		if n != nil || err != nil {
			return n, err
		}
	}
	return p.field(tag, off)
}

// group decodes a group frame following tag. If no frame follows, the
// lookahead is un-read and group returns nil with no error.
func (p *bodyParser) group(tag rbbf.Tag, off int64, binding tags.Binding) (*rbbf.Node, error) {
	sentinel, err := p.r.Tag()
	if err != nil {
		return nil, err
	}
	if sentinel != rbbf.TagGroup {
		return nil, p.r.Skip(-4)
	}

	n := &rbbf.Node{Kind: rbbf.NodeGroup, Tag: tag, Offset: off}
	if binding == tags.BindProperty {
		n.Kind = rbbf.NodeProperty
	}
	if err := p.r.Int32s(&n.Size, &n.ID); err != nil {
		return n, err
	}

	for {
		coff := p.r.Offset()
		ctag, err := p.r.Tag()
		if err != nil {
			return n, err
		}
		if ctag == rbbf.TagEndGroup {
			break
		}
		var c *rbbf.Node
		if n.Kind == rbbf.NodeProperty {
			// Property records hold only plain fields.
			c, err = p.field(ctag, coff)
		} else {
			c, err = p.item(ctag, coff)
		}
		if c != nil {
			n.Children = append(n.Children, c)
		}
		if err != nil {
			return n, err
		}
	}

	var endType int32
	if err := p.r.Int32s(&endType, &n.EndID); err != nil {
		return n, err
	}
	n.EndType = rbbf.Tag(endType)
	n.Closed = true
	if !n.TrailerOK() {
		terr := TrailerError{Tag: tag, Offset: off, ID: n.ID, EndType: n.EndType, EndID: n.EndID}
		p.mismatches = append(p.mismatches, terr)
		if p.strict {
			return n, terr
		}
	}
	return n, nil
}

// field decodes the type tag and value following a field tag.
func (p *bodyParser) field(tag rbbf.Tag, off int64) (*rbbf.Node, error) {
	toff := p.r.Offset()
	typ, err := p.r.Tag()
	if err != nil {
		return nil, err
	}
	v, err := p.value(typ, toff)
	if err != nil {
		return nil, err
	}
	return &rbbf.Node{Kind: rbbf.NodeField, Tag: tag, Offset: off, Value: v}, nil
}

func (p *bodyParser) value(typ rbbf.Tag, off int64) (rbbf.Value, error) {
	switch typ {
	case rbbf.TypeString:
		n, err := p.r.Int32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, DataError{Offset: off + 4, Cause: ErrNegativeLength}
		}
		// The stored bytes are padded to a multiple of 4.
		b, err := p.r.Bytes((int64(n) + 3) &^ 3)
		if err != nil {
			return nil, err
		}
		return rbbf.ValueString(b[:n]), nil

	case rbbf.TypeInt:
		v, err := p.r.Int32()
		return rbbf.ValueInt(v), err

	case rbbf.TypeDouble:
		v, err := p.r.Float64()
		return rbbf.ValueDouble(v), err

	case rbbf.TypeRect:
		var v rbbf.ValueRect
		err := p.r.Int32s(&v.Left, &v.Top, &v.Width, &v.Height)
		return v, err

	case rbbf.TypePadding:
		n, err := p.r.Int32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, DataError{Offset: off + 4, Cause: ErrNegativeLength}
		}
		if int64(n) > p.r.Remaining() {
			return nil, &endian.Error{Offset: p.r.Offset(), Op: "skip padding", Cause: endian.ErrUnexpectedEOF}
		}
		if err := p.r.Skip(int64(n)); err != nil {
			return nil, err
		}
		return rbbf.ValuePadding(n), nil
	}
	return nil, TagError{Err: ErrUnknownTypeTag, Tag: typ, Offset: off}
}
