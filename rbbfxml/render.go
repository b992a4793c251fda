package rbbfxml

import (
	"strconv"

	"github.com/xojotools/rbbf"
	"github.com/xojotools/rbbf/tags"
)

// Tags of the fields recognized within a property value record.
var (
	propName       = rbbf.MustTag("name")
	propType       = rbbf.MustTag("type")
	propGroup      = rbbf.MustTag("PrGp")
	propVisibility = rbbf.MustTag("visi")
	propEncoding   = rbbf.MustTag("Enco")
	propValue      = rbbf.MustTag("PVal")
)

// Property is a decoded property value record.
type Property struct {
	Name       string
	Type       string
	Group      string
	Visibility int32
	Encoding   int32
	Value      rbbf.Value
}

// PropertyOf collects the recognized fields of a property node. Other fields
// are ignored; of repeated fields, the first is used.
func PropertyOf(n *rbbf.Node, cs Charset) Property {
	var p Property
	text := func(tag rbbf.Tag) string {
		if c := n.Child(tag); c != nil {
			return Text(c.Value, cs)
		}
		return ""
	}
	number := func(tag rbbf.Tag) int32 {
		if c := n.Child(tag); c != nil {
			if v, ok := c.Value.(rbbf.ValueInt); ok {
				return int32(v)
			}
		}
		return 0
	}
	p.Name = text(propName)
	p.Type = text(propType)
	p.Group = text(propGroup)
	p.Visibility = number(propVisibility)
	p.Encoding = number(propEncoding)
	if c := n.Child(propValue); c != nil {
		p.Value = c.Value
	}
	return p
}

// renderer turns decoded nodes into output lines.
type renderer struct {
	tables  *tags.Tables
	charset Charset
	lines   []string
	// unknown counts field tags missing from the field table.
	unknown map[rbbf.Tag]int
}

func (r *renderer) line(s string) {
	r.lines = append(r.lines, s)
}

func (r *renderer) open(name string) {
	r.line("<" + name + ">")
}

func (r *renderer) close(name string) {
	r.line("</" + name + ">")
}

// blockStart returns the opening tag of a block element.
func blockStart(name string, id int32) string {
	return `<block type="` + EscapeAttr(name) + `" ID="` + strconv.FormatInt(int64(id), 10) + `">`
}

const blockEnd = "</block>"

// block renders a decoded block body inside its block element.
func (r *renderer) block(name string, id int32, nodes []*rbbf.Node) {
	r.line(blockStart(name, id))
	r.nodes(nodes, true)
	r.line(blockEnd)
}

// opaque renders a block that is reproduced as bytes.
func (r *renderer) opaque(name string, id int32, frame []byte) {
	r.line(blockStart(name, id))
	r.line(EncodeHex(frame))
	r.line(blockEnd)
}

// nodes renders each node in order. Plain fields are rendered only if fields
// is set.
func (r *renderer) nodes(nodes []*rbbf.Node, fields bool) {
	for _, n := range nodes {
		switch n.Kind {
		case rbbf.NodeField:
			r.field(n, fields)
		case rbbf.NodeGroup:
			r.group(n, fields)
		case rbbf.NodeProperty:
			r.property(n)
		}
	}
}

func (r *renderer) field(n *rbbf.Node, visible bool) {
	name, known := r.tables.FieldName(n.Tag)
	if !known {
		if r.unknown == nil {
			r.unknown = map[rbbf.Tag]int{}
		}
		r.unknown[n.Tag]++
	}
	if !visible || name == "" {
		return
	}
	if _, ok := n.Value.(rbbf.ValuePadding); ok {
		return
	}
	r.line("<" + name + ">" + EncodeValue(n.Value, r.charset) + "</" + name + ">")
}

func (r *renderer) group(n *rbbf.Node, fields bool) {
	s, _ := r.tables.Special(n.Tag)
	switch s.Binding {
	case tags.BindWrapper, tags.BindSkip:
		// Only nested special groups surface; the group's own fields do not.
		r.nodes(n.Children, false)
	default:
		r.open(s.Name)
		r.nodes(n.Children, true)
		r.close(s.Name)
	}
}

func (r *renderer) property(n *rbbf.Node) {
	name := "PropertyVal"
	if s, ok := r.tables.Special(n.Tag); ok && s.Name != "" {
		name = s.Name
	}
	p := PropertyOf(n, r.charset)
	r.line("<" + name + ` Name="` + EscapeAttr(p.Name) + `">` + EncodeValue(p.Value, r.charset) + "</" + name + ">")
}
