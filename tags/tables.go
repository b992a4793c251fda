// Package tags maps the four-character codes of the container to the names
// used in XML output.
//
// Tables are built per conversion with For and are never modified afterward.
package tags

import (
	"errors"
	"fmt"

	"github.com/xojotools/rbbf"
)

var (
	// ErrUnknownBlock indicates a block type with no name for the active
	// format version.
	ErrUnknownBlock = errors.New("unknown block tag")
	// ErrUnsupportedVersion indicates a format version with no tables.
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// Binding selects how a special tag is decoded when a group frame follows it.
type Binding uint8

const (
	// BindGroup decodes a named group; its element wraps its children.
	BindGroup Binding = iota + 1
	// BindWrapper decodes a group without emitting an element for it. Its
	// children surface in the enclosing element.
	BindWrapper
	// BindSkip decodes a group without emitting it or its plain fields.
	// Nested special groups still surface.
	BindSkip
	// BindProperty decodes a property value record.
	BindProperty
)

func (b Binding) String() string {
	switch b {
	case BindGroup:
		return "group"
	case BindWrapper:
		return "wrapper"
	case BindSkip:
		return "skip"
	case BindProperty:
		return "property"
	default:
		return "none"
	}
}

// Special describes a tag that may introduce a group frame.
type Special struct {
	Binding Binding
	// Name is the element name of the group. It is empty for wrappers.
	Name string
}

// Tables holds the lookups for one format version.
type Tables struct {
	version int32
	blocks  map[rbbf.Tag]string
	fields  map[rbbf.Tag]string
	special map[rbbf.Tag]Special
}

// For builds the tables for the given format version. Each call returns a
// fresh value.
func For(formatVersion int32) (*Tables, error) {
	t := &Tables{version: formatVersion}
	switch formatVersion {
	case 1:
		t.blocks = make(map[rbbf.Tag]string, len(blocks1))
		addEntries(t.blocks, blocks1[:])
	case 2:
		t.blocks = make(map[rbbf.Tag]string, len(blocks1)+len(blocks2))
		addEntries(t.blocks, blocks1[:])
		addEntries(t.blocks, blocks2[:])
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, formatVersion)
	}
	t.fields = make(map[rbbf.Tag]string, len(fields))
	addEntries(t.fields, fields[:])
	t.special = make(map[rbbf.Tag]Special, len(specials))
	for _, e := range specials {
		t.special[rbbf.MustTag(e.tag)] = Special{Binding: e.binding, Name: e.name}
	}
	return t, nil
}

func addEntries(m map[rbbf.Tag]string, entries []entry) {
	for _, e := range entries {
		m[rbbf.MustTag(e.tag)] = e.name
	}
}

// FormatVersion returns the format version the tables were built for.
func (t *Tables) FormatVersion() int32 {
	return t.version
}

// BlockName returns the element name of a block type. Unknown types fail with
// ErrUnknownBlock.
func (t *Tables) BlockName(tag rbbf.Tag) (string, error) {
	name, ok := t.blocks[tag]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBlock, tag.Printable())
	}
	return name, nil
}

// FieldName returns the element name of a field tag. The name is empty when
// the field is not emitted; known reports whether the tag is in the table at
// all.
func (t *Tables) FieldName(tag rbbf.Tag) (name string, known bool) {
	name, known = t.fields[tag]
	return name, known
}

// Special returns the binding of a tag, if it has one.
func (t *Tables) Special(tag rbbf.Tag) (Special, bool) {
	s, ok := t.special[tag]
	return s, ok
}

// BlockCount returns the number of named block types.
func (t *Tables) BlockCount() int {
	return len(t.blocks)
}
