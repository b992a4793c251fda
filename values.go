package rbbf

// Value holds a decoded typed item. Every value type implements Value and is
// prefixed with "Value".
type Value interface {
	// Type returns the type tag the value was decoded from.
	Type() Tag
}

// ValueString holds the logical bytes of a length-prefixed string. Padding
// bytes are not included.
type ValueString []byte

func (ValueString) Type() Tag { return TypeString }

// ValueInt is a signed 32-bit integer.
type ValueInt int32

func (ValueInt) Type() Tag { return TypeInt }

// ValueDouble is a 64-bit IEEE double.
type ValueDouble float64

func (ValueDouble) Type() Tag { return TypeDouble }

// ValueRect is a rectangle of four consecutive integers.
type ValueRect struct {
	Left   int32
	Top    int32
	Width  int32
	Height int32
}

func (ValueRect) Type() Tag { return TypeRect }

// ValuePadding records the length of skipped padding. It never contributes
// to output.
type ValuePadding int32

func (ValuePadding) Type() Tag { return TypePadding }
