package rbbf

// NodeKind distinguishes the shapes a tagged item can take.
type NodeKind uint8

const (
	// NodeField is a tag followed by a typed value.
	NodeField NodeKind = iota
	// NodeGroup is a tag followed by a group frame of nested items.
	NodeGroup
	// NodeProperty is a property value record. Its children are always
	// fields.
	NodeProperty
)

func (k NodeKind) String() string {
	switch k {
	case NodeField:
		return "field"
	case NodeGroup:
		return "group"
	case NodeProperty:
		return "property"
	default:
		return "invalid"
	}
}

// Node is one decoded item of a block body.
type Node struct {
	Kind NodeKind

	// Tag is the field or group tag.
	Tag Tag

	// Offset is the position of Tag within the block body.
	Offset int64

	// Value is set for NodeField.
	Value Value

	// Size and ID are read from the group frame. EndType and EndID are read
	// from the trailer following the end tag.
	Size    int32
	ID      int32
	EndType Tag
	EndID   int32

	// Closed is true once the trailer has been read. A node that is not
	// closed was cut short by a decoding error.
	Closed bool

	Children []*Node
}

// TrailerOK returns whether the trailer echoes the group's own id. It is
// always true for fields.
func (n *Node) TrailerOK() bool {
	if n.Kind == NodeField {
		return true
	}
	return n.Closed && n.EndType == TypeInt && n.EndID == n.ID
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag Tag) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Walk calls fn for n and each of its descendants in document order. The
// children of a node are skipped when fn returns false for it.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(n *Node, depth int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}
