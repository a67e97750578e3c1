package gff3

import "github.com/biogo/biogo/feat"

// NodeID is a stable handle into a Store's arena. The root node always has
// handle 0. Handles remain valid across detach/attach operations.
type NodeID int

// noNode is the sentinel "no node" handle, distinct from the root (0).
const noNode NodeID = -1

// Node is one feature in the forest: intrinsic GFF3 columns, attributes,
// multi-line segment arrays, and parent/child relationships.
//
// *Node does not itself satisfy feat.Feature — Start/End/Name are plain data
// fields here (per the data model in §3), and Go won't let a field and a
// method share a name. AsFeature returns an adapter that does.
type Node struct {
	id NodeID

	SeqName  string
	Source   string
	Type     string // lower-cased for dispatch
	OrigType string // case as it appeared in column 3, for emission
	Start    int
	End      int
	Score    string
	Strand   byte // '+', '-', '.', or '?'
	Phase    byte // '.', '0', '1', or '2'

	ID   string
	Name string

	Attributes *AttrMap

	// Multi-line extension (§3). Nil/empty when the node has not been
	// coalesced from more than one input line.
	StartArray   []int
	EndArray     []int
	ScoreArray   []string
	PhaseArray   []byte
	AttrArrays   map[string][]AttrValue
	TrackedAttrs map[string]bool

	Duplicate bool // set on every split sibling but the first (§3)
	Skip      bool // set by the expectation engine's skip action (§4.5)

	parent   NodeID
	children []NodeID

	store *Store
}

// multiLine reports whether this node has been expanded into per-segment
// arrays (§4.3.1 step 1 has run for it).
func (n *Node) multiLine() bool {
	return len(n.StartArray) > 0
}

// SegmentCount returns the number of coalesced segments, or 1 for a
// single-line node.
func (n *Node) SegmentCount() int {
	if n.multiLine() {
		return len(n.StartArray)
	}
	return 1
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	if n.store == nil || n.parent == noNode {
		return nil
	}
	return n.store.node(n.parent)
}

// Children returns the node's children in insertion order. The returned
// slice is owned by the caller.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		out = append(out, n.store.node(id))
	}
	return out
}

// IsRoot reports whether n is the synthetic root container.
func (n *Node) IsRoot() bool {
	return n.store != nil && n.id == rootID
}

func (n *Node) length() int { return n.End - n.Start + 1 }

func (n *Node) description() string {
	if n.Source != "" && n.Source != "." {
		return n.Source + " " + n.Type
	}
	return n.Type
}

// nodeFeature adapts a *Node to feat.Feature/feat.Orienter so the forest
// interoperates with the wider bíogo ecosystem, mirroring how the teacher's
// Feature interface embeds feat.Feature and feat.Orienter. Orientation() is
// a lossy three-state projection of Strand: GFF3's four symbols collapse to
// bíogo's three ('.' and '?' both become NotOriented) — code inside this
// package always reads Node.Strand directly instead of going through this
// adapter.
type nodeFeature struct{ n *Node }

func (f nodeFeature) Start() int          { return f.n.Start }
func (f nodeFeature) End() int            { return f.n.End }
func (f nodeFeature) Len() int            { return f.n.length() }
func (f nodeFeature) Name() string        { return f.n.Name }
func (f nodeFeature) Description() string { return f.n.description() }

func (f nodeFeature) Location() feat.Feature {
	p := f.n.Parent()
	if p == nil {
		return nil
	}
	return nodeFeature{p}
}

func (f nodeFeature) Orientation() feat.Orientation {
	switch f.n.Strand {
	case '+':
		return feat.Forward
	case '-':
		return feat.Reverse
	default:
		return feat.NotOriented
	}
}

// AsFeature returns a feat.Feature/feat.Orienter view of n.
func (n *Node) AsFeature() interface {
	feat.Feature
	feat.Orienter
} {
	return nodeFeature{n}
}

var (
	_ feat.Feature  = nodeFeature{}
	_ feat.Orienter = nodeFeature{}
)
