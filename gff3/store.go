package gff3

import "sort"

// rootID is the handle of the synthetic root container, always zero.
const rootID NodeID = 0

// Store owns every node in the forest (§4.4): an arena of nodes addressed
// by stable integer handles, plus an ID index and a (seq,type,start)
// position index. Detach/attach preserve a node's identity and keep both
// indices consistent.
type Store struct {
	nodes []*Node // nodes[0] is always the root

	byID  map[string]NodeID
	byPos map[posKey][]NodeID // kept sorted ascending by Start

	cursors map[cursorKey]*cursor
}

type posKey struct {
	seq   string
	typ   string
	start int
}

// NewStore returns an empty Store containing only the root.
func NewStore() *Store {
	s := &Store{
		byID:    make(map[string]NodeID),
		byPos:   make(map[posKey][]NodeID),
		cursors: make(map[cursorKey]*cursor),
	}
	root := &Node{id: rootID, parent: noNode, store: s, Type: "root"}
	s.nodes = append(s.nodes, root)
	return s
}

// Root returns the synthetic root container node.
func (s *Store) Root() *Node { return s.nodes[rootID] }

func (s *Store) node(id NodeID) *Node {
	if int(id) < 0 || int(id) >= len(s.nodes) {
		return nil
	}
	return s.nodes[id]
}

// posKeyOf returns the position-index key a node is currently filed under.
func posKeyOf(n *Node) posKey {
	return posKey{seq: n.SeqName, typ: n.Type, start: n.Start}
}

// NewNode allocates a node (not yet attached to any parent) and returns it.
// Callers must Attach it before it is reachable (invariant 6, §3).
func (s *Store) NewNode() *Node {
	n := &Node{id: NodeID(len(s.nodes)), parent: noNode, store: s}
	s.nodes = append(s.nodes, n)
	return n
}

// Attach makes child a new last child of parent, indexes it by ID (if it
// has one) and by position, and sets its parent link. child must not
// already be attached anywhere.
func (s *Store) Attach(parent, child *Node) {
	child.parent = parent.id
	parent.children = append(parent.children, child.id)
	if child.ID != "" {
		s.byID[child.ID] = child.id
	}
	s.indexPosition(child)
}

func (s *Store) indexPosition(n *Node) {
	k := posKeyOf(n)
	bucket := s.byPos[k]
	i := sort.Search(len(bucket), func(i int) bool { return s.node(bucket[i]).Start >= n.Start })
	bucket = append(bucket, 0)
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = n.id
	s.byPos[k] = bucket
}

func (s *Store) deindexPosition(n *Node, oldKey posKey) {
	bucket := s.byPos[oldKey]
	for i, id := range bucket {
		if id == n.id {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.byPos, oldKey)
	} else {
		s.byPos[oldKey] = bucket
	}
}

// Reindex re-files n under its current (seq,type,start) after Start or Type
// changed, given the key it used to live under.
func (s *Store) Reindex(n *Node, oldKey posKey) {
	if oldKey == posKeyOf(n) {
		return
	}
	s.deindexPosition(n, oldKey)
	s.indexPosition(n)
}

// Detach removes n from its current parent's child list, leaving n's own
// parent link at noNode. n stays in the ID/position indices. Reparenting
// (orphan resolution, find/make repair) goes through Reparent, which calls
// Detach and then links n under its new parent without re-indexing it.
func (s *Store) Detach(n *Node) {
	p := n.Parent()
	if p == nil {
		return
	}
	for i, id := range p.children {
		if id == n.id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = noNode
}

// Reparent detaches n from its current parent (if any) and attaches it to
// newParent, preserving n's ID/position index entries.
func (s *Store) Reparent(n, newParent *Node) {
	s.Detach(n)
	n.parent = newParent.id
	newParent.children = append(newParent.children, n.id)
}

// ByID looks up a node by its ID attribute.
func (s *Store) ByID(id string) (*Node, bool) {
	nid, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.node(nid), true
}

// ReindexID updates the ID index after a node's ID changes. The builder
// settles (mints, sanitizes) an ID before Attach, so it does not call this.
func (s *Store) ReindexID(oldID string, n *Node) {
	if oldID != "" {
		delete(s.byID, oldID)
	}
	if n.ID != "" {
		s.byID[n.ID] = n.id
	}
}

// ByPosition returns the bucket filed under (seq,type,start), sorted
// ascending by Start (trivially, since start is the key) — really this
// returns every node sharing that exact triple, which (absent minting
// collisions) is at most one node.
func (s *Store) ByPosition(seq, typ string, start int) []*Node {
	bucket := s.byPos[posKey{seq: seq, typ: typ, start: start}]
	out := make([]*Node, 0, len(bucket))
	for _, id := range bucket {
		out = append(out, s.node(id))
	}
	return out
}

// NearestStart returns the bucket for the largest start <= query, scanning
// sorted keys ascending and stopping at the first key strictly greater than
// query (§4.4).
func (s *Store) NearestStart(seq, typ string, start int) []*Node {
	var starts []int
	for k := range s.byPos {
		if k.seq == seq && k.typ == typ {
			starts = append(starts, k.start)
		}
	}
	sort.Ints(starts)
	best := -1
	for _, st := range starts {
		if st > start {
			break
		}
		best = st
	}
	if best == -1 {
		return nil
	}
	return s.ByPosition(seq, typ, best)
}

// ByType returns all descendants of start matching typ (case-insensitive),
// sorted ascending by Start (descending if reverse is true) — §4.4 and the
// ordering guarantee in §5(a).
func ByType(start *Node, typ string, reverse bool) []*Node {
	typ = lower(typ)
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, c := range n.Children() {
			if c.Type == typ {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(start)
	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return out[i].Start > out[j].Start
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// WalkDepthFirst visits start and its descendants depth-first in insertion
// order. visit returns (collect, stop): collect appends n to the result,
// stop ends the walk immediately (including not visiting n's children).
func WalkDepthFirst(start *Node, visit func(*Node) (collect bool, stop bool)) []*Node {
	var out []*Node
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		collect, stop := visit(n)
		if collect {
			out = append(out, n)
		}
		if stop {
			return true
		}
		for _, c := range n.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(start)
	return out
}

// cursorKey identifies one next_feature cursor: a (parent, type) pair.
type cursorKey struct {
	parent NodeID
	typ    string
}

// cursor is a latching iterator over a parent's children of one type,
// populated lazily on the first NextFeature call for its (parent, type)
// pair and kept until ResetCursor drops it (§4.4, §9 "generator-style
// cursors").
type cursor struct {
	nodes []*Node
	pos   int
}

// NextFeature steps a stateful cursor keyed by (parent, typ): the first
// call for a pair collects parent's direct children of typ in insertion
// order, each call yields the next one, and nil is returned once exhausted.
// A call for another parent uses that parent's own cursor and leaves this
// one where it stopped; only ResetCursor starts a pair over.
func (s *Store) NextFeature(parent *Node, typ string) *Node {
	typ = lower(typ)
	key := cursorKey{parent: parent.id, typ: typ}
	cur, ok := s.cursors[key]
	if !ok {
		cur = &cursor{}
		for _, c := range parent.Children() {
			if c.Type == typ {
				cur.nodes = append(cur.nodes, c)
			}
		}
		s.cursors[key] = cur
	}
	if cur.pos >= len(cur.nodes) {
		return nil
	}
	n := cur.nodes[cur.pos]
	cur.pos++
	return n
}

// ResetCursor drops the cached cursor for (parent, typ), forcing the next
// NextFeature call to re-populate it. Nothing inside the engine calls it;
// a cursor is otherwise never reset (§5's documented limitation).
func (s *Store) ResetCursor(parent *Node, typ string) {
	delete(s.cursors, cursorKey{parent: parent.id, typ: lower(typ)})
}
