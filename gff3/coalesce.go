package gff3

import "sort"

// coalesce merges a second input line into an existing multi-line node
// (§4.3.1).
func (e *Engine) coalesce(n *Node, f *Fields, lineNo int) error {
	if !n.multiLine() {
		e.initSegmentArrays(n)
	}

	oldKey := posKeyOf(n)

	i := sort.SearchInts(n.StartArray, f.Start)

	n.StartArray = insertInt(n.StartArray, i, f.Start)
	n.EndArray = insertInt(n.EndArray, i, f.End)
	n.ScoreArray = insertString(n.ScoreArray, i, f.Score)
	n.PhaseArray = insertByte(n.PhaseArray, i, f.Phase)

	// Every previously tracked attribute gets this segment's value, or a
	// missing placeholder if the new line doesn't carry it.
	for key := range n.TrackedAttrs {
		v, ok := f.Attributes.Get(key)
		if !ok {
			v = AttrValue{}
		}
		n.AttrArrays[key] = insertAttr(n.AttrArrays[key], i, v)
	}
	// Attributes new on this segment: left-pad to current length, mark
	// tracked, then insert.
	for _, key := range f.Attributes.Keys() {
		if n.TrackedAttrs[key] {
			continue
		}
		n.TrackedAttrs[key] = true
		padded := make([]AttrValue, len(n.StartArray)-1)
		n.AttrArrays[key] = padded
		v, _ := f.Attributes.Get(key)
		n.AttrArrays[key] = insertAttr(n.AttrArrays[key], i, v)
	}

	n.Start = min(n.Start, f.Start)
	n.End = max(n.End, f.End)
	e.Store.Reindex(n, oldKey)

	_ = lineNo
	return nil
}

// initSegmentArrays lazily expands n's current scalar attributes into
// one-element arrays, recording each key in TrackedAttrs (§4.3.1 step 1).
func (e *Engine) initSegmentArrays(n *Node) {
	n.StartArray = []int{n.Start}
	n.EndArray = []int{n.End}
	n.ScoreArray = []string{n.Score}
	n.PhaseArray = []byte{n.Phase}
	n.AttrArrays = make(map[string][]AttrValue)
	n.TrackedAttrs = make(map[string]bool)
	for _, key := range n.Attributes.Keys() {
		v, _ := n.Attributes.Get(key)
		n.AttrArrays[key] = []AttrValue{v}
		n.TrackedAttrs[key] = true
	}
}

func insertInt(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertString(s []string, i int, v string) []string {
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertByte(s []byte, i int, v byte) []byte {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertAttr(s []AttrValue, i int, v AttrValue) []AttrValue {
	s = append(s, AttrValue{})
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
