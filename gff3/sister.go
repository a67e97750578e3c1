package gff3

import "regexp"

// matchKind classifies how two intervals relate (§4.6 "twin/little/big").
type matchKind int

const (
	matchNone matchKind = iota
	// matchTwin: identical start and end.
	matchTwin
	// matchLittle: self contains the candidate.
	matchLittle
	// matchBig: the candidate contains self.
	matchBig
)

func classifyInterval(selfStart, selfEnd, candStart, candEnd int) matchKind {
	switch {
	case selfStart == candStart && selfEnd == candEnd:
		return matchTwin
	case selfStart <= candStart && selfEnd >= candEnd:
		return matchLittle
	case candStart <= selfStart && candEnd >= selfEnd:
		return matchBig
	default:
		return matchNone
	}
}

// typeMatches reports whether nodeType case-insensitively matches the
// type-pattern regex fragment pattern (one or more names joined by '|',
// per §4.5's rule form).
func typeMatches(nodeType, pattern string) bool {
	re, err := regexp.Compile("(?i)^(?:" + pattern + ")$")
	if err != nil {
		return lower(nodeType) == lower(pattern)
	}
	return re.MatchString(nodeType)
}

func childrenMatchingType(parent *Node, pattern string) []*Node {
	var out []*Node
	for _, c := range parent.Children() {
		if typeMatches(c.Type, pattern) {
			out = append(out, c)
		}
	}
	return out
}

// FindSister finds an existing sibling of self matching type pattern alt
// (§4.6). It loops looking for a twin (returned immediately), otherwise
// retains the best non-twin match found so far. The four multi-line cases
// are handled per §4.6:
//
//   - both single-line or both multi-line: compare self and candidate as
//     whole intervals.
//   - self multi-line, alt single-line: every one of self's segments must
//     be covered by some single-line candidate.
//   - self single-line, alt multi-line: at least one segment of some
//     multi-line candidate must match self.
func FindSister(self *Node, alt string) *Node {
	parent := self.Parent()
	if parent == nil {
		return nil
	}
	candidates := childrenMatchingType(parent, alt)
	selfMulti := self.multiLine()

	var best *Node
	for _, cand := range candidates {
		if cand == self {
			continue
		}
		altMulti := cand.multiLine()
		switch {
		case selfMulti == altMulti:
			kind := classifyInterval(self.Start, self.End, cand.Start, cand.End)
			if kind == matchTwin {
				return cand
			}
			if kind != matchNone && best == nil {
				best = cand
			}
		case selfMulti && !altMulti:
			if segmentsAllCovered(self, candidates) {
				return cand
			}
		case !selfMulti && altMulti:
			if anySegmentMatches(self, cand) && best == nil {
				best = cand
			}
		}
	}
	return best
}

// segmentsAllCovered reports whether every segment of multi-line self is
// covered (classifyInterval != matchNone against some single-line
// candidate's whole span) by at least one node in candidates.
func segmentsAllCovered(self *Node, candidates []*Node) bool {
	for i := range self.StartArray {
		segStart, segEnd := self.StartArray[i], self.EndArray[i]
		covered := false
		for _, cand := range candidates {
			if cand.multiLine() {
				continue
			}
			if classifyInterval(segStart, segEnd, cand.Start, cand.End) != matchNone {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return len(self.StartArray) > 0
}

// anySegmentMatches reports whether single-line self matches at least one
// segment of multi-line cand.
func anySegmentMatches(self, cand *Node) bool {
	for i := range cand.StartArray {
		if classifyInterval(self.Start, self.End, cand.StartArray[i], cand.EndArray[i]) != matchNone {
			return true
		}
	}
	return false
}

// MakeSister constructs a new sibling of type alt matching self (§4.6
// "make_sister mirrors find_sister's structure"). When self and alt match
// in multi-line-ness, it clones self and relabels the type. A multi-line
// self paired with a single-line alt creates one new sibling per segment.
// A single-line self paired with a multi-line alt is unsupported and
// returns a *StructuralError.
func (e *Engine) MakeSister(self *Node, alt string) ([]*Node, error) {
	parent := self.Parent()
	if parent == nil {
		parent = e.Store.Root()
	}
	altIsMulti := e.Config.isMultiline(alt)
	selfMulti := self.multiLine()

	switch {
	case selfMulti == altIsMulti && !selfMulti:
		n := e.cloneAs(self, alt, self.Start, self.End)
		e.Store.Attach(parent, n)
		return []*Node{n}, nil
	case selfMulti == altIsMulti && selfMulti:
		n := e.cloneAs(self, alt, self.Start, self.End)
		n.StartArray = append([]int(nil), self.StartArray...)
		n.EndArray = append([]int(nil), self.EndArray...)
		n.ScoreArray = append([]string(nil), self.ScoreArray...)
		n.PhaseArray = append([]byte(nil), self.PhaseArray...)
		e.Store.Attach(parent, n)
		return []*Node{n}, nil
	case selfMulti && !altIsMulti:
		var out []*Node
		for i := range self.StartArray {
			n := e.cloneAs(self, alt, self.StartArray[i], self.EndArray[i])
			e.Store.Attach(parent, n)
			out = append(out, n)
		}
		return out, nil
	default: // single-line self, multi-line alt: unsupported
		return nil, &StructuralError{
			Node:     self,
			Relation: "hasSister",
			Alt:      alt,
			Msg:      "cannot make a multi-line sister from a single-line feature",
		}
	}
}

func (e *Engine) cloneAs(self *Node, typ string, start, end int) *Node {
	n := e.Store.NewNode()
	n.SeqName = self.SeqName
	n.Source = self.Source
	n.Type = lower(typ)
	n.OrigType = typ
	n.Start = start
	n.End = end
	n.Score = "."
	n.Strand = self.Strand
	n.Phase = '.'
	n.Attributes = NewAttrMap()
	n.ID = e.mintID(n.Type)
	n.Name = n.ID
	n.Attributes.Set("ID", Scalar(n.ID))
	if p := self.Parent(); p != nil && p.ID != "" {
		n.Attributes.Set("Parent", Scalar(p.ID))
	}
	e.minted[n.ID] = true
	return n
}

// MakeChild clones self's positions into a new child of type alt (§4.5.2
// hasChild delegation).
func (e *Engine) MakeChild(self *Node, alt string) *Node {
	n := e.Store.NewNode()
	n.SeqName = self.SeqName
	n.Source = self.Source
	n.Type = lower(alt)
	n.OrigType = alt
	n.Start = self.Start
	n.End = self.End
	n.Score = "."
	n.Strand = self.Strand
	n.Phase = '.'
	n.Attributes = NewAttrMap()
	n.ID = e.mintID(n.Type)
	n.Name = n.ID
	n.Attributes.Set("ID", Scalar(n.ID))
	if self.ID != "" {
		n.Attributes.Set("Parent", Scalar(self.ID))
	}
	e.minted[n.ID] = true
	e.Store.Attach(self, n)
	return n
}
