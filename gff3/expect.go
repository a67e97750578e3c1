package gff3

import (
	"strconv"
	"strings"
)

// Validate checks n against every rule registered for its type (§4.5) and
// dispatches the configured flag for each unsatisfied rule. It recurses
// depth-first over n's children.
func (e *Engine) Validate(n *Node) error {
	for _, rule := range e.Config.rules[n.Type] {
		ok, msg := e.evaluate(n, rule)
		if ok {
			continue
		}
		if err := e.dispatch(n, rule, msg); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := e.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// evaluate reports whether rule is satisfied for n, and a diagnostic
// message to use if not.
func (e *Engine) evaluate(n *Node, rule *Rule) (bool, string) {
	switch {
	case strings.EqualFold(rule.Relation, "hasParent"):
		p := n.Parent()
		if p == nil || p.IsRoot() {
			return false, "no parent"
		}
		return typeMatches(p.Type, rule.Alt), "parent type " + p.Type + " does not match " + rule.Alt

	case strings.EqualFold(rule.Relation, "hasChild"):
		return len(ByType(n, rule.Alt, false)) > 0, "no descendant of type " + rule.Alt

	case strings.EqualFold(rule.Relation, "hasSister"):
		return FindSister(n, rule.Alt) != nil, "no sister of type " + rule.Alt

	default:
		return e.evaluateComparison(n, rule)
	}
}

// evaluateComparison implements the `<op>[attr_a,attr_b]` relation form
// (§4.5): numeric ops use numeric compare, eq/ne/lt/gt use lexical compare.
func (e *Engine) evaluateComparison(n *Node, rule *Rule) (bool, string) {
	op, attrA, attrB, ok := parseComparisonRelation(rule.Relation)
	if !ok {
		return true, "" // malformed relation: not a structural rule this engine recognizes
	}

	other := n
	if strings.EqualFold(rule.Alt, "PARENT") {
		if p := n.Parent(); p != nil {
			other = p
		}
	}

	firstVal, _ := n.Attributes.Get(attrA)
	secondVal, _ := other.Attributes.Get(attrB)
	first, second := firstVal.String(), secondVal.String()

	ok = compareValues(op, first, second)
	return ok, "comparison " + first + " " + op + " " + second + " failed"
}

// parseComparisonRelation parses "<op>[attr_a,attr_b]".
func parseComparisonRelation(relation string) (op, attrA, attrB string, ok bool) {
	open := strings.IndexByte(relation, '[')
	shut := strings.IndexByte(relation, ']')
	if open < 0 || shut < 0 || shut < open {
		return "", "", "", false
	}
	op = strings.TrimSpace(relation[:open])
	inner := relation[open+1 : shut]
	parts := strings.SplitN(inner, ",", 2)
	if len(parts) != 2 {
		return "", "", "", false
	}
	return op, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func compareValues(op, a, b string) bool {
	switch strings.ToLower(op) {
	case "eq":
		return a == b
	case "ne":
		return a != b
	case "lt":
		return a < b
	case "gt":
		return a > b
	case "==":
		if fa, fb, ok := bothNumeric(a, b); ok {
			return fa == fb
		}
		return a == b
	case "!=":
		if fa, fb, ok := bothNumeric(a, b); ok {
			return fa != fb
		}
		return a != b
	case "<":
		if fa, fb, ok := bothNumeric(a, b); ok {
			return fa < fb
		}
		return a < b
	case ">":
		if fa, fb, ok := bothNumeric(a, b); ok {
			return fa > fb
		}
		return a > b
	case "<=":
		if fa, fb, ok := bothNumeric(a, b); ok {
			return fa <= fb
		}
		return a <= b
	case ">=":
		if fa, fb, ok := bothNumeric(a, b); ok {
			return fa >= fb
		}
		return a >= b
	default:
		return false
	}
}

func bothNumeric(a, b string) (float64, float64, bool) {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return fa, fb, true
}

// dispatch applies rule.Flag to n after rule was found unsatisfied, per
// the action table in §4.5.
func (e *Engine) dispatch(n *Node, rule *Rule, msg string) error {
	switch rule.Flag {
	case PolicyIgnore:
		return nil
	case PolicyWarn:
		e.Config.diag.warnNode(msg, n, "relation", rule.Relation, "alt", rule.Alt)
		return nil
	case PolicyDie:
		e.Config.diag.dieNode(msg, n, "relation", rule.Relation, "alt", rule.Alt)
		return fatal(&StructuralError{Node: n, Relation: rule.Relation, Alt: rule.Alt, Msg: msg})
	case PolicySkip:
		e.Config.diag.warnNode(msg, n, "relation", rule.Relation, "alt", rule.Alt)
		n.Skip = true
		return nil
	case PolicyFind:
		e.repairFind(n, rule, msg)
		return nil
	case PolicyMake:
		return e.repairMake(n, rule, msg)
	case PolicyForce:
		if e.repairFind(n, rule, msg) {
			return nil
		}
		return e.repairMake(n, rule, msg)
	}
	return nil
}

// repairFind attempts §4.5.1's find strategy. Only hasParent is supported;
// every other relation is a documented no-op (§4.5.1 "Other relations:
// no-op", and §9's open question).
func (e *Engine) repairFind(n *Node, rule *Rule, msg string) bool {
	if !strings.EqualFold(rule.Relation, "hasParent") {
		e.Config.diag.warnNode("find has no effect for this relation", n, "relation", rule.Relation)
		return false
	}

	candidates := e.Store.ByPosition(n.SeqName, lower(rule.Alt), n.Start)
	for _, c := range candidates {
		if c.End == n.End {
			e.reparentTo(n, c)
			return true
		}
	}

	for _, c := range e.Store.NearestStart(n.SeqName, lower(rule.Alt), n.Start) {
		if c.End >= n.End {
			e.reparentTo(n, c)
			return true
		}
	}

	e.Config.diag.warnNode(msg+" (find found no candidate)", n, "relation", rule.Relation, "alt", rule.Alt)
	return false
}

func (e *Engine) reparentTo(n, newParent *Node) {
	e.Store.Reparent(n, newParent)
	n.Attributes.Set("Parent", Scalar(newParent.ID))
}

// repairMake attempts §4.5.2's make strategy.
func (e *Engine) repairMake(n *Node, rule *Rule, msg string) error {
	switch strings.ToLower(rule.Relation) {
	case "hasparent":
		if strings.EqualFold(rule.Alt, "region") {
			region := e.makeRegionFor(n)
			e.reparentTo(n, region)
			return nil
		}
		parent := e.makeParentOfType(n, rule.Alt)
		e.reparentTo(n, parent)
		return nil
	case "haschild":
		e.MakeChild(n, rule.Alt)
		return nil
	case "hassister":
		_, err := e.MakeSister(n, rule.Alt)
		if err != nil {
			e.Config.diag.dieNode(err.Error(), n)
			return fatal(err)
		}
		return nil
	default:
		e.Config.diag.warnNode("make has no effect for this relation", n, "relation", rule.Relation)
		return nil
	}
}

// makeRegionFor returns the existing region child of root for n.SeqName, if
// any, else synthesizes one spanning [1, max(end) over all nodes sharing
// n.SeqName], strand '+' (§4.5.2). Every gene on a seq_name shares the one
// synthesized region rather than minting a fresh one per gene.
func (e *Engine) makeRegionFor(n *Node) *Node {
	for _, c := range e.Store.Root().Children() {
		if c.Type == "region" && c.SeqName == n.SeqName {
			return c
		}
	}

	maxEnd := n.End
	for _, m := range WalkDepthFirst(e.Store.Root(), func(x *Node) (bool, bool) { return true, false }) {
		if m.SeqName == n.SeqName && m.End > maxEnd {
			maxEnd = m.End
		}
	}
	region := e.Store.NewNode()
	region.SeqName = n.SeqName
	region.Type = "region"
	region.OrigType = "region"
	region.Source = "."
	region.Score = "."
	region.Strand = '+'
	region.Phase = '.'
	region.Start = 1
	region.End = maxEnd
	region.Attributes = NewAttrMap()
	region.ID = e.mintID("region")
	region.Name = region.ID
	region.Attributes.Set("ID", Scalar(region.ID))
	e.minted[region.ID] = true
	e.Store.Attach(e.Store.Root(), region)
	return region
}

// makeParentOfType synthesizes a node of type alt spanning n's own
// [start,end], inheriting n's strand and current parent chain (§4.5.2).
func (e *Engine) makeParentOfType(n *Node, alt string) *Node {
	current := n.Parent()
	if current == nil {
		current = e.Store.Root()
	}
	p := e.Store.NewNode()
	p.SeqName = n.SeqName
	p.Type = lower(alt)
	p.OrigType = alt
	p.Source = "."
	p.Score = "."
	p.Strand = n.Strand
	p.Phase = '.'
	p.Start = n.Start
	p.End = n.End
	p.Attributes = NewAttrMap()
	p.ID = e.mintID(p.Type)
	p.Name = p.ID
	p.Attributes.Set("ID", Scalar(p.ID))
	if parentVal, ok := current.Attributes.Get("Parent"); ok {
		p.Attributes.Set("Parent", parentVal)
	}
	e.minted[p.ID] = true
	e.Store.Attach(current, p)
	return p
}
