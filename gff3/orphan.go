package gff3

// isAncestor reports whether n appears in target's ancestor chain (target
// itself included), i.e. whether reparenting n onto target would close a
// cycle. A node still waiting under root whose resolved Parent would form
// such a cycle is left unresolved rather than reparented.
func isAncestor(n, target *Node) bool {
	for p := target; p != nil && !p.IsRoot(); p = p.Parent() {
		if p == n {
			return true
		}
	}
	return false
}

// resolveOrphans implements §4.3.2: after the stream ends, scan the root's
// direct children and reparent any whose Parent attribute now resolves,
// repeating to a fixed point (a newly reparented node may expose further
// resolvable Parents within the same sweep). A node still under root with
// an unresolved Parent is subject to UndefinedParent.
func (e *Engine) resolveOrphans() error {
	for {
		progressed := false
		for _, n := range e.Store.Root().Children() {
			parentVal, ok := n.Attributes.Get("Parent")
			if !ok || parentVal.IsList() || parentVal.Empty() {
				continue
			}
			target, found := e.Store.ByID(parentVal.String())
			if !found || target == n || isAncestor(n, target) {
				continue
			}
			e.Store.Reparent(n, target)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	for _, n := range e.Store.Root().Children() {
		parentVal, ok := n.Attributes.Get("Parent")
		if !ok || parentVal.Empty() {
			continue
		}
		if parentVal.IsList() {
			continue // already split into per-parent siblings at parse time
		}
		if _, found := e.Store.ByID(parentVal.String()); found {
			continue
		}
		if e.Config.undefinedParent == PolicyDie {
			return fatal(&OrphanError{ID: n.ID, Parent: parentVal.String()})
		}
		e.Config.diag.warnNode("unresolved parent left under root", n, "parent", parentVal.String())
	}
	return nil
}
