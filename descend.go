package arbor

// descend walks components from the root, locking one node at a time
// under hand-over-hand discipline (spec §4.2): the root is locked first
// (read, or write if it is itself the terminal and writeTerminal is set),
// then each child is locked — read for an interior step, read-or-write for
// the final step depending on writeTerminal — before the parent's read
// lock is released. Every node visited, including the root, has its
// refcount incremented; the caller is responsible for releasing the
// terminal's structural lock and then calling unwind(trail) once it is
// done, in that order.
//
// On failure (a missing component), descend releases everything it
// acquired itself (the read lock on the last node reached, and every
// refcount on the trail) and returns ErrNotFound; the terminal is never
// locked in that case.
func (t *Tree) descend(components []string, writeTerminal bool) ([]*node, error) {
	root := t.root
	terminalIsRoot := len(components) == 0
	if terminalIsRoot && writeTerminal {
		root.acquireWrite()
		t.syncf("descend: write-locked root")
	} else {
		root.acquireRead()
		t.syncf("descend: read-locked root")
	}
	root.incRef()

	trail := make([]*node, 1, len(components)+1)
	trail[0] = root
	cur := root

	for i, name := range components {
		last := i == len(components)-1
		child, ok := cur.children[name]
		if !ok {
			// cur is always read-locked here: it can only be write-locked
			// if it were the terminal, but a non-terminal node never is.
			t.syncf("descend: %q missing under %q, releasing trail", name, cur.name)
			cur.releaseRead()
			unwind(trail)
			return nil, ErrNotFound
		}
		if last && writeTerminal {
			child.acquireWrite()
			t.syncf("descend: write-locked %q", name)
		} else {
			child.acquireRead()
			t.syncf("descend: read-locked %q", name)
		}
		child.incRef()
		cur.releaseRead()
		cur = child
		trail = append(trail, cur)
	}
	return trail, nil
}

// descendWriteChain extends an already write-locked node (start, owned by
// the caller) downward through components using only write locks — never
// read — hand-over-hand: each child is write-locked and ref-counted before
// its parent's write lock is released, except that start's lock is left
// for the caller to manage. This is only safe below a node (the LCA, in
// Move) that is itself write-locked, which already excludes every
// concurrent reader and writer from the entire subtree; see spec §4.6.
//
// On success it returns the chain of nodes below start, in descent order,
// with only the last one (or none, if components is empty) still
// structurally write-locked. On failure it unwinds everything it itself
// acquired and returns ErrNotFound; start is left untouched either way.
func descendWriteChain(start *node, components []string) ([]*node, error) {
	cur := start
	chain := make([]*node, 0, len(components))
	for _, name := range components {
		child, ok := cur.children[name]
		if !ok {
			if cur != start {
				cur.releaseWrite()
			}
			unwind(chain)
			return nil, ErrNotFound
		}
		child.acquireWrite()
		child.incRef()
		if cur != start {
			cur.releaseWrite()
		}
		chain = append(chain, child)
		cur = child
	}
	return chain, nil
}
