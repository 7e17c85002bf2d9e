package arbor

import "github.com/arborfs/arbor/log"

// Remove deletes the empty directory at path. It reports ErrBusy for "/",
// ErrNotFound if path does not exist, and ErrNotEmpty if the directory
// still has children.
func (t *Tree) Remove(path string) error {
	cookie := t.call("Remove", log.M{"path": path})
	err := t.remove(path)
	t.ret("Remove", cookie, log.M{"err": err})
	return err
}

func (t *Tree) remove(path string) error {
	components, valid := parsePath(path)
	if !valid {
		t.errorf("remove: invalid path %q", path)
		return ErrInval
	}
	if len(components) == 0 {
		return ErrBusy
	}

	parentComponents := components[:len(components)-1]
	name := components[len(components)-1]

	trail, err := t.descend(parentComponents, true)
	if err != nil {
		t.tracef("remove: %v", annotate(ErrNotFound, "resolving parent of %q", path))
		return ErrNotFound
	}
	parent := trail[len(trail)-1]

	child, ok := parent.children[name]
	if !ok {
		parent.releaseWrite()
		unwind(trail)
		t.tracef("remove: %q not found", path)
		return ErrNotFound
	}

	child.acquireWrite()
	// No in-flight descent may still be passing through child: wait for
	// its subtree refcount to drain before we can safely detach it.
	child.waitQuiescent()

	if len(child.children) > 0 {
		child.releaseWrite()
		parent.releaseWrite()
		unwind(trail)
		t.verdictf("remove: %q not empty", path)
		return ErrNotEmpty
	}

	delete(parent.children, name)

	child.releaseWrite()
	parent.releaseWrite()
	unwind(trail)

	child.children = nil
	t.verdictf("remove: %q removed", path)
	return nil
}
