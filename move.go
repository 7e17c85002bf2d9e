package arbor

import "github.com/arborfs/arbor/log"

// Move relocates the node at source to target, renaming it in the
// process. It reports ErrBusy if source is "/", ErrExist if target is "/"
// or already names an existing node, ErrNotFound if source or any
// ancestor of target does not exist, ErrMovingAncestor if target names a
// location underneath source itself, and ErrInval for a syntactically
// invalid path. Moving a path onto itself is a no-op success.
func (t *Tree) Move(source, target string) error {
	cookie := t.call("Move", log.M{"source": source, "target": target})
	err := t.move(source, target)
	t.ret("Move", cookie, log.M{"err": err})
	return err
}

func (t *Tree) move(source, target string) error {
	srcComponents, srcValid := parsePath(source)
	tgtComponents, tgtValid := parsePath(target)
	if !srcValid || !tgtValid {
		t.errorf("move: invalid path source %q target %q", source, target)
		return ErrInval
	}
	if len(srcComponents) == 0 {
		return ErrBusy
	}
	if len(tgtComponents) == 0 {
		return ErrExist
	}

	if pathEqual(srcComponents, tgtComponents) {
		trail, err := t.descend(srcComponents, false)
		if err != nil {
			t.tracef("move: %q not found", source)
			return ErrNotFound
		}
		terminal := trail[len(trail)-1]
		terminal.releaseRead()
		unwind(trail)
		t.verdictf("move: %q onto itself, no-op", source)
		return nil
	}

	// A node can never be moved underneath its own subtree: the below-LCA
	// sub-descent that follows would otherwise have to pass back through a
	// node it is itself trying to detach.
	if isStrictPrefix(srcComponents, tgtComponents) {
		t.verdictf("move: %q is an ancestor of %q", source, target)
		return ErrMovingAncestor
	}

	lca := commonPrefix(srcComponents, tgtComponents)

	trail, err := t.descend(lca, true)
	if err != nil {
		t.tracef("move: %v", annotate(ErrNotFound, "resolving LCA %q", joinPath(lca)))
		return ErrNotFound
	}
	lcaNode := trail[len(trail)-1]

	// target is a strict ancestor of source exactly when the LCA of the two
	// paths equals target itself (source cannot be a prefix of target: that
	// was ruled out above). lcaNode, just write-locked, proves target
	// exists, and source != target was already handled above, so this can
	// only be the "moving something onto one of its own ancestors" case.
	if pathEqual(lca, tgtComponents) {
		lcaNode.releaseWrite()
		unwind(trail)
		t.verdictf("move: target %q is an ancestor of source %q", target, source)
		return ErrExist
	}

	srcSuffix := srcComponents[len(lca):]
	tgtSuffix := tgtComponents[len(lca):]
	srcParentSuffix := srcSuffix[:len(srcSuffix)-1]
	srcName := srcSuffix[len(srcSuffix)-1]
	tgtParentSuffix := tgtSuffix[:len(tgtSuffix)-1]
	tgtName := tgtSuffix[len(tgtSuffix)-1]

	// source and target diverge at the first suffix component (otherwise
	// their common prefix would reach further than lca), so a chain below
	// lca computed for one suffix can never collide with a chain computed
	// for the other. The parents therefore coincide only when both parent
	// suffixes are empty, i.e. both parents are lcaNode itself; sameParent
	// below handles that case with a single chain and a single parent.
	sameParent := pathEqual(srcParentSuffix, tgtParentSuffix)

	if sameParent {
		chain, err := descendWriteChain(lcaNode, srcParentSuffix)
		if err != nil {
			lcaNode.releaseWrite()
			unwind(trail)
			t.tracef("move: %v", annotate(ErrNotFound, "resolving parent of %q", source))
			return ErrNotFound
		}
		parent := lcaNode
		if len(chain) > 0 {
			parent = chain[len(chain)-1]
		}

		abort := func(errno Errno) error {
			releaseWriteIfAny(chain)
			lcaNode.releaseWrite()
			unwind(chain)
			unwind(trail)
			return errno
		}

		srcNode, ok := parent.children[srcName]
		if !ok {
			t.tracef("move: %q not found", source)
			return abort(ErrNotFound)
		}
		if _, exists := parent.children[tgtName]; exists {
			t.verdictf("move: %q already exists", target)
			return abort(ErrExist)
		}

		srcNode.acquireWrite()
		srcNode.waitQuiescent()

		delete(parent.children, srcName)
		srcNode.name = tgtName
		parent.children[tgtName] = srcNode

		srcNode.releaseWrite()
		releaseWriteIfAny(chain)
		lcaNode.releaseWrite()
		unwind(chain)
		unwind(trail)
		t.verdictf("move: %q -> %q", source, target)
		return nil
	}

	srcChain, err := descendWriteChain(lcaNode, srcParentSuffix)
	if err != nil {
		lcaNode.releaseWrite()
		unwind(trail)
		t.tracef("move: %v", annotate(ErrNotFound, "resolving parent of %q", source))
		return ErrNotFound
	}
	tgtChain, err := descendWriteChain(lcaNode, tgtParentSuffix)
	if err != nil {
		releaseWriteIfAny(srcChain)
		lcaNode.releaseWrite()
		unwind(srcChain)
		unwind(trail)
		t.tracef("move: %q missing ancestor", target)
		return ErrNotFound
	}

	srcParent := lcaNode
	if len(srcChain) > 0 {
		srcParent = srcChain[len(srcChain)-1]
	}
	tgtParent := lcaNode
	if len(tgtChain) > 0 {
		tgtParent = tgtChain[len(tgtChain)-1]
	}

	abort := func(errno Errno) error {
		releaseWriteIfAny(srcChain)
		releaseWriteIfAny(tgtChain)
		lcaNode.releaseWrite()
		unwind(tgtChain)
		unwind(srcChain)
		unwind(trail)
		return errno
	}

	srcNode, ok := srcParent.children[srcName]
	if !ok {
		t.tracef("move: %q not found", source)
		return abort(ErrNotFound)
	}
	if _, exists := tgtParent.children[tgtName]; exists {
		t.verdictf("move: %q already exists", target)
		return abort(ErrExist)
	}

	srcNode.acquireWrite()
	srcNode.waitQuiescent()

	delete(srcParent.children, srcName)
	srcNode.parent = tgtParent
	srcNode.name = tgtName
	tgtParent.children[tgtName] = srcNode

	srcNode.releaseWrite()
	releaseWriteIfAny(srcChain)
	releaseWriteIfAny(tgtChain)
	lcaNode.releaseWrite()
	unwind(tgtChain)
	unwind(srcChain)
	unwind(trail)
	t.verdictf("move: %q -> %q", source, target)
	return nil
}
