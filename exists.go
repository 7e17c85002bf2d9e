package arbor

import "github.com/arborfs/arbor/log"

// Exists reports whether path names an existing node, without the cost of
// enumerating its children. It is a read-only extension to the five core
// operations, grounded on the teacher's own Stat-style existence checks
// (memfs.MemFS.Stat in the teacher repository): List already tells a
// caller whether a path exists (via its "no result" sentinel), but forces
// it to pay for a sorted child enumeration it may not want.
//
// Exists returns false both for a syntactically invalid path and for a
// path that does not exist; it does not distinguish the two, matching the
// precedent set by List's single "no result" sentinel.
func (t *Tree) Exists(path string) bool {
	cookie := t.call("Exists", log.M{"path": path})
	ok := t.exists(path)
	t.ret("Exists", cookie, log.M{"ok": ok})
	return ok
}

func (t *Tree) exists(path string) bool {
	components, valid := parsePath(path)
	if !valid {
		return false
	}
	trail, err := t.descend(components, false)
	if err != nil {
		return false
	}
	terminal := trail[len(trail)-1]
	terminal.releaseRead()
	unwind(trail)
	return true
}
