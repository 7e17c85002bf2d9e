package arbor

import (
	"sort"
	"strings"

	"github.com/arborfs/arbor/log"
)

// List enumerates the children of the node at path as a lexicographically
// sorted, comma-separated string. It returns ("", false) if path is
// syntactically invalid or does not name an existing node — the "no
// result" sentinel from spec §6/§9 — and ("", true) for an existing node
// with no children.
func (t *Tree) List(path string) (string, bool) {
	cookie := t.call("List", log.M{"path": path})
	result, ok := t.list(path)
	t.ret("List", cookie, log.M{"result": result, "ok": ok})
	return result, ok
}

func (t *Tree) list(path string) (string, bool) {
	components, valid := parsePath(path)
	if !valid {
		t.errorf("list: invalid path %q", path)
		return "", false
	}

	trail, err := t.descend(components, false)
	if err != nil {
		t.tracef("list: %v", annotate(ErrNotFound, "resolving %q", path))
		return "", false
	}
	terminal := trail[len(trail)-1]

	names := make([]string, 0, len(terminal.children))
	for name := range terminal.children {
		names = append(names, name)
	}
	sort.Strings(names)
	result := strings.Join(names, ",")

	terminal.releaseRead()
	unwind(trail)

	t.verdictf("list: %q -> %q", path, result)
	return result, true
}
