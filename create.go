package arbor

import "github.com/arborfs/arbor/log"

// Create adds a new, empty directory at path. It reports ErrExist if path
// is "/" (which already exists) or if the final component already exists
// under its parent, ErrNotFound if any ancestor on the path is missing,
// and ErrInval if path is syntactically invalid.
func (t *Tree) Create(path string) error {
	cookie := t.call("Create", log.M{"path": path})
	err := t.create(path)
	t.ret("Create", cookie, log.M{"err": err})
	return err
}

func (t *Tree) create(path string) error {
	components, valid := parsePath(path)
	if !valid {
		t.errorf("create: invalid path %q", path)
		return ErrInval
	}
	if len(components) == 0 {
		// "/" already exists.
		return ErrExist
	}

	parentComponents := components[:len(components)-1]
	name := components[len(components)-1]

	trail, err := t.descend(parentComponents, true)
	if err != nil {
		t.tracef("create: %v", annotate(ErrNotFound, "resolving parent of %q", path))
		return ErrNotFound
	}
	parent := trail[len(trail)-1]

	if _, exists := parent.children[name]; exists {
		parent.releaseWrite()
		unwind(trail)
		t.verdictf("create: %q already exists", path)
		return ErrExist
	}

	parent.children[name] = newNode(name, parent)

	parent.releaseWrite()
	unwind(trail)
	t.verdictf("create: %q created", path)
	return nil
}
