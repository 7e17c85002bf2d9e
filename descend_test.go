package arbor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescendReadTrail(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))
	a.NoError(tree.Create("/a/b/"))

	trail, err := tree.descend([]string{"a", "b"}, false)
	a.NoError(err)
	a.Len(trail, 3)
	a.Equal(tree.root, trail[0])
	a.Equal(tree.root.children["a"], trail[1])
	a.Equal(tree.root.children["a"].children["b"], trail[2])

	for _, n := range trail {
		a.Equal(int64(1), n.refcount)
	}

	trail[2].releaseRead()
	unwind(trail)
	for _, n := range trail {
		a.Equal(int64(0), n.refcount)
	}
}

func TestDescendWriteTerminal(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))

	trail, err := tree.descend([]string{"a"}, true)
	a.NoError(err)
	terminal := trail[len(trail)-1]
	a.Equal(1, terminal.wActive)
	a.Equal(0, tree.root.wActive)

	terminal.releaseWrite()
	unwind(trail)
}

func TestDescendMissingComponentUnwindsFully(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))

	_, err := tree.descend([]string{"a", "missing"}, false)
	a.Equal(ErrNotFound, err)
	a.Equal(int64(0), tree.root.refcount)
	a.Equal(int64(0), tree.root.children["a"].refcount)
}

func TestDescendWriteChainFromLCA(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))
	a.NoError(tree.Create("/a/b/"))
	a.NoError(tree.Create("/a/b/c/"))

	lcaTrail, err := tree.descend([]string{"a"}, true)
	a.NoError(err)
	lca := lcaTrail[len(lcaTrail)-1]

	chain, err := descendWriteChain(lca, []string{"b", "c"})
	a.NoError(err)
	a.Len(chain, 2)
	a.Equal(0, chain[0].wActive)
	a.Equal(1, chain[1].wActive)
	// Only the chain's terminal is left locked; the intermediate b was
	// released once c was acquired, per hand-over-hand discipline.
	a.Equal(0, lca.children["b"].rActive)

	releaseWriteIfAny(chain)
	unwind(chain)
	lca.releaseWrite()
	unwind(lcaTrail)
}

func TestDescendWriteChainEmptySuffix(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))

	lcaTrail, err := tree.descend([]string{"a"}, true)
	a.NoError(err)
	lca := lcaTrail[len(lcaTrail)-1]

	chain, err := descendWriteChain(lca, nil)
	a.NoError(err)
	a.Len(chain, 0)

	lca.releaseWrite()
	unwind(lcaTrail)
}

func TestDescendWriteChainMissingComponentUnwinds(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))
	a.NoError(tree.Create("/a/b/"))

	lcaTrail, err := tree.descend([]string{"a"}, true)
	a.NoError(err)
	lca := lcaTrail[len(lcaTrail)-1]

	chain, err := descendWriteChain(lca, []string{"b", "missing"})
	a.Equal(ErrNotFound, err)
	a.Nil(chain)
	a.Equal(int64(0), lca.children["b"].refcount)

	lca.releaseWrite()
	unwind(lcaTrail)
}
