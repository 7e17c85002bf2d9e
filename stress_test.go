package arbor

import (
	"context"
	"fmt"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentDisjointSubtrees is end-to-end scenario 5: two goroutines
// repeatedly create and remove within disjoint subtrees and must both
// terminate cleanly, leaving every path they touched gone again.
func TestConcurrentDisjointSubtrees(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/left/"))
	a.NoError(tree.Create("/right/"))

	const iterations = 200
	wg, _ := errgroup.WithContext(context.Background())

	wg.Go(func() error {
		for i := 0; i < iterations; i++ {
			name := fmt.Sprintf("/left/n%d/", i)
			if err := tree.Create(name); err != nil {
				return fmt.Errorf("create %q: %w", name, err)
			}
			if err := tree.Remove(name); err != nil {
				return fmt.Errorf("remove %q: %w", name, err)
			}
		}
		return nil
	})
	wg.Go(func() error {
		for i := 0; i < iterations; i++ {
			name := fmt.Sprintf("/right/n%d/", i)
			if err := tree.Create(name); err != nil {
				return fmt.Errorf("create %q: %w", name, err)
			}
			if err := tree.Remove(name); err != nil {
				return fmt.Errorf("remove %q: %w", name, err)
			}
		}
		return nil
	})

	a.NoError(wg.Wait())

	left, ok := tree.List("/left/")
	a.True(ok)
	a.Equal("", left)
	right, ok := tree.List("/right/")
	a.True(ok)
	a.Equal("", right)
}

// TestConcurrentCrossingMoves is end-to-end scenario 6: two goroutines
// each try to move one top-level subtree underneath the other at the same
// time. Both moves serialize on the root, their common LCA, so at most one
// can succeed without producing a cycle; the loser must see either
// MOVING_ANCESTOR or NOT_FOUND. Move checks for an into-descendant move on
// the paths alone, so here the loser reports NOT_FOUND: the winner's move
// already relocated the loser's target parent.
func TestConcurrentCrossingMoves(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/x/"))
	a.NoError(tree.Create("/y/"))

	wg, _ := errgroup.WithContext(context.Background())
	results := make(chan error, 2)

	wg.Go(func() error {
		results <- tree.Move("/x/", "/y/x/")
		return nil
	})
	wg.Go(func() error {
		results <- tree.Move("/y/", "/x/y/")
		return nil
	})
	a.NoError(wg.Wait())
	close(results)

	var errs []error
	for err := range results {
		errs = append(errs, err)
	}
	a.Len(errs, 2)

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		a.True(err == ErrMovingAncestor || err == ErrNotFound,
			"unexpected error %v", err)
	}
	a.Equal(1, successes, "exactly one of the two crossing moves must succeed")

	// The tree must remain acyclic and internally consistent: exactly one
	// of the two possible post-states holds.
	xList, xOK := tree.List("/x/")
	yList, yOK := tree.List("/y/")
	if xOK && !yOK {
		// /y/ was absorbed into /x/y/.
		a.Equal("y", xList)
		nested, ok := tree.List("/x/y/")
		a.True(ok)
		a.Equal("", nested)
	} else if yOK && !xOK {
		// /x/ was absorbed into /y/x/.
		a.Equal("x", yList)
		nested, ok := tree.List("/y/x/")
		a.True(ok)
		a.Equal("", nested)
	} else {
		t.Fatalf("expected exactly one of /x/ or /y/ to survive at top level, got xOK=%v yOK=%v", xOK, yOK)
	}
}

// TestRefcountStableAcrossCalls exercises the refcount invariant from
// section 8: every node on a call's descent path returns to its prior
// refcount once the call returns, for both successful and failing calls.
func TestRefcountStableAcrossCalls(t *testing.T) {
	a := assert.New(t)
	tree := New()
	a.NoError(tree.Create("/a/"))
	a.NoError(tree.Create("/a/b/"))

	snapshot := func() map[string]int64 {
		return map[string]int64{
			"root": tree.root.refcount,
			"a":    tree.root.children["a"].refcount,
			"b":    tree.root.children["a"].children["b"].refcount,
		}
	}

	before := snapshot()
	_, _ = tree.List("/a/b/")
	a.Empty(pretty.Compare(before, snapshot()))

	_ = tree.Create("/a/b/c/")
	a.Empty(pretty.Compare(before, snapshot()))

	// A failing call must unwind exactly as faithfully as a succeeding one.
	_ = tree.Create("/a/missing/d/")
	a.Empty(pretty.Compare(before, snapshot()))
}
