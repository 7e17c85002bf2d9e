// Package arbor implements an in-memory hierarchical directory tree that
// supports concurrent structural mutation and inspection. Multiple
// goroutines may simultaneously create, remove, list, and move nodes;
// independent subtrees progress independently while the tree's structural
// integrity and causal consistency are preserved.
//
// The engine is built from three cooperating layers: a per-node
// synchronizer (node.go) implementing a fair readers/writers discipline
// plus an in-flight refcount, a hand-over-hand descent protocol
// (descend.go), and the four public operations that compose descent with
// terminal locking (list.go, create.go, remove.go, move.go) plus an
// existence probe (exists.go).
package arbor

import (
	"github.com/arborfs/arbor/log"
)

// Tree is the owning handle to a directory tree's root node. The zero
// value is not usable; construct one with New.
type Tree struct {
	root   *node
	logger log.Log
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithLogger attaches a logger to every subsequent operation on the tree.
// The default logger is log.NoLog{}, so logging is opt-in and costs
// nothing when not configured.
func WithLogger(l log.Log) Option {
	return func(t *Tree) {
		t.logger = l
	}
}

// New constructs a fresh tree containing only the root.
func New(opts ...Option) *Tree {
	t := &Tree{
		root:   newNode("", nil),
		logger: log.NoLog{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Construct is an alias of New kept for readers coming from the
// specification's operation table, where tree construction is named
// "construct".
func Construct(opts ...Option) *Tree {
	return New(opts...)
}

// Destruct recursively detaches and destroys every node, post-order.
// Callers must ensure no concurrent operation is in flight: tear-down is
// not itself synchronized against concurrent API calls.
func (t *Tree) Destruct() {
	destroySubtree(t.root)
	t.root = nil
}

// Free is an alias of Destruct.
func (t *Tree) Free() {
	t.Destruct()
}

func destroySubtree(n *node) {
	if n == nil {
		return
	}
	for _, child := range n.children {
		destroySubtree(child)
	}
	n.children = nil
}

func (t *Tree) call(name string, args log.M) string {
	return t.logger.Call(name, args)
}

func (t *Tree) ret(name, cookie string, rets log.M) {
	t.logger.Return(name, cookie, rets)
}

func (t *Tree) tracef(msg string, args ...any) {
	t.logger.Logf(log.TopicTrace, msg, args...)
}

func (t *Tree) syncf(msg string, args ...any) {
	t.logger.Logf(log.TopicSync, msg, args...)
}

func (t *Tree) verdictf(msg string, args ...any) {
	t.logger.Logf(log.TopicVerdict, msg, args...)
}

func (t *Tree) errorf(msg string, args ...any) {
	t.logger.Logf(log.TopicError, msg, args...)
}
