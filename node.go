package arbor

import "sync"

// node is a single directory in the tree. children is guarded by the
// node's own structural lock (read for lookup, write for insert/remove);
// name and parent change only in Move, under the structural write locks of
// the node and of its old and new parent; the counters are guarded by mu.
//
// A node must never be referenced once its refcount and structural lock
// have both dropped to zero and it has been detached from its parent (see
// Tree.remove).
type node struct {
	name     string
	parent   *node
	children map[string]*node

	mu          sync.Mutex
	readersCV   *sync.Cond
	writersCV   *sync.Cond
	quiescentCV *sync.Cond

	rActive  int
	wActive  int
	rWaiting int
	wWaiting int
	refcount int64
}

func newNode(name string, parent *node) *node {
	n := &node{
		name:     name,
		parent:   parent,
		children: make(map[string]*node),
	}
	n.readersCV = sync.NewCond(&n.mu)
	n.writersCV = sync.NewCond(&n.mu)
	n.quiescentCV = sync.NewCond(&n.mu)
	return n
}

// acquireRead implements the acquire-read half of the per-node
// readers/writers protocol (spec §4.1). A reader that arrives while a
// writer is waiting (not just while one is active) must still queue
// behind it at least once, which is what prevents writer starvation under
// a steady stream of readers.
func (n *node) acquireRead() {
	n.mu.Lock()
	if n.wWaiting > 0 || n.wActive > 0 {
		n.rWaiting++
		for {
			n.readersCV.Wait()
			if n.wActive == 0 {
				break
			}
		}
		n.rWaiting--
	}
	n.rActive++
	n.mu.Unlock()
}

func (n *node) releaseRead() {
	n.mu.Lock()
	if n.rActive == 0 {
		panic("arbor: releaseRead on node with no active readers")
	}
	n.rActive--
	if n.rActive == 0 {
		n.writersCV.Signal()
	}
	n.mu.Unlock()
}

func (n *node) acquireWrite() {
	n.mu.Lock()
	for n.rActive > 0 || n.wActive > 0 {
		n.wWaiting++
		n.writersCV.Wait()
		n.wWaiting--
	}
	n.wActive = 1
	n.mu.Unlock()
}

// releaseWrite releases the structural write lock. Readers are woken as a
// cohort (Broadcast) rather than one at a time: a writer on a shared
// ancestor blocks every descent passing through it, and waking only one
// reader on release would serialize every subsequent descent through that
// node, destroying the parallelism the tree exists to offer.
func (n *node) releaseWrite() {
	n.mu.Lock()
	if n.wActive == 0 {
		panic("arbor: releaseWrite on node with no active writer")
	}
	n.wActive = 0
	if n.rWaiting > 0 {
		n.readersCV.Broadcast()
	} else {
		n.writersCV.Signal()
	}
	n.mu.Unlock()
}

// incRef marks the calling descent as passing through n. Paired with
// decRef, always called and later undone under n.mu.
func (n *node) incRef() {
	n.mu.Lock()
	n.refcount++
	n.mu.Unlock()
}

// decRef is the unwind half of incRef: it always wakes every waiter on
// quiescentCV so a concurrent remove/move waiting on n's refcount to drain
// gets a chance to recheck, whether or not this particular decrement
// reached zero.
func (n *node) decRef() {
	n.mu.Lock()
	if n.refcount == 0 {
		panic("arbor: decRef on node with zero refcount")
	}
	n.refcount--
	n.quiescentCV.Broadcast()
	n.mu.Unlock()
}

// waitQuiescent blocks until no in-flight descent has n on its trail. Used
// by remove and move before a structural change to n's position would
// invalidate an in-flight descent's unwind path.
func (n *node) waitQuiescent() {
	n.mu.Lock()
	for n.refcount != 0 {
		n.quiescentCV.Wait()
	}
	n.mu.Unlock()
}

// unwind walks a descent trail from terminal to root (trail is stored
// root-first, so we walk it in reverse) decrementing every node's refcount.
func unwind(trail []*node) {
	for i := len(trail) - 1; i >= 0; i-- {
		trail[i].decRef()
	}
}

// releaseWriteIfAny releases the structural write lock on the last node of
// a hand-over-hand write chain, if the chain is non-empty. An empty chain
// means the operation's parent coincided with the chain's starting node,
// whose lock is owned by the caller that produced it.
func releaseWriteIfAny(chain []*node) {
	if len(chain) > 0 {
		chain[len(chain)-1].releaseWrite()
	}
}
