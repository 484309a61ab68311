package sumtree

import (
	"errors"
	"fmt"
	"iter"
)

// Fan-out limits for tree nodes.
const (
	// DefaultMaxChildren is the maximum number of entries per node.
	DefaultMaxChildren = 8

	// MinMaxChildren is the smallest accepted fan-out.
	MinMaxChildren = 4
)

// ErrCorrupt is wrapped by errors returned from Check.
var ErrCorrupt = errors.New("sumtree: invariant violated")

// Summary is a monoid: the zero value is the identity and Add is associative.
type Summary[S any] interface {
	comparable
	Add(other S) S
}

// Item is an element that reduces to a summary. Summary must be pure.
type Item[S any] interface {
	Summary() S
}

// Handle identifies a position in a Tree. It is invalidated by any insertion
// or removal.
type Handle struct {
	index int
}

// Tree is an ordered sequence of items with per-subtree summaries.
type Tree[T Item[S], S Summary[S]] struct {
	root        *node[T, S]
	maxChildren int
	minChildren int
}

// Option configures a Tree.
type Option func(*config)

type config struct {
	maxChildren int
}

// WithMaxChildren sets the node fan-out. Values below MinMaxChildren are ignored.
func WithMaxChildren(n int) Option {
	return func(c *config) {
		if n >= MinMaxChildren {
			c.maxChildren = n
		}
	}
}

// New creates an empty tree.
func New[T Item[S], S Summary[S]](opts ...Option) *Tree[T, S] {
	cfg := config{maxChildren: DefaultMaxChildren}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tree[T, S]{
		maxChildren: cfg.maxChildren,
		minChildren: cfg.maxChildren / 2,
	}
}

// Len returns the number of items.
func (t *Tree[T, S]) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.count
}

// Summary returns the sum of all item summaries.
func (t *Tree[T, S]) Summary() S {
	if t.root == nil {
		var zero S
		return zero
	}
	return t.root.summary
}

// Height returns the number of levels, 0 for an empty tree.
func (t *Tree[T, S]) Height() int {
	if t.root == nil {
		return 0
	}
	return int(t.root.height) + 1
}

// All returns an iterator over every item in order.
func (t *Tree[T, S]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := t.IterFrom(Handle{})
		for it.Next() {
			if !yield(it.Item()) {
				return
			}
		}
	}
}

// Check validates the structural invariants: uniform leaf depth, node
// occupancy, cached counts and cached summaries.
func (t *Tree[T, S]) Check() error {
	if t.root == nil {
		return nil
	}
	return t.check(t.root, true)
}

func (t *Tree[T, S]) check(n *node[T, S], isRoot bool) error {
	size := n.size()
	if size > t.maxChildren {
		return fmt.Errorf("%w: node at height %d has %d entries, max %d", ErrCorrupt, n.height, size, t.maxChildren)
	}
	if !isRoot && size < t.minChildren {
		return fmt.Errorf("%w: node at height %d has %d entries, min %d", ErrCorrupt, n.height, size, t.minChildren)
	}

	var sum S
	count := 0
	if n.isLeaf() {
		for _, item := range n.items {
			sum = sum.Add(item.Summary())
		}
		count = len(n.items)
	} else {
		for _, child := range n.children {
			if child.height+1 != n.height {
				return fmt.Errorf("%w: child height %d under node height %d", ErrCorrupt, child.height, n.height)
			}
			if err := t.check(child, false); err != nil {
				return err
			}
			sum = sum.Add(child.summary)
			count += child.count
		}
	}

	if count != n.count {
		return fmt.Errorf("%w: cached count %d, actual %d", ErrCorrupt, n.count, count)
	}
	if sum != n.summary {
		return fmt.Errorf("%w: cached summary %v, actual %v", ErrCorrupt, n.summary, sum)
	}
	return nil
}

func (t *Tree[T, S]) valid(h Handle) bool {
	return h.index >= 0 && h.index < t.Len()
}
