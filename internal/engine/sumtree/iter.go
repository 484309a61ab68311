package sumtree

// iterFrame is one level of the traversal path.
type iterFrame[T Item[S], S Summary[S]] struct {
	node *node[T, S]
	idx  int // child or item index being visited
}

// Iterator walks items forward from a starting position. The tree must not
// be mutated while an Iterator is in use.
type Iterator[T Item[S], S Summary[S]] struct {
	stack   []iterFrame[T, S]
	item    T
	started bool
}

// IterFrom returns an iterator positioned before the item at h. If h is out
// of range the iterator is exhausted.
func (t *Tree[T, S]) IterFrom(h Handle) *Iterator[T, S] {
	it := &Iterator[T, S]{}
	if !t.valid(h) {
		return it
	}
	it.stack = make([]iterFrame[T, S], 0, t.Height())
	n := t.root
	i := h.index
	for !n.isLeaf() {
		idx, local := n.childAt(i)
		it.stack = append(it.stack, iterFrame[T, S]{node: n, idx: idx})
		n = n.children[idx]
		i = local
	}
	it.stack = append(it.stack, iterFrame[T, S]{node: n, idx: i})
	return it
}

// Next advances to the next item and reports whether there is one.
func (it *Iterator[T, S]) Next() bool {
	if len(it.stack) == 0 {
		return false
	}
	if it.started {
		it.stack[len(it.stack)-1].idx++
	}
	it.started = true

	for len(it.stack) > 0 {
		top := len(it.stack) - 1
		frame := it.stack[top]
		if frame.node.isLeaf() {
			if frame.idx < len(frame.node.items) {
				it.item = frame.node.items[frame.idx]
				return true
			}
		} else if frame.idx < len(frame.node.children) {
			it.stack = append(it.stack, iterFrame[T, S]{node: frame.node.children[frame.idx]})
			continue
		}

		it.stack = it.stack[:top]
		if top > 0 {
			it.stack[top-1].idx++
		}
	}
	return false
}

// Item returns the current item.
func (it *Iterator[T, S]) Item() T {
	return it.item
}
