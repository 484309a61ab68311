package sumtree

// SeekLeq finds the first item at which the running sum of proj reaches
// target, counting the item's right edge as inside the item. It returns the
// item's handle and target minus the sum of proj over all preceding items,
// which is at most proj of the item itself.
//
// Seeking exactly the end of the sequence lands on the last item with a
// remainder equal to its full extent. It reports false when target exceeds
// the total.
func (t *Tree[T, S]) SeekLeq(target uint64, proj func(S) uint64) (Handle, uint64, bool) {
	return t.seek(target, proj, true)
}

// Seek is like SeekLeq but excludes the right edge: the remainder is always
// strictly less than proj of the returned item. A target on a boundary
// resolves to the following item, and the end of the sequence is not found.
func (t *Tree[T, S]) Seek(target uint64, proj func(S) uint64) (Handle, uint64, bool) {
	return t.seek(target, proj, false)
}

func (t *Tree[T, S]) seek(target uint64, proj func(S) uint64, inclusive bool) (Handle, uint64, bool) {
	if t.root == nil {
		return Handle{}, 0, false
	}
	within := func(v uint64) bool {
		return target < v || (inclusive && target == v)
	}
	if !within(proj(t.root.summary)) {
		return Handle{}, 0, false
	}

	n := t.root
	ordinal := 0
	for !n.isLeaf() {
		var next *node[T, S]
		for _, child := range n.children {
			v := proj(child.summary)
			if within(v) {
				next = child
				break
			}
			target -= v
			ordinal += child.count
		}
		if next == nil {
			return Handle{}, 0, false
		}
		n = next
	}

	for i, item := range n.items {
		v := proj(item.Summary())
		if within(v) {
			return Handle{index: ordinal + i}, target, true
		}
		target -= v
	}
	return Handle{}, 0, false
}

// SumUntil returns the sum of proj over all items strictly before h.
func (t *Tree[T, S]) SumUntil(h Handle, proj func(S) uint64) (uint64, bool) {
	if !t.valid(h) {
		return 0, false
	}
	var sum uint64
	n := t.root
	i := h.index
	for !n.isLeaf() {
		idx, local := n.childAt(i)
		for _, child := range n.children[:idx] {
			sum += proj(child.summary)
		}
		n = n.children[idx]
		i = local
	}
	for _, item := range n.items[:i] {
		sum += proj(item.Summary())
	}
	return sum, true
}

// CountUntil returns the zero-based ordinal of h.
func (t *Tree[T, S]) CountUntil(h Handle) (int, bool) {
	if !t.valid(h) {
		return 0, false
	}
	return h.index, true
}

// HandleAt returns the handle of the item with the given ordinal.
func (t *Tree[T, S]) HandleAt(ordinal int) (Handle, bool) {
	h := Handle{index: ordinal}
	return h, t.valid(h)
}

// LastHandle returns the handle of the last item.
func (t *Tree[T, S]) LastHandle() (Handle, bool) {
	if t.Len() == 0 {
		return Handle{}, false
	}
	return Handle{index: t.Len() - 1}, true
}

// Get returns the item at h.
func (t *Tree[T, S]) Get(h Handle) (T, bool) {
	if !t.valid(h) {
		var zero T
		return zero, false
	}
	return t.leafItem(h.index), true
}

// At returns the item at h. It panics if h is out of range.
func (t *Tree[T, S]) At(h Handle) T {
	if !t.valid(h) {
		panic("sumtree: handle out of range")
	}
	return t.leafItem(h.index)
}

func (t *Tree[T, S]) leafItem(i int) T {
	n := t.root
	for !n.isLeaf() {
		var idx int
		idx, i = n.childAt(i)
		n = n.children[idx]
	}
	return n.items[i]
}
