package sumtree

// PushBack appends item and returns its handle.
func (t *Tree[T, S]) PushBack(item T) Handle {
	at := t.Len()
	t.insertAt(at, item)
	return Handle{index: at}
}

// InsertAfter inserts item immediately after h and returns the new item's
// handle. It reports false, leaving the tree unchanged, if h is out of range.
func (t *Tree[T, S]) InsertAfter(h Handle, item T) (Handle, bool) {
	if !t.valid(h) {
		return Handle{}, false
	}
	t.insertAt(h.index+1, item)
	return Handle{index: h.index + 1}, true
}

func (t *Tree[T, S]) insertAt(i int, item T) {
	if t.root == nil {
		t.root = newLeaf([]T{item})
		return
	}
	if sibling := t.root.insert(i, item, t.maxChildren); sibling != nil {
		t.root = newInner([]*node[T, S]{t.root, sibling})
	}
}

// Modify applies fn to the item at h in place and recomputes the summaries
// on the path to the root. It reports false if h is out of range.
func (t *Tree[T, S]) Modify(h Handle, fn func(*T)) bool {
	if !t.valid(h) {
		return false
	}
	t.root.update(h.index, fn)
	return true
}

// Update replaces the item at h with the item returned by fn and returns
// fn's result. It reports false if h is out of range.
func Update[T Item[S], S Summary[S], R any](t *Tree[T, S], h Handle, fn func(T) (R, T)) (R, bool) {
	var result R
	ok := t.Modify(h, func(item *T) {
		result, *item = fn(*item)
	})
	return result, ok
}

// EditOrRemove applies fn to the item at h. When fn returns true the item is
// removed and fn is applied to the item that slides into its position; this
// repeats until fn returns false or the sequence is exhausted. When fn
// returns false the edited item is kept.
//
// Removing the last item leaves the tree empty; callers that need a
// non-empty tree must repopulate it.
func (t *Tree[T, S]) EditOrRemove(h Handle, fn func(*T) bool) {
	i := h.index
	for i >= 0 && i < t.Len() {
		var remove bool
		t.root.update(i, func(item *T) {
			remove = fn(item)
		})
		if !remove {
			return
		}
		t.removeAt(i)
	}
}

// Remove deletes the item at h. It reports false if h is out of range.
func (t *Tree[T, S]) Remove(h Handle) bool {
	if !t.valid(h) {
		return false
	}
	t.removeAt(h.index)
	return true
}

func (t *Tree[T, S]) removeAt(i int) {
	t.root.remove(i, t.minChildren, t.maxChildren)
	for !t.root.isLeaf() && len(t.root.children) == 1 {
		t.root = t.root.children[0]
	}
	if t.root.count == 0 {
		t.root = nil
	}
}
