package sumtree

import "slices"

// node is a B+ tree node. Leaves (height 0) hold items; inner nodes hold
// children of height-1.
type node[T Item[S], S Summary[S]] struct {
	height   uint8
	summary  S
	count    int // items in this subtree
	items    []T
	children []*node[T, S]
}

func newLeaf[T Item[S], S Summary[S]](items []T) *node[T, S] {
	n := &node[T, S]{items: items}
	n.recompute()
	return n
}

func newInner[T Item[S], S Summary[S]](children []*node[T, S]) *node[T, S] {
	n := &node[T, S]{
		height:   children[0].height + 1,
		children: children,
	}
	n.recompute()
	return n
}

func (n *node[T, S]) isLeaf() bool {
	return n.height == 0
}

// size returns the number of direct entries.
func (n *node[T, S]) size() int {
	if n.isLeaf() {
		return len(n.items)
	}
	return len(n.children)
}

// recompute refreshes the cached count and summary from direct entries.
func (n *node[T, S]) recompute() {
	var sum S
	if n.isLeaf() {
		for _, item := range n.items {
			sum = sum.Add(item.Summary())
		}
		n.count = len(n.items)
	} else {
		count := 0
		for _, child := range n.children {
			sum = sum.Add(child.summary)
			count += child.count
		}
		n.count = count
	}
	n.summary = sum
}

// childAt returns the child holding ordinal i and the ordinal within it.
// i must be less than n.count.
func (n *node[T, S]) childAt(i int) (int, int) {
	for idx, child := range n.children {
		if i < child.count {
			return idx, i
		}
		i -= child.count
	}
	panic("sumtree: ordinal out of range")
}

// childForInsert is like childAt but accepts i == n.count, placing the new
// item at the end of the preceding child.
func (n *node[T, S]) childForInsert(i int) (int, int) {
	for idx, child := range n.children {
		if i <= child.count {
			return idx, i
		}
		i -= child.count
	}
	last := len(n.children) - 1
	return last, n.children[last].count
}

// insert places item at ordinal i. When the node overflows it is split and
// the new right sibling is returned.
func (n *node[T, S]) insert(i int, item T, maxChildren int) *node[T, S] {
	if n.isLeaf() {
		n.items = slices.Insert(n.items, i, item)
	} else {
		idx, local := n.childForInsert(i)
		if sibling := n.children[idx].insert(local, item, maxChildren); sibling != nil {
			n.children = slices.Insert(n.children, idx+1, sibling)
		}
	}
	if n.size() <= maxChildren {
		n.recompute()
		return nil
	}
	return n.splitHalf()
}

// splitHalf moves the upper half of the entries into a new sibling.
func (n *node[T, S]) splitHalf() *node[T, S] {
	mid := n.size() / 2
	var sibling *node[T, S]
	if n.isLeaf() {
		sibling = newLeaf(slices.Clone(n.items[mid:]))
		clear(n.items[mid:])
		n.items = n.items[:mid]
	} else {
		sibling = newInner(slices.Clone(n.children[mid:]))
		clear(n.children[mid:])
		n.children = n.children[:mid]
	}
	n.recompute()
	return sibling
}

// update applies fn to the item at ordinal i and refreshes summaries on the
// way back up.
func (n *node[T, S]) update(i int, fn func(*T)) {
	if n.isLeaf() {
		fn(&n.items[i])
	} else {
		idx, local := n.childAt(i)
		n.children[idx].update(local, fn)
	}
	n.recompute()
}

// remove deletes the item at ordinal i, rebalancing underfull children.
func (n *node[T, S]) remove(i, minChildren, maxChildren int) {
	if n.isLeaf() {
		n.items = slices.Delete(n.items, i, i+1)
	} else {
		idx, local := n.childAt(i)
		n.children[idx].remove(local, minChildren, maxChildren)
		n.rebalance(idx, minChildren, maxChildren)
	}
	n.recompute()
}

// rebalance restores occupancy of child idx by merging it with a neighbour,
// splitting the merged node again when it is too large.
func (n *node[T, S]) rebalance(idx, minChildren, maxChildren int) {
	child := n.children[idx]
	if child.size() >= minChildren {
		return
	}
	if child.size() == 0 {
		n.children = slices.Delete(n.children, idx, idx+1)
		return
	}
	if len(n.children) == 1 {
		return
	}

	left := idx
	if idx == len(n.children)-1 {
		left = idx - 1
	}
	merged := merge(n.children[left], n.children[left+1])
	if merged.size() <= maxChildren {
		n.children[left] = merged
		n.children = slices.Delete(n.children, left+1, left+2)
		return
	}
	sibling := merged.splitHalf()
	n.children[left] = merged
	n.children[left+1] = sibling
}

// merge concatenates two nodes of equal height into a new node.
func merge[T Item[S], S Summary[S]](a, b *node[T, S]) *node[T, S] {
	if a.isLeaf() {
		items := make([]T, 0, len(a.items)+len(b.items))
		items = append(items, a.items...)
		items = append(items, b.items...)
		return newLeaf(items)
	}
	children := make([]*node[T, S], 0, len(a.children)+len(b.children))
	children = append(children, a.children...)
	children = append(children, b.children...)
	return newInner(children)
}
