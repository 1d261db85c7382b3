package trie

// rawIterator visits each of the nodes in the tree, even the ones that
// carry no value, in the same stackless preorder as Iterator. It tracks the
// depth of the current node, which is useful for checking the shape of a
// tree.
type rawIterator[E comparable, T any, S comparable] struct {
	backend Backend[E, T, S]

	// pos is the current position of the iterator.
	pos   S
	depth int

	started bool
	done    bool
}

func newRawIterator[E comparable, T any, S comparable](b Backend[E, T, S]) *rawIterator[E, T, S] {
	return &rawIterator[E, T, S]{backend: b, pos: b.Root()}
}

// Front returns the current node that has been iterated to.
func (i *rawIterator[E, T, S]) Front() S {
	return i.pos
}

// Depth returns the number of edges between the root and the current node.
func (i *rawIterator[E, T, S]) Depth() int {
	return i.depth
}

// Next advances the iterator to the next node.
func (i *rawIterator[E, T, S]) Next() bool {
	if i.done {
		return false
	}
	if !i.started {
		i.started = true
		return true
	}
	if c, ok := i.backend.FirstChild(i.pos); ok {
		i.pos = c
		i.depth++
		return true
	}
	for i.depth > 0 {
		if s, ok := i.backend.NextSibling(i.pos); ok {
			i.pos = s
			return true
		}
		i.pos, _ = i.backend.Parent(i.pos)
		i.depth--
	}
	i.done = true
	return false
}

// Shape summarises the node graph of a backend.
type Shape struct {
	Nodes    int
	Values   int
	MaxDepth int
}

// ShapeOf walks every node reachable from the root of b.
func ShapeOf[E comparable, T any, S comparable](b Backend[E, T, S]) Shape {
	var s Shape
	it := newRawIterator(b)
	for it.Next() {
		s.Nodes++
		if _, ok := b.Value(it.Front()); ok {
			s.Values++
		}
		if it.Depth() > s.MaxDepth {
			s.MaxDepth = it.Depth()
		}
	}
	return s
}
