// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// Iterator walks the entries of a Trie in preorder, which is key order
// under the element codes. It keeps no stack: it moves between nodes using
// only the backend's first child, next sibling and parent links, so key
// length does not bound its memory.
//
// An Iterator is invalidated by any Insert or Delete on its Trie.
type Iterator[K any, V any, E comparable, S comparable] struct {
	traits  KeyTraits[K, E]
	backend Backend[E, *Entry[K, V], S]

	// root is the node the traversal is confined to.
	root    S
	node    S
	pos     *Entry[K, V]
	started bool
	done    bool
}

// Front returns the entry that has been iterated to.
func (i *Iterator[K, V, E, S]) Front() *Entry[K, V] {
	return i.pos
}

// Next returns the next entry in key order.
func (i *Iterator[K, V, E, S]) Next() (K, V, bool) {
	for !i.done {
		if !i.advance() {
			i.done = true
			break
		}
		if e, ok := i.backend.Value(i.node); ok {
			i.pos = e
			return e.Key, e.Value, true
		}
	}
	i.pos = nil
	var zk K
	var zv V
	return zk, zv, false
}

// SeekPrefix confines the iterator to keys starting with prefix. It must be
// called before the first Next.
func (i *Iterator[K, V, E, S]) SeekPrefix(prefix K) {
	n, ok := pathOf(i.backend, i.traits.Elements(prefix))
	if !ok {
		i.done = true
		return
	}
	i.root = n
	i.node = n
	i.started = false
}

// advance moves to the next node in preorder, reporting false once the
// subtree under root is exhausted.
func (i *Iterator[K, V, E, S]) advance() bool {
	if !i.started {
		i.started = true
		return true
	}
	if c, ok := i.backend.FirstChild(i.node); ok {
		i.node = c
		return true
	}
	for i.node != i.root {
		if s, ok := i.backend.NextSibling(i.node); ok {
			i.node = s
			return true
		}
		p, ok := i.backend.Parent(i.node)
		if !ok {
			break
		}
		i.node = p
	}
	return false
}
