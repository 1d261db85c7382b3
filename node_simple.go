// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"sort"
)

const (
	// indexThreshold is the fan-out above which a node also keeps a
	// code-indexed map of its children.
	indexThreshold = 16
	// unindexThreshold is the fan-out at or below which the map is dropped.
	unindexThreshold = indexThreshold / 2
)

// Node is one trie position of a SimpleBackend. A node owns its children;
// the parent link is a plain back-reference.
type Node[E comparable, T any] struct {
	parent   *Node[E, T]
	elem     E
	code     int
	children []*Node[E, T]
	index    map[int]*Node[E, T]
	value    T
	hasValue bool
}

// Element returns the element labelling the edge into n.
func (n *Node[E, T]) Element() E {
	return n.elem
}

func (n *Node[E, T]) numChildren() int {
	return len(n.children)
}

// search returns the position of code among the children and whether a
// child with that code exists.
func (n *Node[E, T]) search(code int) (int, bool) {
	idx := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].code >= code
	})
	return idx, idx < len(n.children) && n.children[idx].code == code
}

func (n *Node[E, T]) getChild(code int) *Node[E, T] {
	if n.index != nil {
		return n.index[code]
	}
	if idx, ok := n.search(code); ok {
		return n.children[idx]
	}
	return nil
}

func (n *Node[E, T]) addChild(child *Node[E, T]) {
	idx, _ := n.search(child.code)
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n

	if n.index != nil {
		n.index[child.code] = child
	} else if len(n.children) > indexThreshold {
		n.index = make(map[int]*Node[E, T], len(n.children))
		for _, ch := range n.children {
			n.index[ch.code] = ch
		}
	}
}

func (n *Node[E, T]) removeChild(child *Node[E, T]) {
	idx, ok := n.search(child.code)
	if !ok || n.children[idx] != child {
		return
	}
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil

	if n.index != nil {
		delete(n.index, child.code)
		if len(n.children) <= unindexThreshold {
			n.index = nil
		}
	}
}

// SimpleBackend keeps one heap node per trie position, with children held
// in a code-sorted slice.
type SimpleBackend[E comparable, T any] struct {
	coder Coder[E]
	root  *Node[E, T]
}

// NewSimpleBackend returns an empty backend branching on the given coder.
func NewSimpleBackend[E comparable, T any](coder Coder[E]) *SimpleBackend[E, T] {
	return &SimpleBackend[E, T]{
		coder: coder,
		root:  &Node[E, T]{code: -1},
	}
}

func (b *SimpleBackend[E, T]) Root() *Node[E, T] {
	return b.root
}

func (b *SimpleBackend[E, T]) MakeChild(n *Node[E, T], key []E, pos int) (int, *Node[E, T]) {
	e := key[pos]
	code := mustCode[E](b.coder, e)
	if child := n.getChild(code); child != nil {
		return pos + 1, child
	}
	child := &Node[E, T]{elem: e, code: code}
	n.addChild(child)
	return pos + 1, child
}

func (b *SimpleBackend[E, T]) FindChild(n *Node[E, T], key []E, pos int) (int, *Node[E, T], bool) {
	code := b.coder.Code(key[pos])
	if code < 0 || code >= b.coder.Size() {
		return pos + 1, nil, false
	}
	child := n.getChild(code)
	return pos + 1, child, child != nil
}

func (b *SimpleBackend[E, T]) FirstChild(n *Node[E, T]) (*Node[E, T], bool) {
	if len(n.children) == 0 {
		return nil, false
	}
	return n.children[0], true
}

func (b *SimpleBackend[E, T]) NextSibling(n *Node[E, T]) (*Node[E, T], bool) {
	p := n.parent
	if p == nil {
		return nil, false
	}
	idx, ok := p.search(n.code)
	if !ok || idx+1 >= len(p.children) {
		return nil, false
	}
	return p.children[idx+1], true
}

func (b *SimpleBackend[E, T]) Parent(n *Node[E, T]) (*Node[E, T], bool) {
	return n.parent, n.parent != nil
}

func (b *SimpleBackend[E, T]) RemoveChild(parent, child *Node[E, T]) {
	parent.removeChild(child)
}

func (b *SimpleBackend[E, T]) Value(n *Node[E, T]) (T, bool) {
	return n.value, n.hasValue
}

func (b *SimpleBackend[E, T]) SetValue(n *Node[E, T], v T) {
	n.value = v
	n.hasValue = true
}

func (b *SimpleBackend[E, T]) ClearValue(n *Node[E, T]) {
	var zero T
	n.value = zero
	n.hasValue = false
}
