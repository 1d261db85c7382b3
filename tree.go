// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// Entry is a stored key and its value. A *Entry returned by a Trie stays
// valid until the key is deleted.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Trie maps keys to values, sharing storage between keys with a common
// prefix. Node storage is delegated to a Backend.
type Trie[K any, V any, E comparable, S comparable] struct {
	traits  KeyTraits[K, E]
	backend Backend[E, *Entry[K, V], S]
	size    int
}

// WalkFn is used when walking the tree. Takes a
// key and value, returning if iteration should
// be terminated.
type WalkFn[K any, V any] func(k K, v V) bool

// New returns an empty Trie over the given backend.
func New[K any, V any, E comparable, S comparable](traits KeyTraits[K, E], backend Backend[E, *Entry[K, V], S]) *Trie[K, V, E, S] {
	return &Trie[K, V, E, S]{
		traits:  traits,
		backend: backend,
	}
}

// NewSimple returns an empty Trie with one heap node per trie position.
func NewSimple[K any, V any, E comparable](traits KeyTraits[K, E]) *Trie[K, V, E, *Node[E, *Entry[K, V]]] {
	return New[K, V, E, *Node[E, *Entry[K, V]]](traits, NewSimpleBackend[E, *Entry[K, V]](traits))
}

// NewDoubleArray returns an empty Trie stored in a double array.
func NewDoubleArray[K any, V any, E comparable](traits KeyTraits[K, E], opts ...Option) *Trie[K, V, E, int] {
	return New[K, V, E, int](traits, NewDoubleArrayBackend[E, *Entry[K, V]](traits, opts...))
}

// Len is used to return the number of elements in the tree
func (t *Trie[K, V, E, S]) Len() int {
	return t.size
}

// Backend returns the node storage of the trie.
func (t *Trie[K, V, E, S]) Backend() Backend[E, *Entry[K, V], S] {
	return t.backend
}

// Insert stores value under key unless the key is already present. It
// returns the entry for key and whether it was newly inserted; an existing
// entry keeps its value.
func (t *Trie[K, V, E, S]) Insert(key K, value V) (*Entry[K, V], bool) {
	elems := t.traits.Elements(key)
	n := t.backend.Root()
	for pos := 0; pos < len(elems); {
		pos, n = t.backend.MakeChild(n, elems, pos)
	}
	if e, ok := t.backend.Value(n); ok {
		return e, false
	}
	e := &Entry[K, V]{Key: key, Value: value}
	t.backend.SetValue(n, e)
	t.size++
	return e, true
}

// InsertAll inserts each entry in order, keeping the first value seen for
// a repeated key.
func (t *Trie[K, V, E, S]) InsertAll(entries ...Entry[K, V]) {
	for _, e := range entries {
		t.Insert(e.Key, e.Value)
	}
}

// Ref returns a pointer to the value stored under key, inserting the zero
// value first if the key is absent.
func (t *Trie[K, V, E, S]) Ref(key K) *V {
	var zero V
	e, _ := t.Insert(key, zero)
	return &e.Value
}

// Find returns the entry stored under key, or nil.
func (t *Trie[K, V, E, S]) Find(key K) *Entry[K, V] {
	n, ok := pathOf(t.backend, t.traits.Elements(key))
	if !ok {
		return nil
	}
	e, _ := t.backend.Value(n)
	return e
}

// Get is used to look up a specific key, returning
// the value and if it was found
func (t *Trie[K, V, E, S]) Get(key K) (V, bool) {
	if e := t.Find(key); e != nil {
		return e.Value, true
	}
	var zero V
	return zero, false
}

// Delete removes key and prunes every ancestor left with neither a value
// nor children. It reports whether the key was present.
func (t *Trie[K, V, E, S]) Delete(key K) bool {
	n, ok := pathOf(t.backend, t.traits.Elements(key))
	if !ok {
		return false
	}
	if _, ok := t.backend.Value(n); !ok {
		return false
	}
	t.backend.ClearValue(n)
	t.size--

	for {
		if _, ok := t.backend.Value(n); ok {
			break
		}
		if _, ok := t.backend.FirstChild(n); ok {
			break
		}
		p, ok := t.backend.Parent(n)
		if !ok {
			break
		}
		t.backend.RemoveChild(p, n)
		n = p
	}
	return true
}

// LongestPrefix returns the longest stored key that is a prefix of key.
func (t *Trie[K, V, E, S]) LongestPrefix(key K) (K, V, bool) {
	var lk K
	var lv V
	found := false
	t.WalkPath(key, func(k K, v V) bool {
		lk, lv, found = k, v, true
		return false
	})
	return lk, lv, found
}

// Iterator returns an iterator positioned before the first entry.
func (t *Trie[K, V, E, S]) Iterator() *Iterator[K, V, E, S] {
	root := t.backend.Root()
	return &Iterator[K, V, E, S]{
		traits:  t.traits,
		backend: t.backend,
		root:    root,
		node:    root,
	}
}

// Walk is used to walk the tree
func (t *Trie[K, V, E, S]) Walk(fn WalkFn[K, V]) {
	walk(t.Iterator(), fn)
}

// WalkPrefix is used to walk the tree under a prefix
func (t *Trie[K, V, E, S]) WalkPrefix(prefix K, fn WalkFn[K, V]) {
	it := t.Iterator()
	it.SeekPrefix(prefix)
	walk(it, fn)
}

func walk[K any, V any, E comparable, S comparable](it *Iterator[K, V, E, S], fn WalkFn[K, V]) {
	for {
		k, v, ok := it.Next()
		if !ok || fn(k, v) {
			return
		}
	}
}
