// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// PathIterator is used to iterate over the entries whose keys are
// prefixes of a given key, shortest first. This will iterate over the same
// values that Trie.WalkPath does.
type PathIterator[K any, V any, E comparable, S comparable] struct {
	backend Backend[E, *Entry[K, V], S]
	path    []E
	depth   int
	node    S
	started bool
	done    bool
}

// PathIterator returns an iterator over the stored prefixes of key.
func (t *Trie[K, V, E, S]) PathIterator(key K) *PathIterator[K, V, E, S] {
	return &PathIterator[K, V, E, S]{
		backend: t.backend,
		path:    t.traits.Elements(key),
		node:    t.backend.Root(),
	}
}

func (i *PathIterator[K, V, E, S]) Next() (K, V, bool) {
	for !i.done {
		if i.started {
			if i.depth >= len(i.path) {
				i.done = true
				break
			}
			var ok bool
			i.depth, i.node, ok = i.backend.FindChild(i.node, i.path, i.depth)
			if !ok {
				i.done = true
				break
			}
		}
		i.started = true
		if e, ok := i.backend.Value(i.node); ok {
			return e.Key, e.Value, true
		}
	}
	var zk K
	var zv V
	return zk, zv, false
}

// WalkPath is used to walk the tree, but only visiting nodes
// from the root down to a given leaf.
func (t *Trie[K, V, E, S]) WalkPath(key K, fn WalkFn[K, V]) {
	it := t.PathIterator(key)
	for {
		k, v, ok := it.Next()
		if !ok || fn(k, v) {
			return
		}
	}
}
