// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// compile time check
var (
	_ Backend[byte, any, *Node[byte, any]] = (*SimpleBackend[byte, any])(nil)
	_ Backend[byte, any, int]              = (*DoubleArray[byte, any])(nil)
)

// Backend is the node representation a Trie is built on. S identifies a
// node (a pointer for SimpleBackend, a state id for DoubleArray). T is the
// value slot type.
//
// Children of a node are ordered by element code. Identifiers returned by
// MakeChild may be invalidated by a later MakeChild on the same backend;
// all other identifiers remain valid until the node is removed.
type Backend[E comparable, T any, S comparable] interface {
	Root() S

	// MakeChild returns the child of s reached by key[pos], creating it if
	// it does not exist, together with pos+1.
	MakeChild(s S, key []E, pos int) (int, S)
	// FindChild is MakeChild without creation. The bool reports whether the
	// transition exists.
	FindChild(s S, key []E, pos int) (int, S, bool)

	FirstChild(s S) (S, bool)
	NextSibling(s S) (S, bool)
	// Parent reports false only for the root.
	Parent(s S) (S, bool)
	// RemoveChild detaches child from parent and releases its storage,
	// including any subtree below it.
	RemoveChild(parent, child S)

	Value(s S) (T, bool)
	SetValue(s S, v T)
	ClearValue(s S)
}
