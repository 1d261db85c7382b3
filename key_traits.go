// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Coder maps key elements onto dense integer codes. Codes are in
// [0, Size()); Code returns -1 for an element outside the alphabet.
// Children of every node are ordered by code, so the code order is also
// the iteration order of a Trie.
type Coder[E comparable] interface {
	Code(E) int
	Size() int
}

// KeyTraits decomposes a key into the sequence of elements the trie
// branches on.
type KeyTraits[K any, E comparable] interface {
	Coder[E]
	Elements(K) []E
}

// StringKeys branches on the bytes of a string.
type StringKeys struct{}

func (StringKeys) Elements(k string) []byte { return []byte(k) }
func (StringKeys) Code(b byte) int         { return int(b) }
func (StringKeys) Size() int               { return 256 }

// ByteKeys branches on the bytes of a byte slice.
type ByteKeys struct{}

func (ByteKeys) Elements(k []byte) []byte { return k }
func (ByteKeys) Code(b byte) int          { return int(b) }
func (ByteKeys) Size() int                { return 256 }

// IntegerKeys branches on the elements of an integer slice whose values
// all fall in [Min, Max].
type IntegerKeys[E constraints.Integer] struct {
	Min E
	Max E
}

func (k IntegerKeys[E]) Elements(key []E) []E { return key }

func (k IntegerKeys[E]) Code(e E) int {
	if e < k.Min || e > k.Max {
		return -1
	}
	return int(e) - int(k.Min)
}

func (k IntegerKeys[E]) Size() int {
	return int(k.Max) - int(k.Min) + 1
}

// SymbolKeys branches on the runes of a string drawn from a fixed
// alphabet. Codes follow the order the alphabet was given in.
type SymbolKeys struct {
	symbols []rune
	codes   map[rune]int
}

// NewSymbolKeys builds the traits for the given alphabet. It panics on a
// repeated symbol.
func NewSymbolKeys(alphabet string) *SymbolKeys {
	s := &SymbolKeys{codes: make(map[rune]int)}
	for _, r := range alphabet {
		if _, ok := s.codes[r]; ok {
			panic(fmt.Sprintf("trie.NewSymbolKeys: duplicate symbol %q", r))
		}
		s.codes[r] = len(s.symbols)
		s.symbols = append(s.symbols, r)
	}
	return s
}

func (s *SymbolKeys) Elements(k string) []rune { return []rune(k) }

func (s *SymbolKeys) Code(r rune) int {
	c, ok := s.codes[r]
	if !ok {
		return -1
	}
	return c
}

func (s *SymbolKeys) Size() int { return len(s.symbols) }
