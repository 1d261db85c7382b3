// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"fmt"
)

// mustCode resolves the code for an element that is about to become an
// edge of the trie.
func mustCode[E comparable](c Coder[E], e E) int {
	code := c.Code(e)
	if code < 0 || code >= c.Size() {
		panic(fmt.Sprintf("trie: element %v is outside the key alphabet", e))
	}
	return code
}

// pathOf walks key from the root without creating nodes.
func pathOf[E comparable, T any, S comparable](b Backend[E, T, S], key []E) (S, bool) {
	n := b.Root()
	for pos := 0; pos < len(key); {
		var ok bool
		pos, n, ok = b.FindChild(n, key, pos)
		if !ok {
			return n, false
		}
	}
	return n, true
}
