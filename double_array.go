// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"github.com/google/btree"
	"github.com/rs/zerolog"
)

const (
	rootState = 0
	freeCell  = -1

	freeListDegree = 32
)

// DoubleArray encodes the whole trie in two parallel arrays. A transition
// from state s on code c lands on t = base[s] + c and exists iff
// check[t] == s. Free cells have check == -1 and are kept in an ordered
// free-list.
//
// State ids are array cells. Relocating a parent's children moves those
// children to new cells, so a state id obtained before a MakeChild call may
// no longer be valid after it.
type DoubleArray[E comparable, T any] struct {
	coder Coder[E]

	base  []int
	check []int
	// child holds the code+1 of a state's first child and sibling the
	// code+1 of its next sibling; 0 means none.
	child   []int
	sibling []int

	values map[int]T
	free   *btree.BTreeG[int]

	logger      zerolog.Logger
	relocations int
	grows       int
}

// Stats describes how densely a DoubleArray uses its cells.
type Stats struct {
	TotalCells  int
	UsedCells   int
	FreeCells   int
	Values      int
	Relocations int
	Grows       int
}

// FillRatio is the share of cells holding a live state.
func (s Stats) FillRatio() float64 {
	if s.TotalCells == 0 {
		return 0
	}
	return float64(s.UsedCells) / float64(s.TotalCells)
}

// NewDoubleArrayBackend returns a backend holding only the root state.
func NewDoubleArrayBackend[E comparable, T any](coder Coder[E], opts ...Option) *DoubleArray[E, T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := &DoubleArray[E, T]{
		coder:  coder,
		values: make(map[int]T),
		free:   btree.NewOrderedG[int](freeListDegree),
		logger: cfg.logger,
	}
	d.grow(cfg.capacity)
	d.take(rootState, rootState)
	d.base[rootState] = 1
	return d
}

func (d *DoubleArray[E, T]) Root() int {
	return rootState
}

func (d *DoubleArray[E, T]) transition(s, code int) (int, bool) {
	t := d.base[s] + code
	if t <= rootState || t >= len(d.check) || d.check[t] != s {
		return 0, false
	}
	return t, true
}

func (d *DoubleArray[E, T]) FindChild(s int, key []E, pos int) (int, int, bool) {
	code := d.coder.Code(key[pos])
	if code < 0 || code >= d.coder.Size() {
		return pos + 1, 0, false
	}
	t, ok := d.transition(s, code)
	return pos + 1, t, ok
}

func (d *DoubleArray[E, T]) MakeChild(s int, key []E, pos int) (int, int) {
	code := mustCode[E](d.coder, key[pos])
	if t, ok := d.transition(s, code); ok {
		return pos + 1, t
	}

	if d.child[s] == 0 {
		d.base[s] = d.findBase([]int{code})
	} else if t := d.base[s] + code; t < len(d.check) && d.check[t] != freeCell {
		s = d.resolve(s, code)
	}

	t := d.base[s] + code
	d.ensure(t)
	d.claim(s, t, code)
	return pos + 1, t
}

func (d *DoubleArray[E, T]) FirstChild(s int) (int, bool) {
	c := d.child[s]
	if c == 0 {
		return 0, false
	}
	return d.base[s] + c - 1, true
}

func (d *DoubleArray[E, T]) NextSibling(s int) (int, bool) {
	if s == rootState {
		return 0, false
	}
	c := d.sibling[s]
	if c == 0 {
		return 0, false
	}
	return d.base[d.check[s]] + c - 1, true
}

func (d *DoubleArray[E, T]) Parent(s int) (int, bool) {
	if s == rootState {
		return 0, false
	}
	return d.check[s], true
}

func (d *DoubleArray[E, T]) RemoveChild(parent, child int) {
	if child <= rootState || child >= len(d.check) || d.check[child] != parent {
		return
	}
	d.unlink(parent, child)

	// Release the subtree below child one leaf at a time.
	n := child
	for {
		if c, ok := d.FirstChild(n); ok {
			n = c
			continue
		}
		if n == child {
			break
		}
		p := d.check[n]
		d.unlink(p, n)
		d.release(n)
		n = p
	}
	d.release(child)
}

func (d *DoubleArray[E, T]) Value(s int) (T, bool) {
	v, ok := d.values[s]
	return v, ok
}

func (d *DoubleArray[E, T]) SetValue(s int, v T) {
	d.values[s] = v
}

func (d *DoubleArray[E, T]) ClearValue(s int) {
	delete(d.values, s)
}

// Stats reports cell usage.
func (d *DoubleArray[E, T]) Stats() Stats {
	return Stats{
		TotalCells:  len(d.check),
		UsedCells:   len(d.check) - d.free.Len(),
		FreeCells:   d.free.Len(),
		Values:      len(d.values),
		Relocations: d.relocations,
		Grows:       d.grows,
	}
}

// resolve handles a collision at base[s]+code with a cell owned by another
// parent. The parent with fewer children (counting the pending one for s)
// is relocated; on a tie s moves. It returns the id of s afterwards.
func (d *DoubleArray[E, T]) resolve(s, code int) int {
	owner := d.check[d.base[s]+code]
	own := d.childCodes(s)
	other := d.childCodes(owner)

	if len(other) < len(own)+1 {
		return d.relocate(owner, other, s)
	}

	codes := make([]int, 0, len(own)+1)
	i := 0
	for ; i < len(own) && own[i] < code; i++ {
		codes = append(codes, own[i])
	}
	codes = append(codes, code)
	codes = append(codes, own[i:]...)
	return d.relocate(s, codes, s)
}

// relocate moves every child of p to a fresh base chosen so that all of
// codes land on free cells. Moved children keep their own base, so their
// children only need their check entries repointed. It returns the new id
// of track if track was one of the moved children.
func (d *DoubleArray[E, T]) relocate(p int, codes []int, track int) int {
	oldBase := d.base[p]
	newBase := d.findBase(codes)
	moved := 0

	for c := d.child[p]; c != 0; {
		from := oldBase + c - 1
		to := newBase + c - 1
		next := d.sibling[from]

		d.take(to, p)
		d.base[to] = d.base[from]
		d.child[to] = d.child[from]
		d.sibling[to] = d.sibling[from]
		for g := d.child[from]; g != 0; g = d.sibling[d.base[from]+g-1] {
			d.check[d.base[from]+g-1] = to
		}
		if v, ok := d.values[from]; ok {
			d.values[to] = v
		}
		d.release(from)

		if track == from {
			track = to
		}
		moved++
		c = next
	}

	d.base[p] = newBase
	d.relocations++
	d.logger.Debug().
		Int("state", p).
		Int("old_base", oldBase).
		Int("new_base", newBase).
		Int("moved", moved).
		Msg("relocated children")
	return track
}

// findBase probes free cells in ascending order for an offset at which
// every code lands on a free cell, growing the arrays when none does.
func (d *DoubleArray[E, T]) findBase(codes []int) int {
	lo, hi := codes[0], codes[len(codes)-1]
	base := -1
	d.free.Ascend(func(f int) bool {
		b := f - lo
		if b < 1 || !d.fits(b, codes) {
			return true
		}
		base = b
		return false
	})
	if base < 0 {
		base = max(len(d.check)-lo, 1)
	}
	d.ensure(base + hi)
	return base
}

func (d *DoubleArray[E, T]) fits(b int, codes []int) bool {
	for _, c := range codes {
		if t := b + c; t < len(d.check) && d.check[t] != freeCell {
			return false
		}
	}
	return true
}

func (d *DoubleArray[E, T]) childCodes(s int) []int {
	var codes []int
	for c := d.child[s]; c != 0; c = d.sibling[d.base[s]+c-1] {
		codes = append(codes, c-1)
	}
	return codes
}

// claim makes free cell t the child of s on code, keeping the sibling
// chain sorted by code.
func (d *DoubleArray[E, T]) claim(s, t, code int) {
	d.take(t, s)
	prev, cur := 0, d.child[s]
	for cur != 0 && cur-1 < code {
		prev, cur = cur, d.sibling[d.base[s]+cur-1]
	}
	d.sibling[t] = cur
	if prev == 0 {
		d.child[s] = code + 1
	} else {
		d.sibling[d.base[s]+prev-1] = code + 1
	}
}

// unlink removes t from the sibling chain of p.
func (d *DoubleArray[E, T]) unlink(p, t int) {
	code := t - d.base[p]
	prev, cur := 0, d.child[p]
	for cur != 0 && cur-1 != code {
		prev, cur = cur, d.sibling[d.base[p]+cur-1]
	}
	if cur == 0 {
		return
	}
	if prev == 0 {
		d.child[p] = d.sibling[t]
	} else {
		d.sibling[d.base[p]+prev-1] = d.sibling[t]
	}
	d.sibling[t] = 0
}

func (d *DoubleArray[E, T]) take(t, owner int) {
	d.free.Delete(t)
	d.check[t] = owner
	d.base[t] = 0
	d.child[t] = 0
	d.sibling[t] = 0
}

func (d *DoubleArray[E, T]) release(t int) {
	d.check[t] = freeCell
	d.base[t] = 0
	d.child[t] = 0
	d.sibling[t] = 0
	delete(d.values, t)
	d.free.ReplaceOrInsert(t)
}

// ensure grows the arrays so that t is addressable.
func (d *DoubleArray[E, T]) ensure(t int) {
	if t < len(d.check) {
		return
	}
	n := 2 * len(d.check)
	if n <= t {
		n = t + 1
	}
	old := len(d.check)
	d.grow(n)
	d.grows++
	d.logger.Debug().Int("from", old).Int("to", n).Msg("grew double array")
}

func (d *DoubleArray[E, T]) grow(n int) {
	for t := len(d.check); t < n; t++ {
		d.base = append(d.base, 0)
		d.check = append(d.check, freeCell)
		d.child = append(d.child, 0)
		d.sibling = append(d.sibling, 0)
		d.free.ReplaceOrInsert(t)
	}
}
