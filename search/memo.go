// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"sync"

	"github.com/tankseek/tankseek/filetree"
	"github.com/tankseek/tankseek/sortcache"
)

// memoKey identifies a cached search's inputs, excluding paging: two
// requests that differ only in offset reuse the same computed list.
type memoKey struct {
	query    string
	hasField bool
	field    sortcache.Field
	hasOrder bool
	order    sortcache.Order
}

// memo is the single-slot last-search cache. A losing concurrent writer
// silently discards its own computation; the caller it serves still
// gets its own freshly computed, correct list.
type memo struct {
	mu    sync.Mutex
	key   memoKey
	valid bool
	ids   []filetree.Id
}

func (m *memo) lookup(key memoKey) ([]filetree.Id, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid || m.key != key {
		return nil, false
	}
	return m.ids, true
}

func (m *memo) store(key memoKey, ids []filetree.Id) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = key
	m.ids = ids
	m.valid = true
}
