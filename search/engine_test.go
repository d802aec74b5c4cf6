// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tankseek/tankseek/bigram"
	"github.com/tankseek/tankseek/filetree"
	"github.com/tankseek/tankseek/sortcache"
)

func int64p(v int64) *int64 { return &v }

func buildEngine(t *testing.T) (*Engine, map[string]filetree.Id) {
	t.Helper()
	tree := filetree.WithCapacity(8)
	ids := make(map[string]filetree.Id, 8)
	for _, n := range []string{"banana", "canada", "panama", "file1.txt", "file2.txt"} {
		ids[n] = tree.AddChild(filetree.RootId, filetree.Entry{Name: n})
	}
	idx := bigram.Build(tree)
	return New(tree, idx), ids
}

func TestSearchLengthThreeDispatchesPostFilter(t *testing.T) {
	e, ids := buildEngine(t)

	resp := e.Search(Request{Query: "nan"})
	require.Equal(t, StatusOK, resp.Status)

	var names []string
	for _, r := range resp.Results {
		names = append(names, r.Name)
	}
	require.Contains(t, names, "banana")
	require.Contains(t, names, "panama")
	require.NotContains(t, names, "canada")
	_ = ids
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	e, _ := buildEngine(t)
	resp := e.Search(Request{Query: ""})
	// 5 inserted entries plus the synthetic root.
	require.Equal(t, 6, resp.Total)
}

func TestSearchMemoizesIdenticalRequest(t *testing.T) {
	e, _ := buildEngine(t)
	first := e.Search(Request{Query: "file"})
	second := e.Search(Request{Query: "file"})
	require.Equal(t, first.Results, second.Results)
}

func TestSearchWithSortOrdersByFilename(t *testing.T) {
	e, _ := buildEngine(t)
	resp := e.Search(Request{Query: "", HasField: true, SortField: sortcache.Filename, HasOrder: true, SortOrder: sortcache.Ascending})
	require.Len(t, resp.Results, 6)
	// "Root" sorts before the lowercase names under raw byte comparison.
	require.Equal(t, "Root", resp.Results[0].Name)
	require.Equal(t, "banana", resp.Results[1].Name)
}

func TestSearchPaging(t *testing.T) {
	e, _ := buildEngine(t)
	resp := e.Search(Request{Query: "", Offset: 3})
	require.Len(t, resp.Results, 3)
	require.Equal(t, 6, resp.Total)
}

func TestSearchSizePredicate(t *testing.T) {
	tree := filetree.WithCapacity(2)
	tree.AddChild(filetree.RootId, filetree.Entry{Name: "small.txt", Size: int64p(10)})
	tree.AddChild(filetree.RootId, filetree.Entry{Name: "large.txt", Size: int64p(10000)})
	idx := bigram.Build(tree)
	e := New(tree, idx)

	resp := e.Search(Request{Query: "size:>1000"})
	require.Len(t, resp.Results, 1)
	require.Equal(t, "large.txt", resp.Results[0].Name)
}
