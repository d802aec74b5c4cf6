// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postfilter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tankseek/tankseek/filetree"
)

func TestApplyExactness(t *testing.T) {
	tree := filetree.WithCapacity(4)
	var ids []filetree.Id
	for _, name := range []string{"file1.txt", "file2.txt", "file3.txt", "file4.txt"} {
		ids = append(ids, tree.AddChild(filetree.RootId, filetree.Entry{Name: name}))
	}

	got := Apply(tree, append([]filetree.Id{}, ids...), "file2")
	require.Equal(t, []filetree.Id{ids[1]}, got)

	got = Apply(tree, got, "file3")
	require.Empty(t, got)
}

func TestApplyRemovesNonContiguousCandidates(t *testing.T) {
	tree := filetree.WithCapacity(3)
	banana := tree.AddChild(filetree.RootId, filetree.Entry{Name: "banana"})
	canada := tree.AddChild(filetree.RootId, filetree.Entry{Name: "canada"})
	panama := tree.AddChild(filetree.RootId, filetree.Entry{Name: "panama"})

	got := Apply(tree, []filetree.Id{banana, canada, panama}, "nan")
	require.ElementsMatch(t, []filetree.Id{banana, panama}, got)
	require.NotContains(t, got, canada)
}

func TestApplyEscapesRegexMetacharacters(t *testing.T) {
	tree := filetree.WithCapacity(2)
	dotTxt := tree.AddChild(filetree.RootId, filetree.Entry{Name: "a.txt"})
	abtxt := tree.AddChild(filetree.RootId, filetree.Entry{Name: "abtxt"})

	got := Apply(tree, []filetree.Id{dotTxt, abtxt}, "a.t")
	require.Equal(t, []filetree.Id{dotTxt}, got)
}

func TestApplyCaseInsensitive(t *testing.T) {
	tree := filetree.WithCapacity(1)
	id := tree.AddChild(filetree.RootId, filetree.Entry{Name: "README.md"})

	got := Apply(tree, []filetree.Id{id}, "readme")
	require.Equal(t, []filetree.Id{id}, got)
}
