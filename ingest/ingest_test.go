// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tankseek/tankseek/filetree"
)

type sliceSource struct {
	recs []Record
	pos  int
}

func (s *sliceSource) Next() (Record, error) {
	if s.pos >= len(s.recs) {
		return Record{}, io.EOF
	}
	r := s.recs[s.pos]
	s.pos++
	return r, nil
}

func int64p(v int64) *int64 { return &v }

func TestBuildDeduplicatesInteriorDirectories(t *testing.T) {
	tree := filetree.WithCapacity(8)
	src := &sliceSource{recs: []Record{
		{Path: `usr\bin\file1.txt`, Size: int64p(100)},
		{Path: `usr\bin\file2.txt`, Size: int64p(200)},
		{Path: `usr\lib\file3.txt`, Size: int64p(300)},
	}}

	require.NoError(t, Build(tree, src))

	usr, ok := tree.Child(filetree.RootId, "usr")
	require.True(t, ok)

	bin, ok := tree.Child(usr, "bin")
	require.True(t, ok)
	lib, ok := tree.Child(usr, "lib")
	require.True(t, ok)
	require.NotEqual(t, bin, lib)

	file1, ok := tree.Child(bin, "file1.txt")
	require.True(t, ok)
	e, ok := tree.Get(file1)
	require.True(t, ok)
	require.Equal(t, int64(100), *e.Size)
}

func TestBuildAcceptsForwardSlashes(t *testing.T) {
	tree := filetree.WithCapacity(4)
	src := &sliceSource{recs: []Record{{Path: "usr/bin/tool"}}}
	require.NoError(t, Build(tree, src))

	usr, ok := tree.Child(filetree.RootId, "usr")
	require.True(t, ok)
	bin, ok := tree.Child(usr, "bin")
	require.True(t, ok)
	_, ok = tree.Child(bin, "tool")
	require.True(t, ok)
}

func TestBuildUpdatesInteriorNodeNamedDirectly(t *testing.T) {
	tree := filetree.WithCapacity(4)
	src := &sliceSource{recs: []Record{
		{Path: `usr\bin\file.txt`},
		{Path: `usr\bin`, Size: int64p(4096), Attributes: 16},
	}}
	require.NoError(t, Build(tree, src))

	usr, _ := tree.Child(filetree.RootId, "usr")
	bin, ok := tree.Child(usr, "bin")
	require.True(t, ok)

	e, ok := tree.Get(bin)
	require.True(t, ok)
	require.Equal(t, int64(4096), *e.Size)
	require.Equal(t, uint32(16), e.Attributes)
}

func TestCSVSourceParsesOptionalFields(t *testing.T) {
	data := "Filename,Size,Date Modified,Date Created,Attributes\n" +
		`usr\bin\a.txt,100,1000,900,0` + "\n" +
		`usr\bin\b.txt,,,,16` + "\n"

	src := NewCSVSource(strings.NewReader(data))

	rec1, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, `usr\bin\a.txt`, rec1.Path)
	require.Equal(t, int64(100), *rec1.Size)
	require.Equal(t, int64(1000), *rec1.Modified)
	require.Equal(t, int64(900), *rec1.Created)

	rec2, err := src.Next()
	require.NoError(t, err)
	require.Nil(t, rec2.Size)
	require.Nil(t, rec2.Modified)
	require.Nil(t, rec2.Created)
	require.Equal(t, uint32(16), rec2.Attributes)

	_, err = src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestBuildRejectsEmptyPath(t *testing.T) {
	tree := filetree.WithCapacity(1)
	src := &sliceSource{recs: []Record{{Path: ""}}}
	require.Error(t, Build(tree, src))
}
