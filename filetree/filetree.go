// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filetree is the flat, append-only arena that backs the search
// engine: every indexed file or directory is an Entry addressed by a
// dense, never-reused Id. Identifier 0 is the synthetic root.
package filetree

import "strings"

// Id identifies a single Entry in a Tree. Identifiers are assigned in
// insertion order and are never reused.
type Id uint32

// RootId is the synthetic root every other Entry descends from.
const RootId Id = 0

// Entry is a single node in the tree: a file or a directory. Size,
// Modified and Created are absent (nil) for directories and for files
// whose metadata the ingest source didn't supply.
type Entry struct {
	Name       string
	Size       *int64
	Modified   *int64
	Created    *int64
	Attributes uint32
	Parent     Id
	Children   []Id
}

// Tree is the append-only arena. It is safe for concurrent reads once
// building has finished; it is not safe to read and grow concurrently.
type Tree struct {
	entries []Entry
}

// WithCapacity creates a Tree containing only the root entry, with
// enough reserved capacity for n additional entries.
func WithCapacity(n int) *Tree {
	t := &Tree{entries: make([]Entry, 0, n+1)}
	t.entries = append(t.entries, Entry{
		Name:   "Root",
		Parent: RootId,
	})
	return t
}

// AddChild appends entry as a child of parent and returns its new Id.
// The caller must guarantee parent already exists; AddChild panics
// otherwise, since that indicates a bug in the ingest adapter rather
// than bad input data.
func (t *Tree) AddChild(parent Id, entry Entry) Id {
	if int(parent) >= len(t.entries) {
		panic("filetree: AddChild: parent out of range")
	}
	id := Id(len(t.entries))
	entry.Parent = parent
	t.entries = append(t.entries, entry)
	t.entries[parent].Children = append(t.entries[parent].Children, id)
	return id
}

// Get returns the entry for id, or false if id is out of range.
func (t *Tree) Get(id Id) (*Entry, bool) {
	if int(id) >= len(t.entries) {
		return nil, false
	}
	return &t.entries[id], true
}

// GetName returns the name of id, or "" if id is out of range.
func (t *Tree) GetName(id Id) string {
	e, ok := t.Get(id)
	if !ok {
		return ""
	}
	return e.Name
}

// Child looks up the existing child of parent named name. It is used by
// ingest adapters that need to resume an existing path rather than
// create a duplicate interior entry.
func (t *Tree) Child(parent Id, name string) (Id, bool) {
	e, ok := t.Get(parent)
	if !ok {
		return 0, false
	}
	for _, c := range e.Children {
		if t.entries[c].Name == name {
			return c, true
		}
	}
	return 0, false
}

// FullPath walks the parent chain from id up to, but not including, the
// root, joining names with a backslash. It excludes id's own name. The
// result is empty when id's parent is the root.
func (t *Tree) FullPath(id Id) string {
	e, ok := t.Get(id)
	if !ok {
		return ""
	}

	var names []string
	for p := e.Parent; p != RootId; {
		pe, ok := t.Get(p)
		if !ok {
			break
		}
		names = append(names, pe.Name)
		p = pe.Parent
	}
	// names is closest-ancestor-first; reverse to root-first order.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "\\")
}

// Len returns the number of entries in the tree, including the root.
func (t *Tree) Len() int {
	return len(t.entries)
}

// ShrinkToFit trims the entries slice's capacity to its length. Call it
// once after ingest completes and before the tree is frozen for serving.
func (t *Tree) ShrinkToFit() {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	t.entries = entries
}
