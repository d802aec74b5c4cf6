// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import "github.com/tankseek/tankseek/filetree"

// Result is one projected entry: its name, the joined path of its
// ancestors, and its optional attributes.
type Result struct {
	Name       string
	Path       string
	Size       *int64
	Modified   *int64
	Created    *int64
	Attributes uint32
}

// project hydrates ids into Results. An id that no longer resolves
// (the contract forbids this in practice, but paging over a cached
// list must stay robust regardless) is silently skipped rather than
// producing a zero-value Result.
func project(tree *filetree.Tree, ids []filetree.Id) []Result {
	out := make([]Result, 0, len(ids))
	for _, id := range ids {
		e, ok := tree.Get(id)
		if !ok {
			continue
		}
		out = append(out, Result{
			Name:       e.Name,
			Path:       tree.FullPath(id),
			Size:       e.Size,
			Modified:   e.Modified,
			Created:    e.Created,
			Attributes: e.Attributes,
		})
	}
	return out
}
