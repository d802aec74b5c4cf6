// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package postfilter narrows a bigram candidate set down to true
// substring matches.
package postfilter

import (
	"regexp"

	"github.com/tankseek/tankseek/filetree"
)

// Apply retains only the candidates in ids whose name contains query as
// a case-insensitive substring, preserving order. query is treated as a
// literal, never as a regex — any metacharacter it contains is escaped
// before compilation, so compilation can never fail on user input.
//
// Callers should skip Apply for queries shorter than three runes: a
// two-rune query is already exact after bigram intersection, and
// shorter queries are dispatched elsewhere by the orchestrator.
func Apply(tree *filetree.Tree, ids []filetree.Id, query string) []filetree.Id {
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))

	out := ids[:0]
	for _, id := range ids {
		if re.MatchString(tree.GetName(id)) {
			out = append(out, id)
		}
	}
	return out
}
