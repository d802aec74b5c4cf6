// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package search

import (
	"strings"

	"github.com/tankseek/tankseek/filetree"
	"github.com/tankseek/tankseek/query"
)

// evalExpr evaluates a parsed query.Expr against one entry by a linear
// predicate check rather than via the bigram index. It is the fallback
// path for any query that is not a single bare literal: field
// predicates and boolean combinations have no index support and must
// scan.
func evalExpr(tree *filetree.Tree, id filetree.Id, expr query.Expr) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *query.Literal:
		return evalLiteral(tree, id, e)
	case *query.Function:
		return evalFunction(tree, id, e)
	case *query.And:
		return evalExpr(tree, id, e.Left) && evalExpr(tree, id, e.Right)
	case *query.Or:
		return evalExpr(tree, id, e.Left) || evalExpr(tree, id, e.Right)
	case *query.Not:
		return !evalExpr(tree, id, e.Expr)
	default:
		return false
	}
}

func evalLiteral(tree *filetree.Tree, id filetree.Id, lit *query.Literal) bool {
	entry, ok := tree.Get(id)
	if !ok {
		return false
	}

	if lit.Regex != nil {
		subject := entry.Name
		if lit.Regex.MatchPath {
			subject = tree.FullPath(id)
		}
		return lit.Regex.Pattern.MatchString(subject)
	}

	tq := lit.Text
	if tq == nil {
		return true
	}
	if tq.FileOnly && len(entry.Children) > 0 {
		return false
	}
	if tq.FolderOnly && len(entry.Children) == 0 {
		return false
	}

	subject := entry.Name
	if tq.MatchPath {
		subject = tree.FullPath(id)
	}
	if tq.WholeFilename {
		if tq.CaseSensitive {
			return subject == tq.Text
		}
		return strings.EqualFold(subject, tq.Text)
	}

	haystack, needle := subject, tq.Text
	if !tq.CaseSensitive {
		haystack, needle = strings.ToLower(haystack), strings.ToLower(needle)
	}
	if tq.WholeWord {
		return containsWholeWord(haystack, needle)
	}
	return strings.Contains(haystack, needle)
}

func containsWholeWord(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		beforeOK := start == 0 || !isWordRune(rune(haystack[start-1]))
		afterOK := end == len(haystack) || !isWordRune(rune(haystack[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func evalFunction(tree *filetree.Tree, id filetree.Id, fn *query.Function) bool {
	entry, ok := tree.Get(id)
	if !ok {
		return false
	}

	switch fn.Predicate {
	case query.PredSize:
		if entry.Size == nil {
			return false
		}
		return compareUint(uint64(*entry.Size), fn.Cmp, fn.Size)
	case query.PredDateModified:
		return evalDate(entry.Modified, fn.Cmp, fn.Date)
	case query.PredDateCreated:
		return evalDate(entry.Created, fn.Cmp, fn.Date)
	case query.PredParent:
		parentEntry, ok := tree.Get(entry.Parent)
		return ok && strings.EqualFold(parentEntry.Name, fn.Text)
	case query.PredPath:
		full := filetree.MakePath(strings.ToLower(tree.FullPath(id)))
		want := filetree.MakePath(strings.ToLower(fn.Text))
		return full.HasPathPrefix(want)
	case query.PredExt:
		return matchesAnyExt(entry.Name, fn.Exts)
	default:
		return false
	}
}

func compareUint(value uint64, cmp query.Cmp, target uint64) bool {
	switch cmp {
	case query.Eq:
		return value == target
	case query.Gt:
		return value > target
	case query.Ge:
		return value >= target
	case query.Lt:
		return value < target
	case query.Le:
		return value <= target
	default:
		return value == target
	}
}

func evalDate(value *int64, cmp query.Cmp, date query.DateExpr) bool {
	if value == nil {
		return false
	}
	switch date.Kind {
	case query.DateRange:
		return *value >= date.RangeStart && *value <= date.RangeEnd
	default:
		// Weekday/Month/Unknown predicates require calendar context the
		// opaque timestamp model does not carry; treat as non-matching
		// rather than guessing at an epoch.
		_ = cmp
		return false
	}
}

func matchesAnyExt(name string, exts []string) bool {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(name[idx+1:])
	for _, want := range exts {
		if ext == strings.ToLower(strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}
