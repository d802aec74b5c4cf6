// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package search implements the query orchestrator: it parses a query,
// picks a retrieval path, sorts if asked, memoizes the last result, and
// returns a fixed-size page.
package search

import (
	"strings"
	"time"

	"github.com/tankseek/tankseek/bigram"
	"github.com/tankseek/tankseek/filetree"
	"github.com/tankseek/tankseek/postfilter"
	"github.com/tankseek/tankseek/query"
	"github.com/tankseek/tankseek/sortcache"
)

// PageSize is the fixed number of results returned per page.
const PageSize = 100

// Status reports how a request's result was produced, for callers that
// want to distinguish a clean result from a degraded one.
type Status int

const (
	StatusOK Status = iota
	StatusParseError
)

// Engine bundles the immutable, read-only structures a search walks:
// the arena, its bigram index, and its lazily built sort cache.
type Engine struct {
	tree  *filetree.Tree
	index *bigram.Index
	sorts *sortcache.Cache
	memo  memo
}

// New builds an Engine over tree and its bigram index. tree must not be
// mutated after this call.
func New(tree *filetree.Tree, index *bigram.Index) *Engine {
	return &Engine{
		tree:  tree,
		index: index,
		sorts: sortcache.New(tree),
	}
}

// Request is one search's parameters.
type Request struct {
	Query     string
	Offset    int
	SortField sortcache.Field
	HasField  bool
	SortOrder sortcache.Order
	HasOrder  bool
}

// Response is a single page of a search's result, together with the
// bookkeeping needed to fetch subsequent pages.
type Response struct {
	Results  []Result
	Total    int
	Offset   int
	PageSize int
	Elapsed  time.Duration
	Status   Status
}

// Search runs req against e and returns one page of results. The hot
// path performs no I/O; every step completes in bounded time
// proportional to the arena size.
func (e *Engine) Search(req Request) Response {
	start := time.Now()

	normalized := strings.ToLower(req.Query)
	key := memoKey{
		query:    normalized,
		hasField: req.HasField,
		field:    req.SortField,
		hasOrder: req.HasOrder,
		order:    req.SortOrder,
	}

	ids, status := e.resolve(key, normalized)

	return Response{
		Results:  project(e.tree, page(ids, req.Offset)),
		Total:    len(ids),
		Offset:   req.Offset,
		PageSize: PageSize,
		Elapsed:  time.Since(start),
		Status:   status,
	}
}

func (e *Engine) resolve(key memoKey, normalized string) ([]filetree.Id, Status) {
	if cached, ok := e.memo.lookup(key); ok {
		return cached, StatusOK
	}

	ids, status := e.computeCandidates(normalized)

	// sort_order present but sort_field absent is left unsorted: the
	// reference implementation ignores both in that case.
	if key.hasField {
		order := key.order
		if !key.hasOrder {
			order = sortcache.Ascending
		}
		e.sorts.SortSubset(key.field, order, ids)
	}

	// Only clean results are memoized, so a repeated unparseable query
	// reports StatusParseError again instead of a cached StatusOK.
	if status == StatusOK {
		e.memo.store(key, ids)
	}
	return ids, status
}

func (e *Engine) computeCandidates(normalized string) ([]filetree.Id, Status) {
	expr, _, err := query.Parse(normalized)
	if err != nil {
		return nil, StatusParseError
	}

	if lit, ok := asPlainLiteral(expr); ok {
		return e.literalCandidates(lit), StatusOK
	}

	return e.evalCandidates(expr), StatusOK
}

// asPlainLiteral recognizes the common case of a query that is just a
// bare substring with no modifiers, so it can take the fast bigram path
// instead of a linear scan.
func asPlainLiteral(expr query.Expr) (string, bool) {
	if expr == nil {
		return "", true
	}
	lit, ok := expr.(*query.Literal)
	if !ok || lit.Text == nil {
		return "", false
	}
	tq := lit.Text
	if tq.CaseSensitive || tq.DiacriticsSensitive || tq.FileOnly || tq.FolderOnly ||
		tq.MatchPath || tq.WholeFilename || tq.WholeWord {
		return "", false
	}
	return tq.Text, true
}

func (e *Engine) literalCandidates(text string) []filetree.Id {
	switch n := runeLen(text); {
	case n == 0:
		return allIds(e.tree)
	case n == 1:
		return bitmapIds(e.index.QueryChar([]rune(text)[0]))
	case n == 2:
		return bitmapIds(e.index.QueryWord(text))
	default:
		candidates := bitmapIds(e.index.QueryWord(text))
		return postfilter.Apply(e.tree, candidates, text)
	}
}

func (e *Engine) evalCandidates(expr query.Expr) []filetree.Id {
	var out []filetree.Id
	n := e.tree.Len()
	for i := 0; i < n; i++ {
		id := filetree.Id(i)
		if evalExpr(e.tree, id, expr) {
			out = append(out, id)
		}
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}

func allIds(tree *filetree.Tree) []filetree.Id {
	n := tree.Len()
	ids := make([]filetree.Id, n)
	for i := range ids {
		ids[i] = filetree.Id(i)
	}
	return ids
}

func bitmapIds(b interface{ ToArray() []uint32 }) []filetree.Id {
	raw := b.ToArray()
	ids := make([]filetree.Id, len(raw))
	for i, v := range raw {
		ids[i] = filetree.Id(v)
	}
	return ids
}

func page(ids []filetree.Id, offset int) []filetree.Id {
	if offset < 0 || offset >= len(ids) {
		return nil
	}
	end := offset + PageSize
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}
