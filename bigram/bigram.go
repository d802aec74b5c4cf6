// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bigram builds and queries the two-character-window inverted
// index that turns a substring query into a superset candidate set.
//
// Construction runs once, single-threaded, over a frozen filetree.Tree;
// the resulting Index is read-only for the rest of the process.
package bigram

import (
	"unicode"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"

	"github.com/tankseek/tankseek/filetree"
)

// gram packs a lowercased two-rune window into a single uint64 key, the
// same way the teacher's postEntry packs a trigram and a file id into
// one uint64 to avoid an allocation per window.
type gram uint64

func makeGram(a, b rune) gram {
	return gram(uint64(uint32(a))<<32 | uint64(uint32(b)))
}

// Index is the bigram -> posting-list map, plus a parallel per-character
// union used to answer single-rune queries (spec's "unigram index").
type Index struct {
	postings map[gram]*roaring.Bitmap
	byChar   map[rune]*roaring.Bitmap
}

// Build constructs an Index over every entry in tree. It is the only
// place postings are written; the returned Index must not be mutated
// afterward.
func Build(tree *filetree.Tree) *Index {
	idx := &Index{
		postings: make(map[gram]*roaring.Bitmap),
		byChar:   make(map[rune]*roaring.Bitmap),
	}

	for id := filetree.Id(0); int(id) < tree.Len(); id++ {
		name := tree.GetName(id)
		if utf8.RuneCountInString(name) < 2 {
			// No bigram window forms, but a one-rune name still belongs
			// to that rune's per-character list.
			for _, r := range name {
				idx.addChar(unicode.ToLower(r), id)
			}
			continue
		}
		idx.addName(id, name)
	}
	return idx
}

func (idx *Index) addName(id filetree.Id, name string) {
	runes := []rune(name)
	for i := range runes {
		runes[i] = unicode.ToLower(runes[i])
	}

	for i := 0; i < len(runes)-1; i++ {
		g := makeGram(runes[i], runes[i+1])
		b := idx.postings[g]
		if b == nil {
			b = roaring.New()
			idx.postings[g] = b
		}
		b.Add(uint32(id))

		idx.addChar(runes[i], id)
	}
	idx.addChar(runes[len(runes)-1], id)
}

func (idx *Index) addChar(c rune, id filetree.Id) {
	b := idx.byChar[c]
	if b == nil {
		b = roaring.New()
		idx.byChar[c] = b
	}
	b.Add(uint32(id))
}

// QueryChar returns every entry whose lowercased name contains c. It is
// the retrieval path for one-rune queries, where no bigram window can
// form; per spec this must not simply bail out.
func (idx *Index) QueryChar(c rune) *roaring.Bitmap {
	b, ok := idx.byChar[unicode.ToLower(c)]
	if !ok {
		return roaring.New()
	}
	return b.Clone()
}

// QueryWord lowercases word, forms its bigram windows in order, and
// intersects their posting lists. It is a caller error to pass a word
// shorter than two runes; the orchestrator dispatches those to
// QueryChar instead. Any missing window short-circuits to an empty
// result, and a window repeated within the query is naturally absorbed
// by intersecting with the same bitmap twice.
func (idx *Index) QueryWord(word string) *roaring.Bitmap {
	runes := []rune(word)
	if len(runes) < 2 {
		return roaring.New()
	}
	for i := range runes {
		runes[i] = unicode.ToLower(runes[i])
	}

	result := idx.postings[makeGram(runes[0], runes[1])]
	if result == nil {
		return roaring.New()
	}
	result = result.Clone()

	for i := 1; i < len(runes)-1; i++ {
		next, ok := idx.postings[makeGram(runes[i], runes[i+1])]
		if !ok {
			return roaring.New()
		}
		result.And(next)
		if result.IsEmpty() {
			return result
		}
	}
	return result
}

// Len returns the number of distinct bigram windows indexed.
func (idx *Index) Len() int {
	return len(idx.postings)
}
