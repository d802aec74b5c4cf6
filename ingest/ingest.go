// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ingest populates a filetree.Tree from a path-structured
// record stream, deduplicating interior directory nodes along the way.
// It is a thin adapter: the wire format and transport that produce
// Records are the caller's concern.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tankseek/tankseek/filetree"
)

// Record is one flattened path with its terminal attributes, the
// ingest-side counterpart of a file listing's row.
type Record struct {
	Path       string
	Size       *int64
	Modified   *int64
	Created    *int64
	Attributes uint32
}

// Source produces Records one at a time until it reports io.EOF.
type Source interface {
	Next() (Record, error)
}

// Build reads every Record from src and inserts it into tree,
// splitting each path on '\\' and '/' and creating or reusing
// interior directory nodes as it walks. The terminal component of each
// path receives the record's attributes; an interior component created
// along the way toward a later record starts with zero attributes and
// is updated in place if a record later names it directly.
func Build(tree *filetree.Tree, src Source) error {
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		if err := insert(tree, rec); err != nil {
			return err
		}
	}
}

func insert(tree *filetree.Tree, rec Record) error {
	parts := splitPath(rec.Path)
	if len(parts) == 0 {
		return fmt.Errorf("ingest: empty path")
	}

	current := filetree.RootId
	for _, part := range parts {
		if child, ok := tree.Child(current, part); ok {
			current = child
			continue
		}
		current = tree.AddChild(current, filetree.Entry{Name: part})
	}

	e, ok := tree.Get(current)
	if !ok {
		return fmt.Errorf("ingest: internal error locating inserted entry for %q", rec.Path)
	}
	e.Size = rec.Size
	e.Modified = rec.Modified
	e.Created = rec.Created
	e.Attributes = rec.Attributes
	return nil
}

func splitPath(path string) []string {
	fields := strings.FieldsFunc(path, func(r rune) bool { return r == '\\' || r == '/' })
	return fields
}

// CSVSource reads Records from an EFU-style CSV listing with a header
// row of Filename,Size,Date Modified,Date Created,Attributes. Size and
// the two dates are optional, empty-string, meaning absent.
type CSVSource struct {
	r         *csv.Reader
	headerRow bool
}

// NewCSVSource wraps r; the underlying reader's first row is expected
// to be the header and is discarded on the first Next call.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &CSVSource{r: cr}
}

func (s *CSVSource) Next() (Record, error) {
	if !s.headerRow {
		s.headerRow = true
		if _, err := s.r.Read(); err != nil {
			return Record{}, err
		}
	}

	row, err := s.r.Read()
	if err != nil {
		return Record{}, err
	}
	if len(row) < 5 {
		return Record{}, fmt.Errorf("ingest: malformed row %v", row)
	}

	size, err := parseOptionalInt64(row[1])
	if err != nil {
		return Record{}, fmt.Errorf("ingest: size: %w", err)
	}
	modified, err := parseOptionalInt64(row[2])
	if err != nil {
		return Record{}, fmt.Errorf("ingest: date modified: %w", err)
	}
	created, err := parseOptionalInt64(row[3])
	if err != nil {
		return Record{}, fmt.Errorf("ingest: date created: %w", err)
	}
	attrs, err := strconv.ParseUint(strings.TrimSpace(row[4]), 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("ingest: attributes: %w", err)
	}

	return Record{
		Path:       row[0],
		Size:       size,
		Modified:   modified,
		Created:    created,
		Attributes: uint32(attrs),
	}, nil
}

func parseOptionalInt64(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
