// Copyright 2011 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Tankseek loads a file listing and serves interactive substring
// searches against it from the command line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tankseek/tankseek/bigram"
	"github.com/tankseek/tankseek/filetree"
	"github.com/tankseek/tankseek/ingest"
	"github.com/tankseek/tankseek/search"
	"github.com/tankseek/tankseek/sortcache"
)

var usageMessage = `usage: tankseek [-sort field] [-desc] listing.csv

Tankseek loads a CSV file listing (header: Filename,Size,Date Modified,
Date Created,Attributes) into memory, builds its bigram index, and
reads queries from standard input, printing one page of matches per
line of input.

The -sort flag selects a sort field (filename, size, modified, created);
with no -sort flag results are returned in candidate order. The -desc
flag reverses the sort direction.
`

func usage() {
	fmt.Fprint(os.Stderr, usageMessage)
	os.Exit(2)
}

var (
	sortFlag = flag.String("sort", "", "sort field: filename, size, modified, created")
	descFlag = flag.Bool("desc", false, "sort descending")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	path := flag.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("tankseek: %v", err)
	}
	defer f.Close()

	start := time.Now()
	tree := filetree.WithCapacity(1 << 16)
	src := ingest.NewCSVSource(f)
	if err := ingest.Build(tree, src); err != nil {
		log.Fatalf("tankseek: loading %s: %v", path, err)
	}
	tree.ShrinkToFit()
	log.Printf("loaded %d entries from %s in %v", tree.Len(), path, time.Since(start))

	start = time.Now()
	index := bigram.Build(tree)
	log.Printf("built bigram index (%d windows) in %v", index.Len(), time.Since(start))

	engine := search.New(tree, index)

	field, hasField, err := parseSortField(*sortFlag)
	if err != nil {
		log.Fatalf("tankseek: %v", err)
	}
	order := sortcache.Ascending
	if *descFlag {
		order = sortcache.Descending
	}

	runQueryLoop(engine, field, hasField, order)
}

func parseSortField(s string) (sortcache.Field, bool, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, false, nil
	case "filename":
		return sortcache.Filename, true, nil
	case "size":
		return sortcache.Size, true, nil
	case "modified":
		return sortcache.Modified, true, nil
	case "created":
		return sortcache.Created, true, nil
	default:
		return 0, false, fmt.Errorf("unknown sort field %q", s)
	}
}

func runQueryLoop(engine *search.Engine, field sortcache.Field, hasField bool, order sortcache.Order) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		query, offset := parseQueryLine(line)

		resp := engine.Search(search.Request{
			Query:     query,
			Offset:    offset,
			SortField: field,
			HasField:  hasField,
			SortOrder: order,
			HasOrder:  hasField,
		})

		fmt.Printf("# %d results (showing %d..%d) in %v\n", resp.Total, resp.Offset, resp.Offset+len(resp.Results), resp.Elapsed)
		for _, r := range resp.Results {
			fmt.Printf("%s\\%s\n", r.Path, r.Name)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("tankseek: reading stdin: %v", err)
	}
}

// parseQueryLine splits an optional "@offset" suffix off the query
// text, e.g. "report@100" asks for the page starting at offset 100.
func parseQueryLine(line string) (string, int) {
	idx := strings.LastIndexByte(line, '@')
	if idx < 0 {
		return line, 0
	}
	offset, err := strconv.Atoi(line[idx+1:])
	if err != nil {
		return line, 0
	}
	return line[:idx], offset
}
