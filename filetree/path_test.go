// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filetree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasPathPrefixExcludesSiblingWithSharedPrefix(t *testing.T) {
	homework := MakePath("usr\\homework")
	require.True(t, homework.HasPathPrefix(MakePath("usr\\homework")))
	require.True(t, MakePath("usr\\homework\\essay.txt").HasPathPrefix(homework))
	require.False(t, MakePath("usr\\homework2\\essay.txt").HasPathPrefix(homework))
}

func TestHasPathPrefixEmptyParentMatchesEverything(t *testing.T) {
	require.True(t, MakePath("usr\\bin").HasPathPrefix(MakePath("")))
}

func TestPathCompareOrdersParentBeforeChild(t *testing.T) {
	parent := MakePath("usr")
	child := MakePath("usr\\bin")
	require.Negative(t, parent.Compare(child))
	require.Positive(t, child.Compare(parent))
	require.Zero(t, parent.Compare(MakePath("usr")))
}

func TestPathCompareTreatsSeparatorBeforeOtherBytes(t *testing.T) {
	// "usr" < "usr\bin" < "usr-old" because '\\' sorts as if it were 0,
	// ahead of the printable '-' that a raw byte compare would prefer.
	require.Negative(t, MakePath("usr\\bin").Compare(MakePath("usr-old")))
}
