// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md5rush/md5rush/internal/md5core"
	"github.com/md5rush/md5rush/internal/predicate"
)

func mustPred(t *testing.T, zeros uint32) predicate.ZeroPrefix {
	t.Helper()
	p, err := predicate.New(md5core.IV, zeros)
	require.NoError(t, err)
	return p
}

func TestNewWorkRejectsOutOfRangeWindow(t *testing.T) {
	var block [16]uint32
	pred := mustPred(t, 4)

	cases := []struct {
		begin, end int
	}{
		{-1, 4},
		{5, 4},
		{0, 14},
		{13, 14},
	}
	for _, c := range cases {
		_, err := NewWork(100, c.begin, c.end, block, pred)
		assert.Error(t, err, "begin=%d end=%d should be rejected", c.begin, c.end)
	}
}

func TestNewWorkAcceptsBoundaryWindow(t *testing.T) {
	var block [16]uint32
	pred := mustPred(t, 4)
	_, err := NewWork(100, 0, 13, block, pred)
	assert.NoError(t, err)
}

func TestSplitCountsSumToOriginal(t *testing.T) {
	var block [16]uint32
	pred := mustPred(t, 4)
	w, err := NewWork(25000, 0, 4, block, pred)
	require.NoError(t, err)

	w1, w2 := Split(w, 10000)
	assert.Equal(t, uint64(10000), w1.MaxCount)
	assert.Equal(t, uint64(15000), w2.MaxCount)

	w3, w4 := Split(w2, 10000)
	assert.Equal(t, uint64(10000), w3.MaxCount)
	assert.Equal(t, uint64(5000), w4.MaxCount)
}

func TestSplitAdvancesSecondChildWindow(t *testing.T) {
	var block [16]uint32
	block[0] = 5
	pred := mustPred(t, 4)
	w, err := NewWork(100, 0, 4, block, pred)
	require.NoError(t, err)

	_, w2 := Split(w, 10)
	assert.Equal(t, uint32(15), w2.Block[0])
}

func TestSplitExhaustionForcesZeroMaxCount(t *testing.T) {
	var block [16]uint32
	block[0] = 0xffffffff
	block[1] = 0xffffffff
	pred := mustPred(t, 4)
	w, err := NewWork(100, 0, 2, block, pred) // tiny 2-word window
	require.NoError(t, err)

	_, w2 := Split(w, 1)
	assert.Equal(t, uint64(0), w2.MaxCount)
}
