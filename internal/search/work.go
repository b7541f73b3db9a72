// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package search implements the Work/Result data model, the bounded
// work and result queues, the Worker loop, and the Coordinator that
// partitions a candidate space across workers and terminates on first
// hit.
package search

import (
	"fmt"

	"github.com/md5rush/md5rush/internal/enum"
	"github.com/md5rush/md5rush/internal/predicate"
)

// Work describes a candidate sub-range to search: up to MaxCount
// successive values of block[MutableBegin:MutableEnd], treated as a
// little-endian base-2^32 multi-word integer, tested against Pred.
type Work struct {
	MaxCount     uint64
	MutableBegin int
	MutableEnd   int
	Block        [16]uint32
	Pred         predicate.ZeroPrefix
}

// NewWork validates the mutable window before a Work can be dispatched.
// Three trailing words are always reserved for the 0x80 padding marker
// and the 64-bit bit-length suffix, so mutable_end must leave room for
// them. The core rejects malformed Works here rather than at the
// worker, where the source variants inconsistently (and sometimes not
// at all) validated this.
func NewWork(maxCount uint64, begin, end int, block [16]uint32, pred predicate.ZeroPrefix) (Work, error) {
	if begin < 0 || begin > end || end > 13 {
		return Work{}, fmt.Errorf("search: invalid mutable window [%d,%d), must satisfy 0<=begin<=end<=13", begin, end)
	}
	return Work{
		MaxCount:     maxCount,
		MutableBegin: begin,
		MutableEnd:   end,
		Block:        block,
		Pred:         pred,
	}, nil
}

// Result is the outcome of searching a Work: the number of candidates
// actually consumed, and, if one of them satisfied the predicate, the
// winning block.
type Result struct {
	Count uint64
	Block *[16]uint32
}

// Hit reports whether this Result carries a winning block.
func (r Result) Hit() bool { return r.Block != nil }

// Split divides w into a first child bounded to at most n candidates
// and a second child that continues from n candidates further into the
// mutable window. If advancing the window by n overflows past the
// reserved boundary, the second child's MaxCount is forced to zero
// (nothing more to search).
func Split(w Work, n uint64) (Work, Work) {
	first := w
	if first.MaxCount > n {
		first.MaxCount = n
	}
	second := w
	second.MaxCount = w.MaxCount - first.MaxCount

	if n > uint64(^uint32(0)) {
		// n does not fit in the 32-bit window arithmetic used by
		// Advance; only block_size-sized splits (far smaller than
		// 2^32) are ever requested in practice.
		second.MaxCount = 0
		return first, second
	}
	if !enum.Advance(&second.Block, second.MutableBegin, second.MutableEnd, uint32(n)) {
		second.MaxCount = 0
	}
	return first, second
}
