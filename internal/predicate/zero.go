// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package predicate implements the mask-based zero-nibble-prefix test
// against an MD5 state, without ever materializing the full 128-bit
// digest as a byte string.
package predicate

import "github.com/md5rush/md5rush/internal/md5core"

// zeroMasks[k] masks the first k hex nibbles of a 32-bit word (k in
// 0..7): word&zeroMasks[k] == 0 iff those k leading nibbles are zero.
var zeroMasks = [8]uint32{
	0x00000000, 0x000000f0, 0x000000ff, 0x0000f0ff,
	0x0000ffff, 0x00f0ffff, 0x00ffffff, 0xf0ffffff,
}

// ZeroPrefix is the treasure-hunting predicate: given an immutable
// pre-block state and a target zero-nibble count, it reports whether a
// candidate block's post-compression digest begins with that many
// zero hex nibbles. The digest ordering is word A first, then B, C, D;
// within a word, the low byte's high nibble comes first.
type ZeroPrefix struct {
	Init  md5core.State
	Zeros uint32
}

// New validates zeros (must be in [0,32]) and returns a ZeroPrefix bound
// to the given pre-block state.
func New(init md5core.State, zeros uint32) (ZeroPrefix, error) {
	if zeros > 32 {
		return ZeroPrefix{}, errZeroRange
	}
	return ZeroPrefix{Init: init, Zeros: zeros}, nil
}

// Evaluate compresses block against p.Init and tests the result.
func (p ZeroPrefix) Evaluate(block *[16]uint32) bool {
	return TestState(md5core.Compress(p.Init, block), p.Zeros)
}

// TestState applies the zero-nibble-prefix test directly to an
// already-compressed state, partitioning zeros into whole words (q) and
// a remaining nibble count (r) within the next word.
func TestState(s md5core.State, zeros uint32) bool {
	q, r := zeros/8, zeros%8
	words := [4]uint32{s.A, s.B, s.C, s.D}
	for i := uint32(0); i < q; i++ {
		if words[i] != 0 {
			return false
		}
	}
	if q == 4 {
		return true
	}
	return words[q]&zeroMasks[r] == 0
}

type zeroRangeError struct{}

func (zeroRangeError) Error() string { return "zeros must be in [0,32]" }

var errZeroRange = zeroRangeError{}
