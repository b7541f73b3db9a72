// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package framer maintains the running MD5 state over the complete
// blocks absorbed from a growing prefix, and prepares the trailing
// block template (mutable slot, 0x80 padding marker, 64-bit length
// suffix) the driver searches over.
package framer

import "github.com/md5rush/md5rush/internal/md5core"

// Framer holds the MD5 chaining value after absorbing every complete
// 512-bit block of a prefix, plus the incomplete trailing words ("the
// carry") that have not yet been folded into a full block.
type Framer struct {
	State md5core.State
	Carry []uint32
}

// Load absorbs every complete 16-word block of prefixWords into the
// running state and retains the remainder (0 to 15 words) as the
// carry. If prefixWords was built from a byte file whose length was
// not a multiple of 4, the caller is expected to have already
// zero-padded the trailing bytes into the final word
// (md5core.BytesToWords does this).
func Load(prefixWords []uint32) *Framer {
	f := &Framer{State: md5core.IV}
	i := 0
	for ; i+16 <= len(prefixWords); i += 16 {
		var blk [16]uint32
		copy(blk[:], prefixWords[i:i+16])
		f.State = md5core.Compress(f.State, &blk)
	}
	f.Carry = append([]uint32(nil), prefixWords[i:]...)
	return f
}

// Psize is the number of carry words (0..15).
func (f *Framer) Psize() int { return len(f.Carry) }

// ExtendByEmptyBlock pads the carry with zero words up to a full
// 16-word block and absorbs it, growing the prefix by exactly
// 16-Psize() zero words (extending the prefix by one empty block).
// Afterwards the carry is empty.
func (f *Framer) ExtendByEmptyBlock() {
	var blk [16]uint32
	copy(blk[:], f.Carry)
	f.State = md5core.Compress(f.State, &blk)
	f.Carry = nil
}

// TrailingBlockTemplate builds the trailing block for an i-word
// extension: carry words, then an all-zero i-word mutable window,
// then the 0x80 padding marker, then zeros, then the 64-bit bit length
// of the full extended message (prefixWords+i words, i.e. *32 bits).
// Caller must ensure Psize()+i+3 <= 16 (three words reserved for the
// marker and length suffix).
func (f *Framer) TrailingBlockTemplate(i int, prefixWords uint64) [16]uint32 {
	var blk [16]uint32
	psize := f.Psize()
	copy(blk[:psize], f.Carry)
	blk[psize+i] = 0x00000080

	nbits := (prefixWords + uint64(i)) * 32
	blk[14] = uint32(nbits)
	blk[15] = uint32(nbits >> 32)
	return blk
}
