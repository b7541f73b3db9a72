// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package enum implements the base-2^32 candidate enumerator: treating
// block[begin:end] as a little-endian multi-word integer, it advances
// that sub-sequence by n, propagating carry through successive words.
package enum

import "math/bits"

// Advance adds n into block[begin], carrying into begin+1, begin+2, ...
// up to (but not including) end. It reports ok=false if the addition
// overflows past the last mutable word (exhaustion); in that case the
// window has wrapped and holds the low bits of the overflowed value.
func Advance(block *[16]uint32, begin, end int, n uint32) (ok bool) {
	addend := n
	for i := begin; addend != 0 && i < end; i++ {
		var carry uint32
		block[i], carry = addWithCarry(block[i], addend)
		addend = carry
	}
	return addend == 0
}

func addWithCarry(x, y uint32) (sum, carry uint32) {
	s, c := bits.Add32(x, y, 0)
	return s, c
}

// Window is a thin, self-contained view used by tests to exercise
// round-trip properties without threading a full [16]uint32 block
// through every call site.
type Window struct {
	Words []uint32
}

// Advance applies Advance to w.Words as if begin=0, end=len(Words).
func (w *Window) Advance(n uint32) bool {
	addend := n
	for i := 0; addend != 0 && i < len(w.Words); i++ {
		var carry uint32
		w.Words[i], carry = addWithCarry(w.Words[i], addend)
		addend = carry
	}
	return addend == 0
}
