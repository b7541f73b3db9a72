// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package md5core

import "math/bits"

// LaneState is the MD5 chaining value re-expressed with each 32-bit word
// replaced by a W-lane vector, so W independent candidate blocks can be
// compressed with the same instruction stream. This mirrors the teacher's
// AVX2/AVX512 lane-parallel state (digest8/digest16) but is expressed in
// portable Go over slices instead of YMM/ZMM registers.
type LaneState struct {
	A, B, C, D []uint32
}

// NewLaneState broadcasts a scalar State into a width-W LaneState.
func NewLaneState(s State, width int) LaneState {
	ls := LaneState{
		A: make([]uint32, width),
		B: make([]uint32, width),
		C: make([]uint32, width),
		D: make([]uint32, width),
	}
	for i := 0; i < width; i++ {
		ls.A[i], ls.B[i], ls.C[i], ls.D[i] = s.A, s.B, s.C, s.D
	}
	return ls
}

// CompressLanes runs one MD5 compression round across all lanes of m in
// lock-step, broadcasting every arithmetic and bitwise operation of
// Compress per lane. m[g][lane] is the g'th message word of lane `lane`.
func CompressLanes(state LaneState, m *[16][]uint32) LaneState {
	width := len(state.A)
	a := append([]uint32(nil), state.A...)
	b := append([]uint32(nil), state.B...)
	c := append([]uint32(nil), state.C...)
	d := append([]uint32(nil), state.D...)

	applyRound(a, b, c, d, m, width, 0, 16, func(i int) int { return i }, func(b, c, d uint32) uint32 {
		return (b & c) | (^b & d)
	})
	applyRound(a, b, c, d, m, width, 16, 32, func(i int) int { return (5*i + 1) % 16 }, func(b, c, d uint32) uint32 {
		return (d & b) | (^d & c)
	})
	applyRound(a, b, c, d, m, width, 32, 48, func(i int) int { return (3*i + 5) % 16 }, func(b, c, d uint32) uint32 {
		return b ^ c ^ d
	})
	applyRound(a, b, c, d, m, width, 48, 64, func(i int) int { return (7 * i) % 16 }, func(b, c, d uint32) uint32 {
		return c ^ (b | ^d)
	})

	out := LaneState{A: make([]uint32, width), B: make([]uint32, width), C: make([]uint32, width), D: make([]uint32, width)}
	for lane := 0; lane < width; lane++ {
		out.A[lane] = state.A[lane] + a[lane]
		out.B[lane] = state.B[lane] + b[lane]
		out.C[lane] = state.C[lane] + c[lane]
		out.D[lane] = state.D[lane] + d[lane]
	}
	return out
}

// applyRound runs rounds [begin,end) of the compression, mutating a,b,c,d
// in place across all lanes.
func applyRound(a, b, c, d []uint32, m *[16][]uint32, width, begin, end int, gFor func(int) int, f func(b, c, d uint32) uint32) {
	for i := begin; i < end; i++ {
		g := gFor(i)
		mg := m[g]
		for lane := 0; lane < width; lane++ {
			ff := f(b[lane], c[lane], d[lane])
			ff += a[lane] + sineConstants[i] + mg[lane]
			newA := d[lane]
			newD := c[lane]
			newC := b[lane]
			newB := b[lane] + bits.RotateLeft32(ff, int(shiftAmounts[i]))
			a[lane], b[lane], c[lane], d[lane] = newA, newB, newC, newD
		}
	}
}
