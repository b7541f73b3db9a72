// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package predicate

import "github.com/md5rush/md5rush/internal/md5core"

// EvaluateLanes runs the zero-nibble test across the lanes of a
// lane-parallel compression, testing each lane in turn with the same
// whole-word and mask checks as TestState, and returns the first lane
// that hits.
func (p ZeroPrefix) EvaluateLanes(state md5core.LaneState) (lane int, ok bool) {
	width := len(state.A)
	q, r := p.Zeros/8, p.Zeros%8

	for i := 0; i < width; i++ {
		if laneHits(state, i, q, r) {
			return i, true
		}
	}
	return 0, false
}

func laneHits(state md5core.LaneState, lane int, q, r uint32) bool {
	words := [4]uint32{state.A[lane], state.B[lane], state.C[lane], state.D[lane]}
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
