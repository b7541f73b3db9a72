// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package md5core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLaneScalarEquivalence(t *testing.T) {
	for _, width := range []int{1, 4, 8, 16} {
		width := width
		t.Run(laneWidthName(width), func(t *testing.T) {
			var blocks [16][16]uint32 // per-lane scalar blocks
			var m [16][]uint32
			for g := 0; g < 16; g++ {
				m[g] = make([]uint32, width)
			}
			for lane := 0; lane < width; lane++ {
				for g := 0; g < 16; g++ {
					v := uint32(lane)*0x9e3779b1 + uint32(g)*0x85ebca6b
					blocks[lane][g] = v
					m[g][lane] = v
				}
			}

			laneState := NewLaneState(IV, width)
			got := CompressLanes(laneState, &m)

			for lane := 0; lane < width; lane++ {
				want := Compress(IV, &blocks[lane])
				assert.Equal(t, want.A, got.A[lane], "lane %d word A", lane)
				assert.Equal(t, want.B, got.B[lane], "lane %d word B", lane)
				assert.Equal(t, want.C, got.C[lane], "lane %d word C", lane)
				assert.Equal(t, want.D, got.D[lane], "lane %d word D", lane)
			}
		})
	}
}

func laneWidthName(w int) string {
	switch w {
	case 1:
		return "W1"
	case 4:
		return "W4"
	case 8:
		return "W8"
	case 16:
		return "W16"
	default:
		return "Wn"
	}
}
