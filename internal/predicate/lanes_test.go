// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package predicate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md5rush/md5rush/internal/md5core"
)

// TestEvaluateLanesMatchesScalarPerLane checks, across many random
// batches, that EvaluateLanes agrees with applying the scalar Evaluate
// to each lane independently: it reports a hit iff some lane
// scalar-hits, and when it does, that lane's block really does satisfy
// the predicate.
func TestEvaluateLanesMatchesScalarPerLane(t *testing.T) {
	pred, err := New(md5core.IV, 2) // 1 zero byte: ~1/256 per candidate
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(42))
	const width = 16

	sawAtLeastOneHit := false
	for batch := 0; batch < 4096; batch++ {
		var blocks [width][16]uint32
		var m [16][]uint32
		for g := 0; g < 16; g++ {
			m[g] = make([]uint32, width)
		}

		firstScalarHit := -1
		for lane := 0; lane < width; lane++ {
			for g := range blocks[lane] {
				blocks[lane][g] = rnd.Uint32()
			}
			if pred.Evaluate(&blocks[lane]) && firstScalarHit == -1 {
				firstScalarHit = lane
			}
			for g := 0; g < 16; g++ {
				m[g][lane] = blocks[lane][g]
			}
		}

		laneState := md5core.NewLaneState(pred.Init, width)
		compressed := md5core.CompressLanes(laneState, &m)
		lane, ok := pred.EvaluateLanes(compressed)

		if firstScalarHit == -1 {
			assert.False(t, ok, "batch %d: scalar found no hit but EvaluateLanes reported one", batch)
			continue
		}
		sawAtLeastOneHit = true
		assert.True(t, ok, "batch %d: scalar found a hit at lane %d but EvaluateLanes did not", batch, firstScalarHit)
		if ok {
			assert.True(t, pred.Evaluate(&blocks[lane]), "batch %d: lane %d reported by EvaluateLanes does not itself satisfy Evaluate", batch, lane)
		}
	}
	assert.True(t, sawAtLeastOneHit, "fixture never hit across 4096*16 candidates; widen zeros or trial count")
}

func TestEvaluateLanesZeroZerosHitsFirstLane(t *testing.T) {
	pred, err := New(md5core.IV, 0)
	require.NoError(t, err)

	const width = 8
	var m [16][]uint32
	for g := range m {
		m[g] = make([]uint32, width)
	}
	laneState := md5core.NewLaneState(pred.Init, width)
	compressed := md5core.CompressLanes(laneState, &m)

	lane, ok := pred.EvaluateLanes(compressed)
	assert.True(t, ok)
	assert.Equal(t, 0, lane)
}
