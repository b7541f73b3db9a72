// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package search

import (
	"fmt"
	"sync/atomic"

	"github.com/md5rush/md5rush/internal/enum"
	"github.com/md5rush/md5rush/internal/md5core"

	log "github.com/sirupsen/logrus"
)

// Worker consumes Work from a queue, searches it with a lane-parallel
// (SIMD-shaped) compression loop, and emits exactly one Result per Work.
type Worker struct {
	// LaneWidth is the number of candidates searched per compression
	// round; 1 means scalar.
	LaneWidth int
	ID        int
}

// Run pulls Work until the queue closes and drains. A stop flag observed
// set between batches ends the current Work early with a partial count;
// Run then goes on pulling. Any panic escaping the search loop is
// recovered and reported on panics so a programmer error in the kernel
// cannot silently wedge the pool or crash the process outright.
func (w Worker) Run(wq *Queue[Work], rq *Queue[Result], stop *atomic.Bool, panics chan<- error) {
	for {
		work, ok := wq.Pull()
		if !ok {
			log.WithField("worker", w.ID).Debug("work queue closed, exiting")
			return
		}
		rq.Push(w.search(work, stop, panics))
	}
}

func (w Worker) search(work Work, stop *atomic.Bool, panics chan<- error) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			panics <- panicError{workerID: w.ID, value: r}
			result = Result{Count: result.Count}
		}
	}()

	width := w.LaneWidth
	if width < 1 {
		width = 1
	}

	base := work.Block
	var count uint64
	remaining := work.MaxCount

	for remaining > 0 {
		if stop.Load() {
			return Result{Count: count}
		}

		batch := width
		if uint64(batch) > remaining {
			batch = int(remaining)
		}

		lanes := laneMessageWords(base, work.MutableBegin, work.MutableEnd, batch)
		laneState := md5core.NewLaneState(work.Pred.Init, batch)
		compressed := md5core.CompressLanes(laneState, lanes)

		if lane, hit := work.Pred.EvaluateLanes(compressed); hit {
			winning := base
			enum.Advance(&winning, work.MutableBegin, work.MutableEnd, uint32(lane))
			count += uint64(lane) + 1
			return Result{Count: count, Block: &winning}
		}

		count += uint64(batch)
		remaining -= uint64(batch)
		if batch < width {
			break
		}
		if !enum.Advance(&base, work.MutableBegin, work.MutableEnd, uint32(batch)) {
			break
		}
	}
	return Result{Count: count}
}

// laneMessageWords builds the per-lane message words for a batch of
// `width` consecutive candidates starting at base: lane j is base
// advanced by j steps in the mutable window, so lane 0 is base, lane 1
// is base+1, and so on.
func laneMessageWords(base [16]uint32, begin, end, width int) *[16][]uint32 {
	var m [16][]uint32
	for g := range m {
		m[g] = make([]uint32, width)
	}
	for lane := 0; lane < width; lane++ {
		blk := base
		enum.Advance(&blk, begin, end, uint32(lane))
		for g := 0; g < 16; g++ {
			m[g][lane] = blk[g]
		}
	}
	return &m
}

// panicError records which worker panicked and with what value, so the
// coordinator can aggregate several such failures (see
// hashicorp/go-multierror usage in coordinator.go) instead of reporting
// only the first.
type panicError struct {
	workerID int
	value    interface{}
}

func (p panicError) Error() string {
	return fmt.Sprintf("search: worker %d panicked: %v", p.workerID, p.value)
}
