// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package search

import (
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
)

// Coordinator owns the work/result queues and the worker pool, and is
// the sole producer of Work and sole consumer of Result. It is
// long-lived across an entire treasure hunt: the driver calls Search
// once per candidate extension length, reusing the same queues and
// workers, and only calls Shutdown once the hunt is over.
type Coordinator struct {
	wq         *Queue[Work]
	rq         *Queue[Result]
	stop       atomic.Bool
	maxRunning int
	blockSize  uint64
	pool       sizedwaitgroup.SizedWaitGroup

	panics     chan error
	panicsDone chan struct{}
	mu         sync.Mutex
	panicErrs  *multierror.Error
}

// NewCoordinator starts nWorkers worker goroutines, each searching with
// the given SIMD lane width, and returns a Coordinator ready to accept
// Search calls. maxRunning bounds the number of Works in flight
// (2*nWorkers is a reasonable default); blockSize bounds candidates per
// dispatched Work (the repo uses 10000).
func NewCoordinator(nWorkers, laneWidth, maxRunning int, blockSize uint64) *Coordinator {
	c := &Coordinator{
		wq:         NewQueue[Work](maxRunning),
		rq:         NewQueue[Result](maxRunning),
		maxRunning: maxRunning,
		blockSize:  blockSize,
		pool:       sizedwaitgroup.New(nWorkers),
		panics:     make(chan error, nWorkers),
		panicsDone: make(chan struct{}),
	}

	// Drain panics as they arrive instead of only at Shutdown, so a
	// worker that panics repeatedly mid-hunt never blocks on a full
	// panics channel.
	go func() {
		defer close(c.panicsDone)
		for err := range c.panics {
			c.mu.Lock()
			c.panicErrs = multierror.Append(c.panicErrs, err)
			c.mu.Unlock()
			log.WithError(err).Error("search: worker panic recovered")
		}
	}()

	for i := 0; i < nWorkers; i++ {
		c.pool.Add()
		w := Worker{ID: i, LaneWidth: laneWidth}
		go func() {
			defer c.pool.Done()
			w.Run(c.wq, c.rq, &c.stop, c.panics)
		}()
	}
	return c
}

// Search splits work into block-sized children, keeps at most
// maxRunning in flight, and aggregates Results until the space is
// exhausted or one child reports a hit. On a hit it sets the stop flag
// (so already-running workers abandon their remaining candidates) and
// continues draining, but no longer summing, results from workers
// still in flight, so the queues are left empty for the driver's next
// Search call.
func (c *Coordinator) Search(work Work) Result {
	c.stop.Store(false)

	var (
		count     uint64
		running   int
		exhausted bool
		hit       *Result
	)

	for {
		if hit == nil && !exhausted && running < c.maxRunning {
			if work.MaxCount == 0 {
				exhausted = true
				continue
			}
			var w1 Work
			w1, work = Split(work, c.blockSize)
			c.wq.Push(w1)
			running++
			continue
		}
		if running == 0 {
			break
		}

		res, ok := c.rq.Pull()
		if !ok {
			log.Error("search: result queue closed while work still in flight")
			break
		}
		running--

		if hit != nil {
			continue // drained, discarded: see doc comment above
		}
		count += res.Count
		if res.Hit() {
			hit = &Result{Count: count, Block: res.Block}
			c.stop.Store(true)
		}
	}

	if hit != nil {
		return *hit
	}
	return Result{Count: count}
}

// Shutdown closes the work queue (waking every worker blocked on Pull),
// waits for all workers to exit, and returns an aggregated error if any
// worker panicked during the hunt. Safe to call once, after the last
// Search call.
func (c *Coordinator) Shutdown() error {
	c.wq.Close()
	c.pool.Wait()
	close(c.panics)
	<-c.panicsDone

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panicErrs.ErrorOrNil()
}
