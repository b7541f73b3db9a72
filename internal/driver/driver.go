// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package driver implements the outer loop that grows a prefix by one
// block at a time and, at each length, asks the coordinator to search
// every legal extension width before giving up and growing further.
package driver

import (
	"fmt"

	"github.com/md5rush/md5rush/internal/framer"
	"github.com/md5rush/md5rush/internal/predicate"
	"github.com/md5rush/md5rush/internal/search"

	log "github.com/sirupsen/logrus"
)

// unbounded stands in for an effectively-unbounded max_count: the
// search is limited in practice only by the mutable window's own
// base-2^32 capacity (via enum.Advance exhaustion), never by this
// count.
const unbounded = ^uint64(0)

// Driver runs the growing-prefix search loop against a long-lived
// Coordinator (and the worker pool it owns).
type Driver struct {
	Coordinator *search.Coordinator
	Zeros       uint32
}

// Result is what Run found: the full winning byte sequence (as
// 32-bit words) and the total candidate count the coordinator reported
// across every attempt (on a hit, only up to the winning lane).
type Result struct {
	Words          []uint32
	HashesComputed uint64
}

// Run grows prefixWords one block at a time, attempting every mutable
// extension width i in [1, 13-psize] before extending, until one
// satisfies the zero-nibble-prefix predicate. The extension length
// grows monotonically across attempts.
func (d *Driver) Run(prefixWords []uint32) (Result, error) {
	fr := framer.Load(prefixWords)
	extended := append([]uint32(nil), prefixWords...)

	var hashesComputed uint64
	for {
		psize := fr.Psize()
		for i := 1; psize+i+3 <= 16; i++ {
			block := fr.TrailingBlockTemplate(i, uint64(len(extended)))

			pred, err := predicate.New(fr.State, d.Zeros)
			if err != nil {
				return Result{}, err
			}
			work, err := search.NewWork(unbounded, psize, psize+i, block, pred)
			if err != nil {
				return Result{}, err
			}

			log.WithFields(log.Fields{"i": i, "psize": psize}).Debug("dispatching extension attempt")
			result := d.Coordinator.Search(work)
			hashesComputed += result.Count

			if result.Hit() {
				extended = append(extended, result.Block[psize:psize+i]...)
				return Result{Words: extended, HashesComputed: hashesComputed}, nil
			}
		}

		extraZeros := 16 - psize
		extended = append(extended, make([]uint32, extraZeros)...)
		fr.ExtendByEmptyBlock()
		log.WithField("prefix_words", len(extended)).Debug("no hit at this length, growing prefix by one block")

		if len(extended) > maxPrefixWords {
			return Result{}, fmt.Errorf("driver: exhausted %d words without a hit", maxPrefixWords)
		}
	}
}

// maxPrefixWords is a defensive circuit breaker, not part of the
// search's own termination logic (the search is only probabilistically
// guaranteed to terminate). It exists so a pathological zeros value
// close to 32 cannot spin the driver forever in a test environment.
const maxPrefixWords = 1 << 20
