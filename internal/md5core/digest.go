// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package md5core

import (
	"encoding/binary"
	"hash"
)

// BlockSize and Size match crypto/md5's hash.Hash contract.
const (
	BlockSize = 64
	Size      = 16
)

// Digest is a crypto/md5-compatible streaming hasher built directly on
// Compress. It exists so the CLI can re-hash a prefix (and a winning
// candidate, for independent verification) through the ordinary
// Write/Sum path without going through the search's Work/Result
// machinery, a sanity check that the kernel and the framer have not
// drifted apart.
type Digest struct {
	state State
	x     [BlockSize]byte
	nx    int
	len   uint64
}

// NewDigest returns a Digest primed with the MD5 initialization vector.
func NewDigest() *Digest {
	return &Digest{state: IV}
}

func (d *Digest) Size() int      { return Size }
func (d *Digest) BlockSize() int { return BlockSize }

func (d *Digest) Reset() {
	d.state = IV
	d.nx = 0
	d.len = 0
}

func (d *Digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)

	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			d.state = Compress(d.state, wordsFromBytes(d.x[:]))
			d.nx = 0
		}
		p = p[n:]
	}
	for len(p) >= BlockSize {
		d.state = Compress(d.state, wordsFromBytes(p[:BlockSize]))
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

func (d *Digest) Sum(in []byte) []byte {
	// Copy so calling Sum does not perturb a digest that might still be
	// written to, matching crypto/md5's contract.
	cp := *d
	trail := make([]byte, 0, 2*BlockSize)
	trail = append(trail, cp.x[:cp.nx]...)

	length := cp.len
	var tmp [BlockSize]byte
	tmp[0] = 0x80
	if length%BlockSize < 56 {
		trail = append(trail, tmp[0:56-length%BlockSize]...)
	} else {
		trail = append(trail, tmp[0:BlockSize+56-length%BlockSize]...)
	}

	length <<= 3
	binary.LittleEndian.PutUint64(tmp[:8], length)
	trail = append(trail, tmp[0:8]...)

	state := cp.state
	for i := 0; i < len(trail); i += BlockSize {
		state = Compress(state, wordsFromBytes(trail[i:i+BlockSize]))
	}

	var out [Size]byte
	binary.LittleEndian.PutUint32(out[0:4], state.A)
	binary.LittleEndian.PutUint32(out[4:8], state.B)
	binary.LittleEndian.PutUint32(out[8:12], state.C)
	binary.LittleEndian.PutUint32(out[12:16], state.D)
	return append(in, out[:]...)
}

func wordsFromBytes(b []byte) *[16]uint32 {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(b[i*4 : i*4+4])
	}
	return &m
}

var _ hash.Hash = (*Digest)(nil)
