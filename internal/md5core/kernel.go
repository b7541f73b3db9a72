// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package md5core implements the MD5 compression function used by the
// treasure search. Unlike a general-purpose MD5 package, it exposes the
// single-block compression step directly: the search only ever hashes
// messages whose complete-block prefix has already been absorbed into a
// running state, so the hot path is one compression per candidate rather
// than a full streaming hash.
package md5core

import "math/bits"

// State is the MD5 chaining value (A, B, C, D) after absorbing zero or
// more complete 512-bit blocks.
type State struct {
	A, B, C, D uint32
}

// IV is the MD5 initialization vector, RFC 1321 §3.3.
var IV = State{
	A: 0x67452301,
	B: 0xefcdab89,
	C: 0x98badcfe,
	D: 0x10325476,
}

// shiftAmounts holds the per-round rotate-left distances.
var shiftAmounts = [64]uint{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// sineConstants holds K[0..63] = floor(abs(sin(i+1)) * 2^32).
var sineConstants = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// Compress runs one MD5 compression round over the 16-word little-endian
// message block m, returning the updated state. It is pure and
// deterministic: the same (state, m) always yields the same result.
func Compress(state State, m *[16]uint32) State {
	a, b, c, d := state.A, state.B, state.C, state.D

	for i := 0; i < 16; i++ {
		f := (b & c) | (^b & d)
		g := i
		a, b, c, d = round(a, b, c, d, f, g, i, m)
	}
	for i := 16; i < 32; i++ {
		f := (d & b) | (^d & c)
		g := (5*i + 1) % 16
		a, b, c, d = round(a, b, c, d, f, g, i, m)
	}
	for i := 32; i < 48; i++ {
		f := b ^ c ^ d
		g := (3*i + 5) % 16
		a, b, c, d = round(a, b, c, d, f, g, i, m)
	}
	for i := 48; i < 64; i++ {
		f := c ^ (b | ^d)
		g := (7 * i) % 16
		a, b, c, d = round(a, b, c, d, f, g, i, m)
	}

	return State{
		A: state.A + a,
		B: state.B + b,
		C: state.C + c,
		D: state.D + d,
	}
}

func round(a, b, c, d, f uint32, g, i int, m *[16]uint32) (uint32, uint32, uint32, uint32) {
	f += a + sineConstants[i] + m[g]
	a = d
	d = c
	c = b
	b += bits.RotateLeft32(f, int(shiftAmounts[i]))
	return a, b, c, d
}
