// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package md5core

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test vectors from RFC 1321 §A.5.
var goldenVectors = []struct {
	in   string
	want string
}{
	{"", "d41d8cd98f00b204e9800998ecf8427e"},
	{"a", "0cc175b9c0f1b6a831c399e269772661"},
	{"abc", "900150983cd24fb0d6963f7d28e17f72"},
	{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
	{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
}

func TestDigestGolden(t *testing.T) {
	for _, v := range goldenVectors {
		d := NewDigest()
		_, err := d.Write([]byte(v.in))
		assert.NoError(t, err)
		got := hex.EncodeToString(d.Sum(nil))
		assert.Equal(t, v.want, got, "MD5(%q)", v.in)
	}
}

func TestDigestMultiBlock(t *testing.T) {
	// Exercise the >1-block path: 130 bytes crosses two 64-byte blocks
	// plus a short trailer.
	msg := make([]byte, 130)
	for i := range msg {
		msg[i] = byte(i)
	}
	d := NewDigest()
	d.Write(msg[:64])
	d.Write(msg[64:120])
	d.Write(msg[120:])
	got := d.Sum(nil)

	want := NewDigest()
	want.Write(msg)
	assert.Equal(t, want.Sum(nil), got)
}

func TestCompressDeterministic(t *testing.T) {
	var block [16]uint32
	for i := range block {
		block[i] = uint32(i) * 0x01010101
	}
	s1 := Compress(IV, &block)
	s2 := Compress(IV, &block)
	assert.Equal(t, s1, s2, "Compress must be pure")
}
