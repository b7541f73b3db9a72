// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

// Package cpufeature picks the lane width W the SIMD/data-parallel
// kernel should use, by inspecting the host's vector instruction
// support at process start and selecting the widest lane count the
// host supports.
package cpufeature

import "github.com/klauspost/cpuid/v2"

// Width reports the widest lane count the search kernel should use on
// this host: 16 lanes under AVX512F, 8 under AVX2, 4 under SSE2, and a
// pure-scalar fallback (1) otherwise.
func Width() int {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return 16
	case cpuid.CPU.Supports(cpuid.AVX2):
		return 8
	case cpuid.CPU.Supports(cpuid.SSE2):
		return 4
	default:
		return 1
	}
}
