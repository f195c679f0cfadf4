// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 or 32 bits are scaled by 2^(depth-1) to float32 in
// [-1.0, 1.0]. go-audio/aiff needs an io.ReadSeeker; other readers are
// buffered in memory first.
//
//	f, _ := os.Open("take.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
package aiff
