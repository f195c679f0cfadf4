// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/audproc/utils"
)

// antiAliasAlpha is the coefficient of the one-pole low-pass applied before
// decimation when downsampling.
const antiAliasAlpha = 0.5

// Resample converts buf to dstRate using Catmull-Rom cubic interpolation.
// A buffer already at dstRate (or a non-positive dstRate) is returned as a
// copy. When downsampling, a one-pole low-pass is run over the input first.
func Resample(buf *Buffer, dstRate int) *Buffer {
	if dstRate <= 0 || buf.SampleRate <= 0 || dstRate == buf.SampleRate || len(buf.Samples) == 0 {
		out := buf.Clone()
		if dstRate > 0 && len(buf.Samples) == 0 {
			out.SampleRate = dstRate
		}
		return out
	}

	// source samples per output sample
	ratio := float64(buf.SampleRate) / float64(dstRate)

	src := buf.Samples
	if ratio > 1.0 {
		src = make([]float64, len(buf.Samples))
		state := buf.Samples[0]
		for i, x := range buf.Samples {
			state = antiAliasAlpha*x + (1-antiAliasAlpha)*state
			src[i] = state
		}
	}

	n := len(src)
	outLen := int(math.Floor(float64(n) / ratio))
	out := make([]float64, outLen)

	at := func(i int) float64 {
		if i < 0 {
			return src[0]
		}
		if i >= n {
			return src[n-1]
		}
		return src[i]
	}

	for i := range outLen {
		pos := float64(i) * ratio
		k := int(pos)
		frac := pos - float64(k)
		out[i] = utils.CubicInterpolate(at(k-1), at(k), at(k+1), at(k+2), frac)
	}

	return NewBuffer(out, dstRate)
}
