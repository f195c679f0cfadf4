// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
)

// frames slices a centred, reflect-padded copy of x into 1+len(x)/hop frames
// of length frame. The frames share the padded backing array.
func frames(x []float64, frame, hop int) [][]float64 {
	padded := padCenter(x, frame/2)
	if frame%2 == 1 {
		padded = append(padded, 0)
	}
	n := NumFrames(len(x), hop)

	out := make([][]float64, n)
	for t := range n {
		start := t * hop
		out[t] = padded[start : start+frame]
	}

	return out
}

// FrameRMS returns the root mean square of each centred frame.
func FrameRMS(x []float64, frame, hop int) []float64 {
	fs := frames(x, frame, hop)

	out := make([]float64, len(fs))
	for t, f := range fs {
		var sum float64
		for _, v := range f {
			sum += v * v
		}
		out[t] = math.Sqrt(sum / float64(frame))
	}

	return out
}

// ZeroCrossingRate returns the fraction of adjacent sample pairs in each
// centred frame whose signs differ. Zero counts as positive.
func ZeroCrossingRate(x []float64, frame, hop int) []float64 {
	fs := frames(x, frame, hop)

	out := make([]float64, len(fs))
	for t, f := range fs {
		var crossings int
		for i := 1; i < len(f); i++ {
			if math.Signbit(f[i]) != math.Signbit(f[i-1]) {
				crossings++
			}
		}
		out[t] = float64(crossings) / float64(frame)
	}

	return out
}

// SpectralCentroid returns the magnitude-weighted mean frequency of each
// frame of mag ([frame][bin]). Frames with no energy report 0.
func SpectralCentroid(mag [][]float64, freqs []float64) []float64 {
	out := make([]float64, len(mag))
	for t, frame := range mag {
		var weighted, sum float64
		for k, m := range frame {
			weighted += freqs[k] * m
			sum += m
		}
		if sum > 0 {
			out[t] = weighted / sum
		}
	}

	return out
}

// SpectralRolloff returns, per frame, the lowest bin frequency below which
// at least fraction of the total magnitude lies.
func SpectralRolloff(mag [][]float64, freqs []float64, fraction float64) []float64 {
	out := make([]float64, len(mag))
	for t, frame := range mag {
		var total float64
		for _, m := range frame {
			total += m
		}

		threshold := fraction * total
		var cum float64
		for k, m := range frame {
			cum += m
			if cum >= threshold {
				out[t] = freqs[k]
				break
			}
		}
	}

	return out
}

// PositiveFlux returns, for each pair of consecutive frames, the L2 norm of
// the magnitude increases between them.
func PositiveFlux(mag [][]float64) []float64 {
	if len(mag) < 2 {
		return nil
	}

	out := make([]float64, len(mag)-1)
	for t := 1; t < len(mag); t++ {
		var sum float64
		for k, m := range mag[t] {
			if d := m - mag[t-1][k]; d > 0 {
				sum += d * d
			}
		}
		out[t-1] = math.Sqrt(sum)
	}

	return out
}
