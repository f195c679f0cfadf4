// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"slices"
)

// reflectIndex maps i into [0, n) by mirroring about the array edges with the
// edge sample repeated (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}

	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}

	return i
}

// MedianFilter returns the running median of x over kernel samples centred on
// each position. Even kernels are widened by one.
func MedianFilter(x []float64, kernel int) []float64 {
	kernel = max(kernel, 1)
	out := make([]float64, len(x))
	medianInto(out, x, kernel, make([]float64, kernel|1))
	return out
}

func medianInto(dst, x []float64, kernel int, scratch []float64) {
	n := len(x)
	if n == 0 {
		return
	}

	kernel |= 1
	half := kernel / 2
	win := scratch[:kernel]

	for i := range n {
		for j := range kernel {
			win[j] = x[reflectIndex(i-half+j, n)]
		}
		slices.Sort(win)
		dst[i] = win[half]
	}
}

// softMask is the ratio mask (x^p) / (x^p + ref^p), computed relative to the
// larger of the two. Bins where both are zero get 0.
func softMask(x, ref, power float64) float64 {
	z := math.Max(x, ref)
	if z < math.SmallestNonzeroFloat64 {
		return 0
	}

	a := math.Pow(x/z, power)
	b := math.Pow(ref/z, power)

	return a / (a + b)
}

// HPSS median-filters the magnitude along time (harmonic estimate) and
// along frequency (percussive estimate), then masks the complex bins with
// power-2 soft masks. Each estimate competes against the other scaled by
// margin, so the two parts need not sum to s when margin > 1.
func (g *Gonum) HPSS(s *Spectrogram, kernel int, margin float64) (*Spectrogram, *Spectrogram) {
	if kernel <= 0 {
		kernel = DefaultKernel
	}
	if margin < 1 {
		margin = 1
	}

	const power = 2.0

	mag := s.Magnitude()
	frames, bins := s.Frames(), s.Bins()

	harm := make([][]float64, frames)
	perc := make([][]float64, frames)
	scratch := make([]float64, kernel|1)

	for t := range frames {
		perc[t] = make([]float64, bins)
		medianInto(perc[t], mag[t], kernel, scratch)
		harm[t] = make([]float64, bins)
	}

	col := make([]float64, frames)
	filtered := make([]float64, frames)
	for k := range bins {
		for t := range frames {
			col[t] = mag[t][k]
		}
		medianInto(filtered, col, kernel, scratch)
		for t := range frames {
			harm[t][k] = filtered[t]
		}
	}

	hs := NewSpectrogram(frames, s.NFFT, s.Hop)
	ps := NewSpectrogram(frames, s.NFFT, s.Hop)

	for t := range frames {
		for k := range bins {
			h, p := harm[t][k], perc[t][k]
			c := s.Data[t][k]
			hs.Data[t][k] = c * complex(softMask(h, p*margin, power), 0)
			ps.Data[t][k] = c * complex(softMask(p, h*margin, power), 0)
		}
	}

	return hs, ps
}
