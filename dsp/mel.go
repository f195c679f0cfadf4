// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melLogHz      = 1000.0
	melLogMel     = melLogHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency to the Slaney mel scale.
func HzToMel(hz float64) float64 {
	if hz < melLogHz {
		return hz / melLinearStep
	}
	return melLogMel + math.Log(hz/melLogHz)/melLogStep
}

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64) float64 {
	if mel < melLogMel {
		return mel * melLinearStep
	}
	return melLogHz * math.Exp(melLogStep*(mel-melLogMel))
}

// MelFilterbank returns nMels area-normalised triangular filters over the
// nfft/2+1 FFT bins, spanning 0 Hz to Nyquist: [mel][bin].
func MelFilterbank(sampleRate, nfft, nMels int) [][]float64 {
	fftFreqs := FFTFrequencies(sampleRate, nfft)

	lo, hi := HzToMel(0), HzToMel(float64(sampleRate)/2)
	edges := make([]float64, nMels+2)
	for i := range edges {
		edges[i] = MelToHz(lo + (hi-lo)*float64(i)/float64(nMels+1))
	}

	weights := make([][]float64, nMels)
	for m := range nMels {
		row := make([]float64, len(fftFreqs))
		lower, centre, upper := edges[m], edges[m+1], edges[m+2]
		enorm := 2 / (upper - lower)

		for k, f := range fftFreqs {
			up := (f - lower) / (centre - lower)
			down := (upper - f) / (upper - centre)
			if w := math.Min(up, down); w > 0 {
				row[k] = w * enorm
			}
		}
		weights[m] = row
	}

	return weights
}

// PowerToDB converts power values to decibels relative to 1, flooring the
// input at 1e-10 and the output at 80 dB below the maximum.
func PowerToDB(power [][]float64) [][]float64 {
	const (
		amin  = 1e-10
		topDB = 80.0
	)

	peak := math.Inf(-1)
	out := make([][]float64, len(power))
	for t, row := range power {
		out[t] = make([]float64, len(row))
		for i, p := range row {
			db := 10 * math.Log10(math.Max(p, amin))
			out[t][i] = db
			peak = math.Max(peak, db)
		}
	}

	floor := peak - topDB
	for _, row := range out {
		for i := range row {
			row[i] = math.Max(row[i], floor)
		}
	}

	return out
}

// MelDB projects the power spectrogram onto nMels mel bands and converts the
// result to dB.
func (g *Gonum) MelDB(s *Spectrogram, sampleRate, nMels int) [][]float64 {
	if nMels <= 0 {
		nMels = 128
	}

	fb := MelFilterbank(sampleRate, s.NFFT, nMels)
	power := s.Power()

	mel := make([][]float64, len(power))
	for t, frame := range power {
		row := make([]float64, nMels)
		for m, w := range fb {
			var sum float64
			for k, p := range frame {
				sum += w[k] * p
			}
			row[m] = sum
		}
		mel[t] = row
	}

	return PowerToDB(mel)
}

// MFCC is the orthonormal DCT-II of the 128-band MelDB, truncated to n
// coefficients.
func (g *Gonum) MFCC(s *Spectrogram, sampleRate, n int) [][]float64 {
	const nMels = 128

	n = min(max(n, 1), nMels)
	melDB := g.MelDB(s, sampleRate, nMels)
	basis := dctBasis(n, nMels)

	out := make([][]float64, len(melDB))
	for t, frame := range melDB {
		row := make([]float64, n)
		for c := range n {
			var sum float64
			for m, v := range frame {
				sum += basis[c][m] * v
			}
			row[c] = sum
		}
		out[t] = row
	}

	return out
}

// dctBasis returns the first n rows of the orthonormal DCT-II matrix of size m.
func dctBasis(n, m int) [][]float64 {
	basis := make([][]float64, n)
	for c := range n {
		scale := math.Sqrt(2 / float64(m))
		if c == 0 {
			scale = math.Sqrt(1 / float64(m))
		}

		row := make([]float64, m)
		for j := range m {
			row[j] = scale * math.Cos(math.Pi*float64(c)*(2*float64(j)+1)/(2*float64(m)))
		}
		basis[c] = row
	}

	return basis
}
