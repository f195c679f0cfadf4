// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrogram is a complex short-time spectrum stored frame-major:
// Data[frame][bin] with NFFT/2+1 bins per frame.
type Spectrogram struct {
	Data [][]complex128
	NFFT int
	Hop  int
}

// NewSpectrogram allocates a zeroed spectrogram of the given shape.
func NewSpectrogram(frames, nfft, hop int) *Spectrogram {
	data := make([][]complex128, frames)
	for t := range data {
		data[t] = make([]complex128, nfft/2+1)
	}
	return &Spectrogram{Data: data, NFFT: nfft, Hop: hop}
}

func (s *Spectrogram) Frames() int { return len(s.Data) }
func (s *Spectrogram) Bins() int   { return s.NFFT/2 + 1 }

// Clone returns a deep copy.
func (s *Spectrogram) Clone() *Spectrogram {
	out := NewSpectrogram(s.Frames(), s.NFFT, s.Hop)
	for t, frame := range s.Data {
		copy(out.Data[t], frame)
	}
	return out
}

// Magnitude returns |S| as [frame][bin].
func (s *Spectrogram) Magnitude() [][]float64 {
	out := make([][]float64, len(s.Data))
	for t, frame := range s.Data {
		row := make([]float64, len(frame))
		for k, c := range frame {
			row[k] = cmplx.Abs(c)
		}
		out[t] = row
	}
	return out
}

// Power returns |S|^2 as [frame][bin].
func (s *Spectrogram) Power() [][]float64 {
	out := make([][]float64, len(s.Data))
	for t, frame := range s.Data {
		row := make([]float64, len(frame))
		for k, c := range frame {
			row[k] = real(c)*real(c) + imag(c)*imag(c)
		}
		out[t] = row
	}
	return out
}

// Hann returns a periodic Hann window of length n.
func Hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// FFTFrequencies returns the centre frequency of each of the nfft/2+1 bins.
func FFTFrequencies(sampleRate, nfft int) []float64 {
	out := make([]float64, nfft/2+1)
	for k := range out {
		out[k] = float64(k) * float64(sampleRate) / float64(nfft)
	}
	return out
}

// NumFrames is the frame count of a centred analysis of n samples.
func NumFrames(n, hop int) int {
	return 1 + n/hop
}

// padCenter extends x by pad samples on both sides, mirroring about the end
// samples. When x is too short to mirror the padding is zeros.
func padCenter(x []float64, pad int) []float64 {
	n := len(x)
	out := make([]float64, n+2*pad)
	copy(out[pad:], x)

	if n <= pad {
		return out
	}

	for i := 1; i <= pad; i++ {
		out[pad-i] = x[i]
		out[pad+n-1+i] = x[n-1-i]
	}

	return out
}

// STFT frames x with a periodic Hann window and transforms each frame.
func (g *Gonum) STFT(x []float64) *Spectrogram {
	nfft, hop := g.nfft(), g.hop()
	frames := NumFrames(len(x), hop)
	padded := padCenter(x, nfft/2)

	fft := fourier.NewFFT(nfft)
	window := Hann(nfft)
	seg := make([]float64, nfft)

	spec := &Spectrogram{Data: make([][]complex128, frames), NFFT: nfft, Hop: hop}
	for t := range frames {
		start := t * hop
		for i := range nfft {
			seg[i] = padded[start+i] * window[i]
		}
		spec.Data[t] = fft.Coefficients(nil, seg)
	}

	return spec
}

// ISTFT overlap-adds the windowed inverse transforms of s and divides by the
// summed squared window. The result is trimmed or zero-extended to length.
func (g *Gonum) ISTFT(s *Spectrogram, length int) []float64 {
	nfft, hop := s.NFFT, s.Hop
	if nfft <= 0 {
		nfft = g.nfft()
	}
	if hop <= 0 {
		hop = g.hop()
	}

	total := nfft + hop*max(len(s.Data)-1, 0)
	ola := make([]float64, total)
	wss := make([]float64, total)

	fft := fourier.NewFFT(nfft)
	window := Hann(nfft)
	seg := make([]float64, nfft)
	scale := 1 / float64(nfft)

	for t, frame := range s.Data {
		fft.Sequence(seg, frame)
		start := t * hop
		for i := range nfft {
			ola[start+i] += seg[i] * scale * window[i]
			wss[start+i] += window[i] * window[i]
		}
	}

	const tiny = 1e-10
	for i := range ola {
		if wss[i] > tiny {
			ola[i] /= wss[i]
		}
	}

	out := make([]float64, length)
	if off := nfft / 2; off < total {
		copy(out, ola[off:])
	}

	return out
}
