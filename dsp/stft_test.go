// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"
)

func sine(n, rate int, freq, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return x
}

func TestSTFT_Shape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		n      int
		frames int
	}{
		{name: "one second", n: 22050, frames: 44},
		{name: "exact hop multiple", n: 5120, frames: 11},
		{name: "shorter than a frame", n: 100, frames: 1},
		{name: "single sample", n: 1, frames: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewGonum().STFT(sine(tt.n, 22050, 440, 0.5))

			if s.Frames() != tt.frames {
				t.Errorf("Frames() = %d, want %d", s.Frames(), tt.frames)
			}
			if s.Bins() != 1025 || len(s.Data[0]) != 1025 {
				t.Errorf("Bins() = %d (row %d), want 1025", s.Bins(), len(s.Data[0]))
			}
		})
	}
}

func TestSTFT_PeakBin(t *testing.T) {
	t.Parallel()

	const rate = 22050
	mag := NewGonum().STFT(sine(rate, rate, 1000, 0.5)).Magnitude()
	freqs := FFTFrequencies(rate, DefaultNFFT)

	mid := mag[len(mag)/2]
	best := 0
	for k := range mid {
		if mid[k] > mid[best] {
			best = k
		}
	}

	if math.Abs(freqs[best]-1000) > freqs[1] {
		t.Errorf("peak at %.1f Hz, want 1000 Hz", freqs[best])
	}
}

func TestISTFT_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
	}{
		{name: "tone", n: 22050},
		{name: "odd length", n: 10001},
		{name: "short", n: 700},
	}

	g := NewGonum()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			x := sine(tt.n, 22050, 330, 0.7)
			y := g.ISTFT(g.STFT(x), len(x))

			if len(y) != len(x) {
				t.Fatalf("len = %d, want %d", len(y), len(x))
			}
			for i := range x {
				if math.Abs(y[i]-x[i]) > 1e-9 {
					t.Fatalf("sample %d = %g, want %g", i, y[i], x[i])
				}
			}
		})
	}
}

func TestISTFT_Length(t *testing.T) {
	t.Parallel()

	g := NewGonum()
	s := g.STFT(sine(1000, 8000, 100, 0.5))

	if got := len(g.ISTFT(s, 5000)); got != 5000 {
		t.Errorf("len = %d, want 5000 (zero-extended)", got)
	}
	if got := len(g.ISTFT(s, 10)); got != 10 {
		t.Errorf("len = %d, want 10 (trimmed)", got)
	}
}

func TestPadCenter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x    []float64
		pad  int
		want []float64
	}{
		{name: "reflect", x: []float64{1, 2, 3, 4}, pad: 2, want: []float64{3, 2, 1, 2, 3, 4, 3, 2}},
		{name: "too short", x: []float64{1, 2}, pad: 2, want: []float64{0, 0, 1, 2, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := padCenter(tt.x, tt.pad)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestFFTFrequencies(t *testing.T) {
	t.Parallel()

	f := FFTFrequencies(22050, 2048)

	if len(f) != 1025 {
		t.Fatalf("len = %d, want 1025", len(f))
	}
	if f[0] != 0 || f[1024] != 11025 {
		t.Errorf("range = [%g, %g], want [0, 11025]", f[0], f[1024])
	}
}

func BenchmarkSTFT(b *testing.B) {
	g := NewGonum()
	x := sine(22050*5, 22050, 440, 0.5)

	b.ReportAllocs()
	for b.Loop() {
		_ = g.STFT(x)
	}
}
