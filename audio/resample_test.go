// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"math"
	"testing"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/internal/audiotest"
)

func TestResample_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		n       int
		wantLen int
	}{
		{name: "downsample 44.1k to 22.05k", srcRate: 44100, dstRate: 22050, n: 44100, wantLen: 22050},
		{name: "downsample 48k to 8k", srcRate: 48000, dstRate: 8000, n: 48000, wantLen: 8000},
		{name: "upsample 8k to 16k", srcRate: 8000, dstRate: 16000, n: 8000, wantLen: 16000},
		{name: "same rate", srcRate: 22050, dstRate: 22050, n: 100, wantLen: 100},
		{name: "zero target keeps rate", srcRate: 22050, dstRate: 0, n: 100, wantLen: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := make([]float64, tt.n)
			for i := range samples {
				samples[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/float64(tt.srcRate))
			}
			in := audio.NewBuffer(samples, tt.srcRate)
			out := audio.Resample(in, tt.dstRate)

			if out.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", out.Len(), tt.wantLen)
			}
			wantRate := tt.dstRate
			if wantRate <= 0 {
				wantRate = tt.srcRate
			}
			if out.SampleRate != wantRate {
				t.Errorf("SampleRate = %d, want %d", out.SampleRate, wantRate)
			}
		})
	}
}

func TestResample_UpsamplePreservesShape(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(8000, 100, 0.5, 0.8)
	out := audio.Resample(in, 16000)

	// every second output sample sits exactly on an input sample
	for i := 0; i < in.Len(); i++ {
		if math.Abs(out.Samples[2*i]-in.Samples[i]) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", 2*i, out.Samples[2*i], in.Samples[i])
		}
	}

	if peak := out.Peak(); peak > 0.85 {
		t.Errorf("interpolation overshoot: peak %v", peak)
	}
}

func TestResample_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(44100, 440, 0.1, 0.5)
	orig := in.Clone()
	_ = audio.Resample(in, 22050)

	for i := range in.Samples {
		if in.Samples[i] != orig.Samples[i] {
			t.Fatal("Resample mutated its input buffer")
		}
	}
}

func BenchmarkResample(b *testing.B) {
	in := audiotest.Sine(44100, 440, 1, 0.5)

	b.ReportAllocs()

	for range b.N {
		_ = audio.Resample(in, 22050)
	}
}
