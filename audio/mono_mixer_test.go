// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/internal/audiotest"
)

func TestMonoMixer_Downmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		waveform func(sample, channel int) float32
		want     float32
	}{
		{name: "mono passthrough", channels: 1, waveform: func(int, int) float32 { return 0.25 }, want: 0.25},
		{name: "stereo average", channels: 2, waveform: func(_, ch int) float32 { return float32(ch) }, want: 0.5},
		{name: "quad average", channels: 4, waveform: func(_, ch int) float32 { return float32(ch) }, want: 1.5},
		{name: "five channels", channels: 5, waveform: func(_, ch int) float32 { return float32(ch) / 4 }, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 64, tt.waveform)
			mono := audio.NewMonoMixer(src)

			if mono.Channels() != 1 {
				t.Errorf("Channels() = %d, want 1", mono.Channels())
			}
			if mono.SampleRate() != 8000 {
				t.Errorf("SampleRate() = %d, want 8000", mono.SampleRate())
			}

			buf := make([]float32, 32)
			n, err := mono.ReadSamples(buf)
			if err != nil && !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 32 {
				t.Fatalf("ReadSamples() n = %d, want 32", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("sample %d = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mono := audio.NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	n, err := mono.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_CloseClosesSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 10)
	if err := audio.NewMonoMixer(src).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the underlying source")
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()

	for range b.N {
		src := audiotest.NewSineSource(44100, 2, 4096, 440)
		mono := audio.NewMonoMixer(src)
		_, _ = mono.ReadSamples(buf)
	}
}
