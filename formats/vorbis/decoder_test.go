// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audproc/audio"
)

type fakeOgg struct {
	sampleRate int
	channels   int
	data       []float32
	err        error
}

func (f *fakeOgg) SampleRate() int { return f.sampleRate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}

	n := copy(p, f.data)
	f.data = f.data[n:]

	return n, nil
}

func newSource(f *fakeOgg) *source {
	return &source{dec: f, sampleRate: f.sampleRate, channels: f.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "text", data: []byte("This is not Ogg Vorbis data")},
		{name: "empty", data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotVorbisFile) {
				t.Errorf("Decode() error = %v, want ErrNotVorbisFile", err)
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		data     []float32
		dst      int
		wantN    []int
	}{
		{name: "mono", channels: 1, data: []float32{0.1, 0.2, 0.3}, dst: 2, wantN: []int{2, 1}},
		{name: "stereo whole frames", channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, dst: 5, wantN: []int{4, 2}},
		{name: "six channels", channels: 6, data: make([]float32, 12), dst: 64, wantN: []int{12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSource(&fakeOgg{sampleRate: 48000, channels: tt.channels, data: tt.data})
			buf := make([]float32, tt.dst)

			var got []float32
			for i, want := range tt.wantN {
				n, err := s.ReadSamples(buf)
				if err != nil {
					t.Fatalf("read %d: error = %v", i, err)
				}
				if n != want {
					t.Fatalf("read %d: n = %d, want %d", i, n, want)
				}
				got = append(got, buf[:n]...)
			}

			if n, err := s.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("final read = (%d, %v), want (0, io.EOF)", n, err)
			}

			for i := range tt.data {
				if got[i] != tt.data[i] {
					t.Errorf("sample[%d] = %f, want %f", i, got[i], tt.data[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_ShortDst(t *testing.T) {
	t.Parallel()

	s := newSource(&fakeOgg{sampleRate: 44100, channels: 2, data: []float32{1, 1}})

	if n, err := s.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}

	if _, err := s.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	s := newSource(&fakeOgg{sampleRate: 44100, channels: 1, err: io.ErrUnexpectedEOF})

	if _, err := s.ReadSamples(make([]float32, 4)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	s := newSource(&fakeOgg{sampleRate: 22050, channels: 2})

	if s.SampleRate() != 22050 || s.Channels() != 2 || s.BufSize() != 4096 {
		t.Errorf("metadata = (%d, %d, %d), want (22050, 2, 4096)", s.SampleRate(), s.Channels(), s.BufSize())
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := make([]float32, 48000*2)
	buf := make([]float32, 4096)

	for b.Loop() {
		s := newSource(&fakeOgg{sampleRate: 48000, channels: 2, data: data})
		for {
			if _, err := s.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
