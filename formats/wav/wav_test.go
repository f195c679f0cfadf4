// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/internal/audiotest"
)

// pcm16File builds a canonical 44-byte-header WAV around samples.
func pcm16File(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*channels*2))
	binary.Write(buf, binary.LittleEndian, uint16(channels*2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

func TestDecoder_PCM16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		samples  []int16
	}{
		{name: "mono", rate: 8000, channels: 1, samples: []int16{0, 16384, -16384, 32767, -32768}},
		{name: "stereo", rate: 44100, channels: 2, samples: []int16{100, 200, 300, 400, 500, 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(bytes.NewReader(pcm16File(tt.rate, tt.channels, tt.samples)))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if src.SampleRate() != tt.rate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.rate)
			}
			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}

			var got []float32
			dst := make([]float32, 4)
			for {
				n, err := src.ReadSamples(dst)
				got = append(got, dst[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(tt.samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.samples))
			}
			for i, s := range tt.samples {
				want := float32(s) / 32768
				if math.Abs(float64(got[i]-want)) > 1e-6 {
					t.Errorf("sample %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestDecoder_NotWav(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("NOT A WAV FILE AT ALL, JUST TEXT")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_FloatRejected(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(44))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(3)) // IEEE float
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(8000))
	binary.Write(buf, binary.LittleEndian, uint32(32000))
	binary.Write(buf, binary.LittleEndian, uint16(4))
	binary.Write(buf, binary.LittleEndian, uint16(32))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(8))
	binary.Write(buf, binary.LittleEndian, float32(0.5))
	binary.Write(buf, binary.LittleEndian, float32(-0.5))

	_, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, ErrOnlyPCMSupported) {
		t.Errorf("Decode() error = %v, want ErrOnlyPCMSupported", err)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine(22050, 440, 0.25, 0.5)
	path := filepath.Join(t.TempDir(), "tone.wav")

	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if out.SampleRate != in.SampleRate {
		t.Errorf("SampleRate = %d, want %d", out.SampleRate, in.SampleRate)
	}
	if out.Len() != in.Len() {
		t.Fatalf("Len() = %d, want %d", out.Len(), in.Len())
	}
	for i := range in.Samples {
		// one 16-bit quantisation step
		if math.Abs(out.Samples[i]-in.Samples[i]) > 1.0/16384 {
			t.Fatalf("sample %d = %v, want %v", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestWriteFile_ClampsOverRange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hot.wav")
	if err := WriteFile(path, audio.NewBuffer([]float64{2, -2, 0}, 8000)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if out.Peak() > 1 {
		t.Errorf("Peak() = %v, want <= 1", out.Peak())
	}
}

func TestWriteFile_InvalidRateLeavesNoFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	err := WriteFile(path, audio.NewBuffer([]float64{0.1}, 0))
	if !errors.Is(err, audio.ErrEncode) {
		t.Fatalf("WriteFile() error = %v, want ErrEncode", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("partial file left behind: stat error = %v", statErr)
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.wav")
	if err := WriteFile(path, audiotest.Silence(8000, 10)); !errors.Is(err, audio.ErrEncode) {
		t.Errorf("WriteFile() error = %v, want ErrEncode", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("ReadFile() error = %v, want ErrDecode", err)
	}
}
