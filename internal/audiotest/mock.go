// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic signals for tests: streaming
// Sources that mimic a decoder and whole Buffers for the processors.
package audiotest

import (
	"errors"
	"io"
	"math"

	"github.com/ik5/audproc/audio"
)

// MockSource is an audio.Source whose samples come from a waveform function.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
	closed       bool
	failAfter    int // frames; <0 disables
}

var ErrMockRead = errors.New("mock read failure")

func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
		failAfter:    -1,
	}
}

func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return value })
}

// FailAfter makes ReadSamples return ErrMockRead once frames frames have been produced.
func (m *MockSource) FailAfter(frames int) *MockSource {
	m.failAfter = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.generated >= m.failAfter {
		return 0, ErrMockRead
	}

	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.failAfter >= 0 {
		frames = min(frames, m.failAfter-m.generated)
	}

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// Sine returns seconds of a sine tone at frequency Hz with the given peak amplitude.
func Sine(sampleRate int, frequency, seconds, amplitude float64) *audio.Buffer {
	n := int(float64(sampleRate) * seconds)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
	}
	return audio.NewBuffer(samples, sampleRate)
}

// Silence returns n zero samples.
func Silence(sampleRate, n int) *audio.Buffer {
	return audio.NewBuffer(make([]float64, n), sampleRate)
}

// Clicks returns a click train: a single full-scale sample every period
// samples on top of an optional low-level sine bed.
func Clicks(sampleRate, n, period int, bed float64) *audio.Buffer {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = bed * math.Sin(2*math.Pi*220*float64(i)/float64(sampleRate))
		if period > 0 && i%period == 0 {
			samples[i] = 1
		}
	}
	return audio.NewBuffer(samples, sampleRate)
}

// Noise returns deterministic pseudo-random samples in [-amp, amp]
// from a linear congruential generator seeded with seed.
func Noise(sampleRate, n int, amp float64, seed uint32) *audio.Buffer {
	samples := make([]float64, n)
	state := seed
	for i := range samples {
		state = state*1664525 + 1013904223
		samples[i] = amp * (float64(state)/float64(math.MaxUint32)*2 - 1)
	}
	return audio.NewBuffer(samples, sampleRate)
}
