// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audproc/utils"
)

// Buffer is a fully loaded mono waveform. Processing stages never mutate a
// Buffer they receive; they return a new one.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

func NewBuffer(samples []float64, sampleRate int) *Buffer {
	return &Buffer{Samples: samples, SampleRate: sampleRate}
}

func (b *Buffer) Len() int { return len(b.Samples) }

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

func (b *Buffer) Clone() *Buffer {
	out := make([]float64, len(b.Samples))
	copy(out, b.Samples)
	return &Buffer{Samples: out, SampleRate: b.SampleRate}
}

// Peak returns the maximum absolute sample value, 0 for an empty buffer.
func (b *Buffer) Peak() float64 { return utils.Peak(b.Samples) }

// IsSilent reports whether every sample is exactly zero.
func (b *Buffer) IsSilent() bool {
	for _, s := range b.Samples {
		if s != 0 {
			return false
		}
	}
	return true
}

// Validate checks the invariants shared by all components: a positive sample
// rate, at least one sample and only finite values.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Samples) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrDegenerateInput)
	}

	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrDegenerateInput, b.SampleRate)
	}

	for i, s := range b.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: non-finite sample at %d", ErrProcessing, i)
		}
	}

	return nil
}
