// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidCutoff = errors.New("cutoff must lie strictly between 0 and 1")
	ErrInvalidOrder  = errors.New("filter order must be between 1 and 8")
)

const maxOrder = 8

// Biquad is one second-order section, normalised so a0 == 1.
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// SOS is a cascade of second-order sections.
type SOS struct {
	Sections []Biquad
}

// Butterworth designs an order-N Butterworth low- or high-pass by the
// bilinear transform with frequency prewarping. wn is the -3 dB point as a
// fraction of Nyquist.
func (g *Gonum) Butterworth(order int, wn float64, highpass bool) (*SOS, error) {
	return Butterworth(order, wn, highpass)
}

// Butterworth designs a low or high pass filter of the given order as
// second-order sections. wn is the cutoff normalised to Nyquist, in (0, 1).
func Butterworth(order int, wn float64, highpass bool) (*SOS, error) {
	if order < 1 || order > maxOrder {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if math.IsNaN(wn) || wn <= 0 || wn >= 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidCutoff, wn)
	}

	k := math.Tan(math.Pi * wn / 2)
	k2 := k * k

	sos := &SOS{}

	for i := range order / 2 {
		// pole pair i of the analogue prototype
		q := 1 / (2 * math.Sin(math.Pi*float64(2*i+1)/float64(2*order)))
		norm := 1 / (1 + k/q + k2)

		bq := Biquad{
			A1: 2 * (k2 - 1) * norm,
			A2: (1 - k/q + k2) * norm,
		}
		if highpass {
			bq.B0, bq.B1, bq.B2 = norm, -2*norm, norm
		} else {
			bq.B0 = k2 * norm
			bq.B1, bq.B2 = 2*bq.B0, bq.B0
		}
		sos.Sections = append(sos.Sections, bq)
	}

	if order%2 == 1 {
		norm := 1 / (1 + k)
		bq := Biquad{A1: (k - 1) * norm}
		if highpass {
			bq.B0, bq.B1 = norm, -norm
		} else {
			bq.B0, bq.B1 = k*norm, k*norm
		}
		sos.Sections = append(sos.Sections, bq)
	}

	return sos, nil
}

// Filter runs x through the cascade from a zero initial state
// (transposed direct form II) and returns a new slice.
func (s *SOS) Filter(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	for _, bq := range s.Sections {
		var z1, z2 float64
		for i, v := range out {
			y := bq.B0*v + z1
			z1 = bq.B1*v - bq.A1*y + z2
			z2 = bq.B2*v - bq.A2*y
			out[i] = y
		}
	}

	return out
}
