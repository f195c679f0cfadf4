// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/utils"
)

func TestBuffer_Basics(t *testing.T) {
	t.Parallel()

	buf := audio.NewBuffer([]float64{0.1, -0.7, 0.3, 0}, 4)

	if buf.Len() != 4 {
		t.Errorf("Len() = %d, want 4", buf.Len())
	}
	if buf.Duration() != 1 {
		t.Errorf("Duration() = %v, want 1", buf.Duration())
	}
	if buf.Peak() != 0.7 {
		t.Errorf("Peak() = %v, want 0.7", buf.Peak())
	}
	if buf.IsSilent() {
		t.Error("IsSilent() = true for non-zero buffer")
	}

	clone := buf.Clone()
	clone.Samples[0] = 1
	if buf.Samples[0] != 0.1 {
		t.Error("Clone() shares sample storage")
	}
}

func TestBuffer_PeakMatchesLevels(t *testing.T) {
	t.Parallel()

	for _, samples := range [][]float64{nil, {0, 0}, {-1, 0.5}, {0.25, -0.25, 0.125}} {
		buf := audio.NewBuffer(samples, 8000)
		if got, want := buf.Peak(), utils.Peak(samples); got != want {
			t.Errorf("Peak(%v) = %v, want %v", samples, got, want)
		}
	}
}

func TestBuffer_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *audio.Buffer
		want error
	}{
		{name: "ok", buf: audio.NewBuffer([]float64{0, 0.5}, 8000), want: nil},
		{name: "silence is valid", buf: audio.NewBuffer(make([]float64, 10), 8000), want: nil},
		{name: "nil", buf: nil, want: audio.ErrDegenerateInput},
		{name: "empty", buf: audio.NewBuffer(nil, 8000), want: audio.ErrDegenerateInput},
		{name: "zero rate", buf: audio.NewBuffer([]float64{0.1}, 0), want: audio.ErrDegenerateInput},
		{name: "nan", buf: audio.NewBuffer([]float64{0.1, math.NaN()}, 8000), want: audio.ErrProcessing},
		{name: "inf", buf: audio.NewBuffer([]float64{math.Inf(-1)}, 8000), want: audio.ErrProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.buf.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
