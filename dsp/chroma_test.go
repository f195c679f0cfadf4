// SPDX-License-Identifier: EPL-2.0

package dsp

import "testing"

func TestChroma_Tone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		freq float64
		want string
	}{
		{name: "A4", freq: 440, want: "A"},
		{name: "C5", freq: 523.25, want: "C"},
		{name: "E4", freq: 329.63, want: "E"},
	}

	g := NewGonum()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chroma := g.Chroma(g.STFT(sine(44100, 22050, tt.freq, 0.5)), 22050)

			var mean [12]float64
			for _, row := range chroma {
				for c, v := range row {
					mean[c] += v
				}
			}

			best := 0
			for c := range mean {
				if mean[c] > mean[best] {
					best = c
				}
			}

			if got := PitchClasses[best]; got != tt.want {
				t.Errorf("dominant pitch class = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChroma_Silence(t *testing.T) {
	t.Parallel()

	g := NewGonum()
	for _, row := range g.Chroma(g.STFT(make([]float64, 4096)), 22050) {
		for _, v := range row {
			if v != 0 {
				t.Fatal("silent chroma not zero")
			}
		}
	}
}
