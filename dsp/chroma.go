// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// PitchClasses names the chroma bins in order.
var PitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// chromaMinHz skips the bins below the lowest piano key, where one FFT bin
// spans several semitones.
const chromaMinHz = 27.5

// Chroma folds the power of every bin onto the pitch class nearest to its
// centre frequency, then scales each frame by its maximum. Silent frames
// stay zero.
func (g *Gonum) Chroma(s *Spectrogram, sampleRate int) [][]float64 {
	freqs := FFTFrequencies(sampleRate, s.NFFT)

	class := make([]int, len(freqs))
	for k, f := range freqs {
		if f < chromaMinHz {
			class[k] = -1
			continue
		}
		midi := int(math.Round(69 + 12*math.Log2(f/440)))
		class[k] = ((midi % 12) + 12) % 12
	}

	power := s.Power()
	out := make([][]float64, len(power))
	for t, frame := range power {
		row := make([]float64, 12)
		for k, p := range frame {
			if c := class[k]; c >= 0 {
				row[c] += p
			}
		}

		var peak float64
		for _, v := range row {
			peak = math.Max(peak, v)
		}
		if peak > 0 {
			for i := range row {
				row[i] /= peak
			}
		}
		out[t] = row
	}

	return out
}
