// SPDX-License-Identifier: EPL-2.0

package analyzer

import "fmt"

// Features are the rounded measurements reported for one buffer.
type Features struct {
	BPM              float64 `json:"bpm"`
	Key              string  `json:"key"`
	Duration         float64 `json:"duration"`
	LoudnessDB       float64 `json:"loudness_db"`
	SpectralCentroid float64 `json:"spectral_centroid"`
	DynamicRange     float64 `json:"dynamic_range"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Energy           float64 `json:"energy"`
	SampleRate       int     `json:"sample_rate"`
	// Frames is the number of samples analysed.
	Frames int `json:"frames"`
	Beats  int `json:"beats"`

	SpectralRolloff  float64   `json:"spectral_rolloff"`
	ZeroCrossingRate float64   `json:"zero_crossing_rate"`
	MFCC             []float64 `json:"mfcc,omitempty"`
}

// Report is the analysis result together with the production advice derived
// from it.
type Report struct {
	Analysis        Features `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

// Thresholds of the recommendation rules.
const (
	QuietBelowDB        = -18.0
	LoudAboveDB         = -8.0
	WideDynamicRange    = 0.3
	DarkBelowHz         = 2000.0
	BrightAboveHz       = 5000.0
	RhythmicAbove       = 0.7
	AcousticAbove       = 0.8
	StreamingTargetLUFS = -14
)

// Recommend applies the rule table to f. The order of the returned advice is
// fixed: loudness, dynamics, tone, rhythm, acoustics, then two closing notes.
func Recommend(f Features) []string {
	var recs []string

	switch {
	case f.LoudnessDB < QuietBelowDB:
		recs = append(recs, "Audio is quiet - recommend +3 to +6 dB of makeup gain")
	case f.LoudnessDB > LoudAboveDB:
		recs = append(recs, "Audio is loud - apply gentle limiting to prevent clipping")
	default:
		recs = append(recs, fmt.Sprintf("Loudness is good at %.1f dB", f.LoudnessDB))
	}

	if f.DynamicRange > WideDynamicRange {
		recs = append(recs, "High dynamic range detected - light compression (4:1 ratio) recommended")
	} else {
		recs = append(recs, "Even dynamics - minimal compression needed")
	}

	switch {
	case f.SpectralCentroid < DarkBelowHz:
		recs = append(recs, "Frequency response is dark - add high-shelf EQ at 8kHz (+2-4dB)")
	case f.SpectralCentroid > BrightAboveHz:
		recs = append(recs, "Frequency response is bright - gentle high-pass filter recommended")
	}

	if f.Danceability > RhythmicAbove {
		recs = append(recs, "High rhythmic content - ensure punchy drum processing")
	}

	if f.Acousticness > AcousticAbove {
		recs = append(recs, "Acoustic content - preserve natural room tone, use gentle processing")
	}

	return append(recs,
		fmt.Sprintf("Target loudness: %d LUFS (streaming standard)", StreamingTargetLUFS),
		"Dithering recommended for bit-depth reduction",
	)
}
