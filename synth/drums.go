// SPDX-License-Identifier: EPL-2.0

package synth

// Genres with a drum pattern.
const (
	Pop  = "pop"
	Rock = "rock"
	EDM  = "edm"
)

type drumSound struct {
	freq, seconds, amp float64
}

type pattern struct {
	kick, snare     drumSound
	kickOn, snareOn func(beat int) bool
}

var patterns = map[string]pattern{
	Pop: {
		kick:    drumSound{60, 0.3, 0.5},
		snare:   drumSound{200, 0.15, 0.4},
		kickOn:  func(b int) bool { return b%4 == 0 || b%4 == 2 },
		snareOn: func(b int) bool { return b%4 == 1 || b%4 == 3 },
	},
	Rock: {
		kick:    drumSound{80, 0.4, 0.6},
		snare:   drumSound{250, 0.2, 0.5},
		kickOn:  func(int) bool { return true },
		snareOn: func(b int) bool { return b%4 == 1 },
	},
	EDM: {
		kick:    drumSound{100, 0.25, 0.7},
		kickOn:  func(int) bool { return true },
		snareOn: func(int) bool { return false },
	},
}

// Drum is a percussion voice.
type Drum int

const (
	Kick Drum = iota
	Snare
)

func (d Drum) String() string {
	if d == Snare {
		return "snare"
	}
	return "kick"
}

// Hit is one drum strike on a beat.
type Hit struct {
	Beat int
	Drum Drum
}

// DrumHits lists the strikes of genre's pattern over beats beats, kick
// before snare on a shared beat. An unknown genre has no hits.
func DrumHits(genre string, beats int) []Hit {
	p, ok := patterns[genre]
	if !ok {
		return nil
	}

	var hits []Hit
	for b := range beats {
		if p.kickOn(b) {
			hits = append(hits, Hit{Beat: b, Drum: Kick})
		}
		if p.snareOn(b) {
			hits = append(hits, Hit{Beat: b, Drum: Snare})
		}
	}

	return hits
}

// drumTrack renders the hits of genre into n samples, peak-normalised to 0.5.
func drumTrack(genre string, beats, samplesPerBeat, n, sampleRate int) []float64 {
	out := make([]float64, n)

	p, ok := patterns[genre]
	if !ok {
		return out
	}

	kick := tone(p.kick.freq, p.kick.seconds, p.kick.amp, sampleRate)
	var snare []float64
	if p.snare.seconds > 0 {
		snare = tone(p.snare.freq, p.snare.seconds, p.snare.amp, sampleRate)
	}

	for _, h := range DrumHits(genre, beats) {
		sound := kick
		if h.Drum == Snare {
			sound = snare
		}
		addAt(out, sound, h.Beat*samplesPerBeat)
	}

	return normalizeTo(out, drumPeak)
}
