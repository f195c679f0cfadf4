// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"maps"
	"math"
	"slices"
	"strings"
)

const (
	concertA     = 440.0
	concertOct   = 4
	maxMelody    = 16
	DefaultKey   = "C major"
	DefaultGenre = "pop"
	DefaultTempo = 120
)

var semitones = map[string]int{
	"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4, "F": 5,
	"F#": 6, "G": 7, "G#": 8, "A": 9, "A#": 10, "B": 11,
}

// enharmonic maps flats (and E#, B#) to the sharp spelling used by semitones.
var enharmonic = map[string]string{
	"Bb": "A#", "Cb": "B", "Db": "C#", "Eb": "D#", "Fb": "E", "Gb": "F#", "Ab": "G#",
	"E#": "F", "B#": "C",
}

var scales = map[string][]string{
	"C major":  {"C", "D", "E", "F", "G", "A", "B"},
	"G major":  {"G", "A", "B", "C", "D", "E", "F#"},
	"D major":  {"D", "E", "F#", "G", "A", "B", "C#"},
	"A major":  {"A", "B", "C#", "D", "E", "F#", "G#"},
	"E major":  {"E", "F#", "G#", "A", "B", "C#", "D#"},
	"B major":  {"B", "C#", "D#", "E", "F#", "G#", "A#"},
	"F# major": {"F#", "G#", "A#", "B", "C#", "D#", "E#"},
	"C# major": {"C#", "D#", "E#", "F#", "G#", "A#", "B#"},
	"F major":  {"F", "G", "A", "Bb", "C", "D", "E"},
	"Bb major": {"Bb", "C", "D", "Eb", "F", "G", "A"},
	"Eb major": {"Eb", "F", "G", "Ab", "Bb", "C", "D"},
	"Ab major": {"Ab", "Bb", "C", "Db", "Eb", "F", "G"},
	"Db major": {"Db", "Eb", "F", "Gb", "Ab", "Bb", "C"},
	"Gb major": {"Gb", "Ab", "Bb", "Cb", "Db", "Eb", "F"},
	"Cb major": {"Cb", "Db", "Eb", "Fb", "Gb", "Ab", "Bb"},
	"A minor":  {"A", "B", "C", "D", "E", "F", "G"},
	"E minor":  {"E", "F#", "G", "A", "B", "C", "D"},
	"B minor":  {"B", "C#", "D", "E", "F#", "G", "A"},
}

// Keys lists the recognised key names in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(scales))
}

// KnownKey reports whether key has its own scale.
func KnownKey(key string) bool {
	_, ok := scales[key]
	return ok
}

// Scale returns the seven notes of key, or the C major scale for an unknown
// key. The slice is shared and must not be modified.
func Scale(key string) []string {
	if s, ok := scales[key]; ok {
		return s
	}
	return scales[DefaultKey]
}

// NoteToFrequency returns the equal-tempered frequency of note in octave,
// tuned to A4 = 440 Hz. Flats are read as their sharp equivalents and an
// unknown name is treated as C.
func NoteToFrequency(note string, octave int) float64 {
	if sharp, ok := enharmonic[note]; ok {
		note = sharp
	}

	pc, ok := semitones[note]
	if !ok {
		pc = semitones["C"]
	}

	offset := pc - semitones["A"] + 12*(octave-concertOct)
	return concertA * math.Pow(2, float64(offset)/12)
}

// Melody maps the first 16 words of lyrics to notes of key: each word picks
// the scale degree given by the sum of its code points modulo the scale
// length.
func Melody(lyrics, key string) []string {
	scale := Scale(key)
	words := strings.Fields(strings.ToLower(lyrics))
	if len(words) > maxMelody {
		words = words[:maxMelody]
	}

	melody := make([]string, len(words))
	for i, w := range words {
		var sum int
		for _, r := range w {
			sum += int(r)
		}
		melody[i] = scale[sum%len(scale)]
	}

	return melody
}
