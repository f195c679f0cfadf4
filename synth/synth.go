// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/utils"
)

// SampleRate of every composition.
const SampleRate = 22050

const (
	attackSeconds  = 0.01
	releaseSeconds = 0.1

	melodyOctave = 4
	melodyAmp    = 0.3
	bassOctave   = 2
	bassSeconds  = 0.5
	bassAmp      = 0.2
	padAmp       = 0.1
	padPartial   = 0.25
	padFade      = 0.5
	drumPeak     = 0.5

	melodyMix = 0.4
	drumMix   = 0.3
	bassMix   = 0.25
	padMix    = 0.05
	mixPeak   = 0.95

	kneeThreshold = 0.5
	kneeRatio     = 4.0

	minDuration    = 20.0
	secondsPerWord = 2.0
)

var padFreqs = [...]float64{100, 150, 225, 300}

// Structure is the fixed section layout reported with every composition.
var Structure = []string{"Intro", "Verse", "Chorus", "Verse", "Chorus", "Bridge", "Chorus", "Outro"}

// Request describes a song to compose. Duration is capped at one hour; zero selects
// max(20, 2*words) seconds. An unknown Key falls back to the C major scale.
type Request struct {
	Lyrics   string  `json:"lyrics"   validate:"required"`
	Genre    string  `json:"genre"    validate:"oneof=pop rock edm"`
	Tempo    int     `json:"tempo"    validate:"gte=1,lte=400"`
	Key      string  `json:"key"`
	Duration float64 `json:"duration" validate:"gte=0,lte=3600"`
}

// NewRequest returns a Request for lyrics with the default genre, tempo and key.
func NewRequest(lyrics string) Request {
	return Request{Lyrics: lyrics, Genre: DefaultGenre, Tempo: DefaultTempo, Key: DefaultKey}
}

// Metadata describes a composition in the terms of its request.
type Metadata struct {
	Lyrics      string   `json:"lyrics"`
	Genre       string   `json:"genre"`
	Tempo       int      `json:"tempo"`
	Key         string   `json:"key"`
	MelodyNotes []string `json:"melody_notes"`
	Structure   []string `json:"structure"`
}

// Tracks are the unmixed parts of a composition.
type Tracks struct {
	Melody *audio.Buffer
	Drums  *audio.Buffer
	Bass   *audio.Buffer
	Pad    *audio.Buffer
}

// Composition is a finished song: the mix, its unmixed tracks and metadata.
type Composition struct {
	Metadata   Metadata      `json:"metadata"`
	SampleRate int           `json:"sample_rate"`
	Duration   float64       `json:"duration"`
	Tracks     Tracks        `json:"-"`
	Mix        *audio.Buffer `json:"-"`
}

// Synthesizer composes songs from lyrics. It is deterministic: equal
// requests give sample-identical mixes.
type Synthesizer struct {
	log      logrus.FieldLogger
	validate *validator.Validate
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Synthesizer) { s.log = log }
}

// WithValidator sets the validator for requests.
func WithValidator(v *validator.Validate) Option {
	return func(s *Synthesizer) { s.validate = v }
}

// New returns a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		log:      logrus.StandardLogger(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultDuration is max(20, 2 * number of words) seconds.
func DefaultDuration(lyrics string) float64 {
	return math.Max(minDuration, secondsPerWord*float64(len(strings.Fields(lyrics))))
}

// Compose renders melody, drums, bass and pad for req, mixes them 0.4, 0.3,
// 0.25 and 0.05, normalises the mix to a 0.95 peak and compresses samples
// above 0.5 at 4:1.
func (s *Synthesizer) Compose(req Request) (c *Composition, err error) {
	defer audio.Guard("compose", "Song composition failed", &err)

	if err := s.validate.Struct(req); err != nil {
		return nil, audio.NewError(audio.KindInvalidParameter, "compose", "Song composition failed",
			fmt.Errorf("%w: %w", audio.ErrInvalidParameter, err))
	}

	duration := req.Duration
	if duration == 0 {
		duration = DefaultDuration(req.Lyrics)
	}

	n := int(duration * SampleRate)
	if n <= 0 {
		return nil, audio.NewError(audio.KindDegenerateInput, "compose", "Song composition failed",
			fmt.Errorf("%w: %g s is shorter than one sample", audio.ErrDegenerateInput, duration))
	}

	beatSeconds := 60 / float64(req.Tempo)
	samplesPerBeat := int(beatSeconds * SampleRate)
	beats := int(duration * float64(req.Tempo) / 60)

	melody := Melody(req.Lyrics, req.Key)

	melodyTrack := make([]float64, n)
	bassTrack := make([]float64, n)
	for i, note := range melody {
		// one note every two beats
		start := 2 * i * samplesPerBeat
		addAt(melodyTrack, tone(NoteToFrequency(note, melodyOctave), 2*beatSeconds, melodyAmp, SampleRate), start)
		addAt(bassTrack, tone(NoteToFrequency(note, bassOctave), bassSeconds, bassAmp, SampleRate), start)
	}

	drums := drumTrack(req.Genre, beats, samplesPerBeat, n, SampleRate)
	pad := padTrack(n, duration)

	mix := make([]float64, n)
	for i := range mix {
		mix[i] = melodyMix*melodyTrack[i] + drumMix*drums[i] + bassMix*bassTrack[i] + padMix*pad[i]
	}
	mix = compressKnee(normalizeTo(mix, mixPeak))

	s.log.WithFields(logrus.Fields{
		"function": "Compose",
		"genre":    req.Genre,
		"tempo":    req.Tempo,
		"key":      req.Key,
		"notes":    len(melody),
		"beats":    beats,
		"duration": duration,
	}).Info("Song composed")

	return &Composition{
		Metadata: Metadata{
			Lyrics:      req.Lyrics,
			Genre:       req.Genre,
			Tempo:       req.Tempo,
			Key:         req.Key,
			MelodyNotes: melody,
			Structure:   Structure,
		},
		SampleRate: SampleRate,
		Duration:   duration,
		Tracks: Tracks{
			Melody: audio.NewBuffer(melodyTrack, SampleRate),
			Drums:  audio.NewBuffer(drums, SampleRate),
			Bass:   audio.NewBuffer(bassTrack, SampleRate),
			Pad:    audio.NewBuffer(pad, SampleRate),
		},
		Mix: audio.NewBuffer(mix, SampleRate),
	}, nil
}

// tone is a sine of the given length with a linear 10 ms attack and
// 100 ms release.
func tone(freq, seconds, amp float64, sampleRate int) []float64 {
	n := int(float64(sampleRate) * seconds)
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	step := seconds / float64(n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)*step)
	}

	attack := min(int(attackSeconds*float64(sampleRate)), n)
	for i := range attack {
		out[i] *= ramp(i, attack)
	}

	release := min(int(releaseSeconds*float64(sampleRate)), n)
	for j := range release {
		out[n-release+j] *= 1 - ramp(j, release)
	}

	return out
}

// ramp is the i-th of n evenly spaced points from 0 to 1 inclusive.
func ramp(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// padTrack sums four equal partials at 0.1 amplitude with a half second
// fade in.
func padTrack(n int, duration float64) []float64 {
	out := make([]float64, n)
	step := duration / float64(n)
	fade := min(int(padFade*SampleRate), n)

	for i := range out {
		t := float64(i) * step
		var v float64
		for _, f := range padFreqs {
			v += padPartial * math.Sin(2*math.Pi*f*t)
		}
		env := 1.0
		if i < fade {
			env = ramp(i, fade)
		}
		out[i] = v * env * padAmp
	}

	return out
}

// addAt adds src into dst starting at offset, dropping what falls past the end.
func addAt(dst, src []float64, offset int) {
	if offset >= len(dst) {
		return
	}
	for i, v := range src[:min(len(src), len(dst)-offset)] {
		dst[offset+i] += v
	}
}

// normalizeTo returns x scaled to the given peak, or x itself when silent.
func normalizeTo(x []float64, peak float64) []float64 {
	if utils.Peak(x) == 0 {
		return x
	}
	return utils.NormalizePeak(x, peak)
}

// compressKnee reduces the part of every sample above 0.5 by 4:1, keeping
// its sign.
func compressKnee(x []float64) []float64 {
	for i, v := range x {
		if a := math.Abs(v); a > kneeThreshold {
			x[i] = math.Copysign(kneeThreshold+(a-kneeThreshold)/kneeRatio, v)
		}
	}
	return x
}
