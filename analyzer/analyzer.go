// SPDX-License-Identifier: EPL-2.0

package analyzer

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/dsp"
	"github.com/ik5/audproc/utils"
)

const (
	nMels          = 128
	nMFCC          = 13
	rolloffPercent = 0.85
	// acousticRefHz is the centroid at which acousticness reaches 0.
	acousticRefHz = 8000.0
	loudnessEps   = 1e-9
)

// Analyzer extracts features from a mono buffer and derives mastering advice.
type Analyzer struct {
	tk  dsp.Toolkit
	log logrus.FieldLogger
}

// Option configures a Analyzer.
type Option func(*Analyzer)

// WithToolkit replaces the gonum DSP backend.
func WithToolkit(tk dsp.Toolkit) Option {
	return func(a *Analyzer) { a.tk = tk }
}

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Analyzer) { a.log = log }
}

// New returns an Analyzer backed by dsp.Gonum unless opts say otherwise.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		tk:  dsp.NewGonum(),
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the feature set of buf and the recommendations derived
// from it. An empty buffer is a KindDegenerateInput error; silence yields
// finite floor values.
func (a *Analyzer) Analyze(buf *audio.Buffer) (report *Report, err error) {
	defer audio.Guard("analyze", "Audio analysis failed", &err)

	if err := buf.Validate(); err != nil {
		kind := audio.KindProcessing
		if errors.Is(err, audio.ErrDegenerateInput) {
			kind = audio.KindDegenerateInput
		}
		return nil, audio.NewError(kind, "analyze", "Audio analysis failed", err)
	}

	y, sr := buf.Samples, buf.SampleRate

	spec := a.tk.STFT(y)
	if spec.Frames() == 0 {
		return nil, audio.NewError(audio.KindProcessing, "analyze", "Audio analysis failed",
			fmt.Errorf("%w: empty spectrogram", audio.ErrProcessing))
	}
	mag := spec.Magnitude()
	freqs := dsp.FFTFrequencies(sr, spec.NFFT)

	onset := OnsetStrength(a.tk.MelDB(spec, sr, nMels), spec.NFFT, spec.Hop)
	bpm := EstimateTempo(onset, sr, spec.Hop)
	beats := TrackBeats(onset, bpm, sr, spec.Hop)

	a.log.WithFields(logrus.Fields{
		"function": "Analyze",
		"frames":   spec.Frames(),
		"bpm":      bpm,
		"beats":    len(beats),
	}).Debug("Rhythm estimated")

	rms := dsp.FrameRMS(y, spec.NFFT, spec.Hop)
	centroid := dsp.SpectralCentroid(mag, freqs)
	meanCentroid := stat.Mean(centroid, nil)

	danceability := 0.0
	if flux := dsp.PositiveFlux(mag); len(flux) > 0 {
		danceability = utils.Clamp(stat.Mean(flux, nil)/10, 0, 1)
	}

	f := Features{
		BPM:              utils.Round(bpm, 1),
		Key:              estimateKey(a.tk.Chroma(spec, sr)) + " major",
		Duration:         utils.Round(buf.Duration(), 2),
		LoudnessDB:       utils.Round(utils.AmplitudeToDB(stat.Mean(rms, nil), loudnessEps), 2),
		SpectralCentroid: utils.Round(meanCentroid, 1),
		DynamicRange:     utils.Round(floats.Max(rms)-floats.Min(rms), 3),
		Danceability:     utils.Round(danceability, 2),
		Acousticness:     utils.Round(utils.Clamp(1-meanCentroid/acousticRefHz, 0, 1), 2),
		Energy:           utils.Round(stat.Mean(rms, nil), 2),
		SampleRate:       sr,
		Frames:           len(y),
		Beats:            len(beats),
		SpectralRolloff:  utils.Round(stat.Mean(dsp.SpectralRolloff(mag, freqs, rolloffPercent), nil), 1),
		ZeroCrossingRate: utils.Round(stat.Mean(dsp.ZeroCrossingRate(y, spec.NFFT, spec.Hop), nil), 4),
		MFCC:             columnMeans(a.tk.MFCC(spec, sr, nMFCC)),
	}

	report = &Report{
		Analysis:        f,
		Recommendations: Recommend(f),
	}

	a.log.WithFields(logrus.Fields{
		"function": "Analyze",
		"bpm":      f.BPM,
		"key":      f.Key,
		"loudness": f.LoudnessDB,
	}).Info("Audio analysis complete")

	return report, nil
}

// estimateKey returns the pitch class with the highest mean chroma energy.
func estimateKey(chroma [][]float64) string {
	means := columnMeans(chroma)
	if len(means) == 0 {
		return dsp.PitchClasses[0]
	}
	return dsp.PitchClasses[floats.MaxIdx(means)]
}

// columnMeans averages [frame][k] across frames.
func columnMeans(m [][]float64) []float64 {
	if len(m) == 0 {
		return nil
	}

	out := make([]float64, len(m[0]))
	for _, row := range m {
		floats.Add(out, row)
	}
	floats.Scale(1/float64(len(m)), out)

	return out
}
