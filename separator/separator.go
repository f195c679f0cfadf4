// SPDX-License-Identifier: EPL-2.0

package separator

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/dsp"
	"github.com/ik5/audproc/utils"
)

const (
	// Margin separates the harmonic and percussive soft masks.
	Margin = 2.0
	// outOfBand scales bins outside a stem's passband.
	outOfBand = 0.1
	// headroom is applied on top of the joint peak when stems clip.
	headroom = 1.05
	rmsEps   = 1e-8
)

// Stem names, in output order.
const (
	Vocals = "vocals"
	Drums  = "drums"
	Bass   = "bass"
	Other  = "other"
)

var Names = [4]string{Vocals, Drums, Bass, Other}

// band is an open frequency interval in Hz.
type band struct{ lo, hi float64 }

func (b band) contains(f float64) bool { return f > b.lo && f < b.hi }

var (
	vocalBand = band{200, 4000}
	bassBand  = band{50, 200}
)

// Stem is one separated source. RMSDB is its level in dB with a floor of
// 20*log10(1e-8).
type Stem struct {
	Name     string        `json:"-"`
	Buffer   *audio.Buffer `json:"-"`
	Path     string        `json:"path,omitempty"`
	RMSDB    float64       `json:"rms_db"`
	Duration float64       `json:"duration"`
}

// StemSet holds the four stems of one source. They share the source's
// length and sample rate.
type StemSet struct {
	Vocals Stem
	Drums  Stem
	Bass   Stem
	Other  Stem
}

// All returns pointers to the stems in Names order.
func (s *StemSet) All() []*Stem {
	return []*Stem{&s.Vocals, &s.Drums, &s.Bass, &s.Other}
}

// Separator splits a mix into vocals, drums, bass and other.
type Separator struct {
	tk     dsp.Toolkit
	log    logrus.FieldLogger
	kernel int
}

// Option configures a Separator.
type Option func(*Separator)

// WithToolkit replaces the DSP backend.
func WithToolkit(tk dsp.Toolkit) Option {
	return func(s *Separator) { s.tk = tk }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Separator) { s.log = log }
}

// WithKernel sets the median filter length used for harmonic/percussive
// separation.
func WithKernel(n int) Option {
	return func(s *Separator) { s.kernel = n }
}

// New returns a Separator using dsp.DefaultKernel.
func New(opts ...Option) *Separator {
	s := &Separator{
		tk:     dsp.NewGonum(),
		log:    logrus.StandardLogger(),
		kernel: dsp.DefaultKernel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Separate runs harmonic/percussive separation on buf. The percussive part
// is the drum stem. The harmonic part is band-masked twice: bins outside
// 200-4000 Hz are scaled by 0.1 for vocals, bins outside 50-200 Hz for bass.
// Other is the residual buf - vocals - bass - drums. If any stem exceeds
// full scale, all four are divided by 1.05 times the joint peak.
func (s *Separator) Separate(buf *audio.Buffer) (set *StemSet, err error) {
	defer audio.Guard("separate", "Stem separation failed", &err)

	if err := buf.Validate(); err != nil {
		kind := audio.KindProcessing
		if errors.Is(err, audio.ErrDegenerateInput) {
			kind = audio.KindDegenerateInput
		}
		return nil, audio.NewError(kind, "separate", "Stem separation failed", err)
	}

	y, sr, n := buf.Samples, buf.SampleRate, buf.Len()

	harmSpec, percSpec := s.tk.HPSS(s.tk.STFT(y), s.kernel, Margin)
	harmonic := s.tk.ISTFT(harmSpec, n)
	drums := s.tk.ISTFT(percSpec, n)

	spec := s.tk.STFT(harmonic)
	freqs := dsp.FFTFrequencies(sr, spec.NFFT)

	vocals := s.tk.ISTFT(bandMask(spec, freqs, vocalBand), n)
	bass := s.tk.ISTFT(bandMask(spec, freqs, bassBand), n)

	other := make([]float64, n)
	for i := range other {
		other[i] = y[i] - vocals[i] - bass[i] - drums[i]
	}

	stems := [][]float64{vocals, drums, bass, other}

	var peak float64
	for _, st := range stems {
		peak = max(peak, utils.Peak(st))
	}
	if peak > 1 {
		scale := peak * headroom
		for _, st := range stems {
			for i := range st {
				st[i] /= scale
			}
		}

		s.log.WithFields(logrus.Fields{
			"function": "Separate",
			"peak":     peak,
		}).Debug("Stems rescaled to avoid clipping")
	}

	set = &StemSet{}
	for i, st := range set.All() {
		*st = newStem(Names[i], stems[i], sr)
	}

	s.log.WithFields(logrus.Fields{
		"function":  "Separate",
		"samples":   n,
		"vocals_db": set.Vocals.RMSDB,
		"drums_db":  set.Drums.RMSDB,
	}).Info("Stem separation complete")

	return set, nil
}

func newStem(name string, samples []float64, sampleRate int) Stem {
	b := audio.NewBuffer(samples, sampleRate)
	return Stem{
		Name:     name,
		Buffer:   b,
		RMSDB:    utils.AmplitudeToDB(utils.RMS(samples), rmsEps),
		Duration: b.Duration(),
	}
}

// bandMask returns a copy of spec with every bin outside b scaled by 0.1.
func bandMask(spec *dsp.Spectrogram, freqs []float64, b band) *dsp.Spectrogram {
	out := spec.Clone()
	for k, f := range freqs {
		if b.contains(f) {
			continue
		}
		for t := range out.Data {
			out.Data[t][k] *= outOfBand
		}
	}
	return out
}
