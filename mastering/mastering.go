// SPDX-License-Identifier: EPL-2.0

package mastering

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/dsp"
	"github.com/ik5/audproc/utils"
)

const (
	// DefaultTarget is the streaming loudness target in LUFS.
	DefaultTarget = -14.0
	// DefaultPreview is the number of leading samples copied into a Result.
	DefaultPreview = 1000

	powerEps       = 1e-12
	limitThreshold = 0.95
	limitEps       = 1e-8
	finalCeiling   = 0.99
)

// targetRule bounds the accepted loudness target.
const targetRule = "gte=-70,lte=0"

// Result reports the measured loudness, the gain applied to reach the target
// and a human-readable log of the steps taken.
type Result struct {
	MeasuredLUFS float64       `json:"measured_loudness_lufs"`
	TargetLUFS   float64       `json:"target_loudness_lufs"`
	MakeupGainDB float64       `json:"makeup_gain_db"`
	Log          []string      `json:"processing_log"`
	Preview      []float64     `json:"preview,omitempty"`
	Buffer       *audio.Buffer `json:"-"`
}

// Processor brings a buffer to a loudness target and limits its peaks.
type Processor struct {
	tk       dsp.Toolkit
	log      logrus.FieldLogger
	validate *validator.Validate
	preview  int
}

// Option configures a Processor.
type Option func(*Processor)

// WithToolkit sets the DSP backend.
func WithToolkit(tk dsp.Toolkit) Option {
	return func(p *Processor) { p.tk = tk }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Processor) { p.log = log }
}

// WithValidator sets the validator used for the target check.
func WithValidator(v *validator.Validate) Option {
	return func(p *Processor) { p.validate = v }
}

// WithPreview sets how many leading samples a Result carries.
func WithPreview(n int) Option {
	return func(p *Processor) { p.preview = n }
}

// New returns a mastering Processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		tk:       dsp.NewGonum(),
		log:      logrus.StandardLogger(),
		validate: validator.New(),
		preview:  DefaultPreview,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Measure returns the mean over STFT frames of the frame power in dB,
// 10*log10(sum |X|^2 + 1e-12). It is a loudness proxy, not ITU-R BS.1770.
func (p *Processor) Measure(buf *audio.Buffer) float64 {
	power := p.tk.STFT(buf.Samples).Power()

	frameDB := make([]float64, len(power))
	for t, frame := range power {
		frameDB[t] = utils.PowerToDB(floats.Sum(frame), powerEps)
	}

	return stat.Mean(frameDB, nil)
}

// Master applies the makeup gain target - Measure(buf), then soft-limits
// every sample above 0.95. A result still above full scale is rescaled to
// a 0.99 peak.
func (p *Processor) Master(buf *audio.Buffer, target float64) (res *Result, err error) {
	defer audio.Guard("master", "Mastering processing failed", &err)

	if err := buf.Validate(); err != nil {
		kind := audio.KindProcessing
		if errors.Is(err, audio.ErrDegenerateInput) {
			kind = audio.KindDegenerateInput
		}
		return nil, audio.NewError(kind, "master", "Mastering processing failed", err)
	}

	if err := p.validate.Var(target, targetRule); err != nil {
		return nil, audio.NewError(audio.KindInvalidParameter, "master", "Mastering processing failed",
			fmt.Errorf("%w: target %g LUFS: %w", audio.ErrInvalidParameter, target, err))
	}

	measured := p.Measure(buf)
	makeup := target - measured
	gain := utils.DBToGain(makeup)

	y := make([]float64, buf.Len())
	for i, s := range buf.Samples {
		y[i] = s * gain
	}

	limited := Limit(y, limitThreshold)
	if peak := utils.Peak(y); peak > 1 {
		y = utils.NormalizePeak(y, finalCeiling)
	}

	p.log.WithFields(logrus.Fields{
		"function": "Master",
		"measured": measured,
		"target":   target,
		"makeup":   makeup,
		"limited":  limited,
	}).Info("Mastering complete")

	out := audio.NewBuffer(y, buf.SampleRate)
	preview := make([]float64, min(p.preview, out.Len()))
	copy(preview, y)

	return &Result{
		MeasuredLUFS: measured,
		TargetLUFS:   target,
		MakeupGainDB: makeup,
		Log: []string{
			fmt.Sprintf("Measured loudness: %.2f LUFS", measured),
			fmt.Sprintf("Target loudness: %.2f LUFS", target),
			fmt.Sprintf("Makeup gain applied: %.2f dB", makeup),
			fmt.Sprintf("Soft limiter: engaged at %.2f", limitThreshold),
			"Output normalized to -0.01 dB",
		},
		Preview: preview,
		Buffer:  out,
	}, nil
}

// Limit pulls every sample of y whose magnitude exceeds threshold back to
// about threshold, keeping its sign, and returns how many were touched.
// y is modified in place.
func Limit(y []float64, threshold float64) int {
	var n int
	for i, x := range y {
		if a := math.Abs(x); a > threshold {
			y[i] = x * threshold / (a + limitEps)
			n++
		}
	}
	return n
}
