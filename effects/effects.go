// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/dsp"
	"github.com/ik5/audproc/utils"
)

const (
	compFrame     = 2048
	compHop       = 512
	compThreshold = 0.3
	maxSmoothLen  = 51

	reverbTaps  = 5
	reverbDelay = 0.05 // seconds between taps
	reverbDecay = 0.5

	eqOrder     = 2
	eqOffsetHz  = 2000.0
	eqMinHz     = 20.0
	eqMaxBlend  = 0.3
	outputLimit = 0.95

	// DefaultPreview is the number of leading samples copied into a Result.
	DefaultPreview = 1000
)

// Params configures one run of the effects chain.
type Params struct {
	Reverb           float64 `json:"reverb"            validate:"gte=0,lte=1"`
	EQHigh           float64 `json:"eq_high"           validate:"gte=-1,lte=1"`
	CompressionRatio float64 `json:"compression_ratio" validate:"gte=1"`
	Gain             float64 `json:"gain"              validate:"gt=0"`
}

// DefaultParams leaves the signal untouched apart from a 20% reverb.
func DefaultParams() Params {
	return Params{Reverb: 0.2, CompressionRatio: 1, Gain: 1}
}

// Result is the processed signal plus the parameters that produced it.
// Preview holds only the leading samples; Buffer holds all of them.
type Result struct {
	Preview    []float64     `json:"processed_signal"`
	SampleRate int           `json:"sample_rate"`
	Duration   float64       `json:"duration"`
	Applied    Params        `json:"applied_effects"`
	Buffer     *audio.Buffer `json:"-"`
}

// Processor runs gain, compression, reverb and high-frequency EQ in that
// order, then keeps the peak at or below 0.95.
type Processor struct {
	tk       dsp.Toolkit
	log      logrus.FieldLogger
	validate *validator.Validate
	preview  int
}

// Option configures a Processor.
type Option func(*Processor)

// WithToolkit sets the DSP backend used for smoothing and filter design.
func WithToolkit(tk dsp.Toolkit) Option {
	return func(p *Processor) { p.tk = tk }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Processor) { p.log = log }
}

// WithValidator shares a validator instance with the caller.
func WithValidator(v *validator.Validate) Option {
	return func(p *Processor) { p.validate = v }
}

// WithPreview sets how many leading samples a Result carries.
func WithPreview(n int) Option {
	return func(p *Processor) { p.preview = n }
}

// New returns a Processor with the gonum toolkit and a preview of
// DefaultPreview samples.
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

// Process applies the chain described by params to buf. Stages whose
// parameter is neutral (ratio 1, reverb 0, eqHigh 0) are skipped. A failure
// to build the EQ filter skips that stage only.
func (p *Processor) Process(buf *audio.Buffer, params Params) (res *Result, err error) {
	defer audio.Guard("effects", "Effect processing failed", &err)

	if err := buf.Validate(); err != nil {
		kind := audio.KindProcessing
		if errors.Is(err, audio.ErrDegenerateInput) {
			kind = audio.KindDegenerateInput
		}
		return nil, audio.NewError(kind, "effects", "Effect processing failed", err)
	}

	if err := p.validate.Struct(params); err != nil {
		return nil, audio.NewError(audio.KindInvalidParameter, "effects", "Effect processing failed",
			fmt.Errorf("%w: %w", audio.ErrInvalidParameter, err))
	}

	y := make([]float64, buf.Len())
	for i, s := range buf.Samples {
		y[i] = s * params.Gain
	}

	if params.CompressionRatio > 1 {
		y = p.compress(y, params.CompressionRatio)
	}

	if params.Reverb > 0 {
		y = reverb(y, buf.SampleRate, params.Reverb)
	}

	if params.EQHigh != 0 {
		y = p.highShelf(y, buf.SampleRate, params.EQHigh)
	}

	if peak := utils.Peak(y); peak > outputLimit {
		y = utils.NormalizePeak(y, outputLimit)
	}

	out := audio.NewBuffer(y, buf.SampleRate)

	p.log.WithFields(logrus.Fields{
		"function": "Process",
		"samples":  out.Len(),
		"params":   fmt.Sprintf("%+v", params),
		"peak":     out.Peak(),
	}).Info("Effects applied")

	preview := make([]float64, min(p.preview, out.Len()))
	copy(preview, y)

	return &Result{
		Preview:    preview,
		SampleRate: out.SampleRate,
		Duration:   out.Duration(),
		Applied:    params,
		Buffer:     out,
	}, nil
}

// compress scales y by a gain curve derived from its smoothed RMS envelope.
func (p *Processor) compress(y []float64, ratio float64) []float64 {
	env := p.smoothEnvelope(dsp.FrameRMS(y, compFrame, compHop))

	gains := make([]float64, len(env))
	for i, r := range env {
		gains[i] = compressionGain(r, ratio)
	}

	curve := gainCurve(gains, compHop, len(y))
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] * curve[i]
	}

	return out
}

// compressionGain is 1 up to the threshold and falls off with ratio above it.
func compressionGain(rms, ratio float64) float64 {
	if rms <= compThreshold {
		return 1
	}
	return 1 / (1 + (ratio-1)*(rms-compThreshold)/(1-compThreshold))
}

// smoothEnvelope runs a Savitzky-Golay filter over env with the longest odd
// window up to 51. Envelopes too short for a window of 3 are returned as-is,
// as is env when smoothing fails.
func (p *Processor) smoothEnvelope(env []float64) []float64 {
	wl := min(maxSmoothLen, len(env))
	if wl%2 == 0 {
		wl--
	}
	if wl < 3 {
		return env
	}

	poly := 1
	if wl > 3 {
		poly = 3
	}

	smooth, err := p.tk.Smooth(env, wl, poly)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"function": "smoothEnvelope",
			"window":   wl,
			"error":    err,
		}).Debug("Envelope smoothing failed, using raw envelope")
		return env
	}

	return smooth
}

// gainCurve linearly interpolates per-frame gains anchored at multiples of
// hop to n samples. Samples past the last anchor keep the last gain.
func gainCurve(gains []float64, hop, n int) []float64 {
	curve := make([]float64, n)

	switch len(gains) {
	case 0:
		for i := range curve {
			curve[i] = 1
		}
		return curve
	case 1:
		for i := range curve {
			curve[i] = gains[0]
		}
		return curve
	}

	last := len(gains) - 1
	for i := range curve {
		k := i / hop
		if k >= last {
			curve[i] = gains[last]
			continue
		}
		frac := float64(i-k*hop) / float64(hop)
		curve[i] = gains[k] + frac*(gains[k+1]-gains[k])
	}

	return curve
}

// reverb mixes y with five echoes 50 ms apart, each half as loud as the one
// before, using wet as the echo fraction.
func reverb(y []float64, sampleRate int, wet float64) []float64 {
	delay := int(float64(sampleRate) * reverbDelay)

	tail := make([]float64, len(y))
	for i := 1; i <= reverbTaps; i++ {
		d := delay * i
		if d <= 0 || d >= len(y) {
			continue
		}
		decay := math.Pow(reverbDecay, float64(i))
		for j := d; j < len(y); j++ {
			tail[j] += y[j-d] * decay
		}
	}

	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i]*(1-wet) + tail[i]*wet
	}

	return out
}

// highShelf blends in a 2nd-order high-pass of y placed 2 kHz below
// Nyquist. The blend weight is |amount|*0.3.
func (p *Processor) highShelf(y []float64, sampleRate int, amount float64) []float64 {
	nyquist := float64(sampleRate) / 2
	cutoff := math.Max(eqMinHz, nyquist-eqOffsetHz)
	wn := utils.Clamp(cutoff/nyquist, 0.001, 0.999)

	sos, err := p.tk.Butterworth(eqOrder, wn, true)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"function": "highShelf",
			"cutoff":   cutoff,
			"error":    audio.NewError(audio.KindFilterConstruction, "butterworth", "", err),
		}).Warn("EQ filter construction failed, skipping EQ")
		return y
	}

	high := sos.Filter(y)
	strength := math.Min(math.Abs(amount), 1) * eqMaxBlend

	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i]*(1-strength) + high[i]*strength
	}

	return out
}
