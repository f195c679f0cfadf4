// SPDX-License-Identifier: EPL-2.0

package dsp

const (
	// DefaultNFFT is the analysis frame length.
	DefaultNFFT = 2048
	// DefaultHop is the distance between frame starts.
	DefaultHop = 512
	// DefaultKernel is the median filter length used by HPSS.
	DefaultKernel = 31
)

// Toolkit is the set of spectral operations the processors are built on.
type Toolkit interface {
	// STFT returns the centred short-time Fourier transform of x.
	STFT(x []float64) *Spectrogram
	// ISTFT inverts s by weighted overlap-add, returning exactly length samples.
	ISTFT(s *Spectrogram, length int) []float64
	// HPSS splits s into harmonic and percussive parts with median filters of
	// length kernel and soft masks separated by margin.
	HPSS(s *Spectrogram, kernel int, margin float64) (harmonic, percussive *Spectrogram)
	// Chroma returns per-frame pitch-class energy, [frame][12] starting at C,
	// each frame scaled so its maximum is 1.
	Chroma(s *Spectrogram, sampleRate int) [][]float64
	// MelDB returns the mel power spectrogram in dB, [frame][mel].
	MelDB(s *Spectrogram, sampleRate, nMels int) [][]float64
	// MFCC returns the first n cepstral coefficients per frame.
	MFCC(s *Spectrogram, sampleRate, n int) [][]float64
	// Butterworth designs a digital Butterworth filter of the given order
	// with cutoff wn as a fraction of Nyquist.
	Butterworth(order int, wn float64, highpass bool) (*SOS, error)
	// Smooth applies a Savitzky-Golay filter, fitting the edges by polynomial
	// interpolation.
	Smooth(x []float64, window, poly int) ([]float64, error)
}

// Gonum is the default Toolkit, backed by gonum's FFT and linear algebra.
type Gonum struct {
	NFFT int
	Hop  int
}

var _ Toolkit = (*Gonum)(nil)

// NewGonum returns a toolkit with the default FFT size and hop.
func NewGonum() *Gonum {
	return &Gonum{NFFT: DefaultNFFT, Hop: DefaultHop}
}

func (g *Gonum) nfft() int {
	if g == nil || g.NFFT <= 0 {
		return DefaultNFFT
	}
	return g.NFFT
}

func (g *Gonum) hop() int {
	if g == nil || g.Hop <= 0 {
		return DefaultHop
	}
	return g.Hop
}
