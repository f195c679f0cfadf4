// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the spectral primitives shared by the processors:
// short-time Fourier analysis and synthesis, median-filter harmonic/percussive
// separation, chroma, mel and MFCC features, Butterworth filter design and
// Savitzky-Golay smoothing.
//
// The processors depend on the Toolkit interface so tests can swap in a fake.
// Gonum is the default implementation, built on gonum.org/v1/gonum:
//
//	tk := dsp.NewGonum()
//	spec := tk.STFT(samples)      // 2048-point frames, hop 512
//	mag := spec.Magnitude()       // [frame][bin]
//	y := tk.ISTFT(spec, len(samples))
//
// Frames are centred: the signal is reflect-padded by half a frame on each
// side, so a signal of n samples yields 1 + n/hop frames. Signals too short
// to reflect are zero-padded instead.
//
// Free functions (FrameRMS, ZeroCrossingRate, SpectralCentroid,
// SpectralRolloff, FFTFrequencies, MedianFilter) need no configuration and
// are not part of the interface.
package dsp
