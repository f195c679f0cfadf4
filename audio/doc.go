// SPDX-License-Identifier: EPL-2.0

// Package audio provides the shared audio model used by every processor.
//
// It contains:
//   - Source, Decoder and Registry: the streaming decoder contract and a
//     format registry keyed by file extension
//   - MonoMixer, which averages interleaved channels into one
//   - Buffer, a fully loaded mono waveform with its sample rate
//   - ReadAll and Resample, which turn a Source into a Buffer at the wanted rate
//   - the error taxonomy (Error, Kind and the Err* sentinels) returned at every
//     component boundary
//
// # Loading
//
// Decoders stream interleaved float32 samples. ReadAll drains a Source
// through a MonoMixer into a float64 Buffer:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src, 4096)
//
// Resample converts a Buffer to another rate with Catmull-Rom cubic
// interpolation and a one-pole anti-alias filter when downsampling:
//
//	buf = audio.Resample(buf, 22050)
//
// # Buffers
//
// Samples are float64 in [-1.0, 1.0]. Processors never modify a Buffer they
// receive; each stage allocates its output.
//
// # Errors
//
// Components return *Error values carrying a Kind, the failing operation and
// a human readable context string. Use errors.Is with the sentinels:
//
//	if errors.Is(err, audio.ErrDegenerateInput) {
//	    // empty buffer
//	}
//
// Guard recovers a panic inside a component and turns it into a
// KindProcessing error, so no stage can terminate the process.
package audio
