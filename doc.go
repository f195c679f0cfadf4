// SPDX-License-Identifier: EPL-2.0

// Package audproc is an offline audio pipeline: analysis with mastering
// advice, stem separation, an effects chain, a loudness-targeting limiter and
// a procedural song synthesizer.
//
// This package is the I/O facade. It decodes a file by extension into a mono
// audio.Buffer and writes buffers back as 16-bit PCM WAV:
//
//	buf, err := audproc.LoadFile("take.mp3", 0)
//	if err != nil {
//	    // audio.KindOf(err) == audio.KindDecode
//	}
//
//	report, err := analyzer.New().Analyze(buf)
//
// # Supported Formats
//
//   - WAV (integer PCM, 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Processing Packages
//
// Each processor takes a Buffer and returns a result value or an
// *audio.Error; none of them panic past their boundary.
//
//   - analyzer: tempo, root note, loudness and spectral features plus a
//     rule-based list of mastering recommendations
//   - separator: vocals, drums, bass and other stems from median-filter
//     harmonic/percussive separation and band masking
//   - effects: gain, compression, reverb and high-frequency EQ
//   - mastering: makeup gain toward a loudness target and a soft limiter
//   - synth: melody, drums, bass and pad tracks built from lyrics
//
// The spectral primitives they share live behind the dsp.Toolkit interface.
//
// # Resampling
//
// LoadFile and Load take a target sample rate; 0 keeps the file's native
// rate. Resampling uses Catmull-Rom cubic interpolation (audio.Resample).
package audproc
