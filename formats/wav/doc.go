// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits with any channel count
// and returns an audio.Source producing float32 samples in [-1.0, 1.0]:
//
//	f, _ := os.Open("take.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// ReadFile is the one-call version returning a mono audio.Buffer.
//
// Encode and WriteFile store a mono audio.Buffer as 16-bit PCM. WriteFile
// removes the file again when encoding fails:
//
//	err := wav.WriteFile("/tmp/out.wav", buf)
//
// IEEE float WAV files are rejected with ErrOnlyPCMSupported.
package wav
