// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// The returned audio.Source keeps the stream's channel layout and produces
// interleaved float32 samples in [-1.0, 1.0]:
//
//	f, _ := os.Open("take.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // not an Ogg Vorbis stream
//	}
//	mono := audio.NewMonoMixer(src)
//
// ReadSamples only returns whole frames; a destination shorter than one
// frame yields audio.ErrInvalidDstSize.
package vorbis
