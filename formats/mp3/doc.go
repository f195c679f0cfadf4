// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3.
//
// The returned audio.Source always reports two channels, because go-mp3
// upmixes mono streams, and yields float32 samples in [-1.0, 1.0]. Wrap it in
// audio.NewMonoMixer, or use audio.ReadAll, to get a single channel.
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // not an MP3 stream
//	}
//	buf, err := audio.ReadAll(src, 4096)
//
// Encoding is not supported.
package mp3
