// SPDX-License-Identifier: EPL-2.0

package audproc

import (
	"fmt"
	"os"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/formats/aiff"
	"github.com/ik5/audproc/formats/mp3"
	"github.com/ik5/audproc/formats/vorbis"
	"github.com/ik5/audproc/formats/wav"
)

// DefaultBufferSize is the read size used when draining decoders.
const DefaultBufferSize = 4096

const decodeContext = "Audio decoding failed"

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

var defaultRegistry = NewRegistry()

// LoadFile decodes path into a mono buffer, picking the decoder from the file
// extension. A positive targetRate resamples the result.
//
// Every failure is an *audio.Error of KindDecode.
func LoadFile(path string, targetRate int) (*audio.Buffer, error) {
	return LoadFileWith(defaultRegistry, path, targetRate)
}

// LoadFileWith is LoadFile with the decoders of reg. A decoder that panics on
// malformed input yields a KindDecode error.
func LoadFileWith(reg *audio.Registry, path string, targetRate int) (buf *audio.Buffer, err error) {
	defer audio.GuardKind(audio.KindDecode, "load", decodeContext, &err)

	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, audio.NewError(audio.KindDecode, "load", decodeContext,
			fmt.Errorf("%w: %w: %s", audio.ErrDecode, err, path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, audio.NewError(audio.KindDecode, "load", decodeContext,
			fmt.Errorf("%w: %w", audio.ErrDecode, err))
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, audio.NewError(audio.KindDecode, "load", decodeContext,
			fmt.Errorf("%w: %w", audio.ErrDecode, err))
	}

	return Load(src, targetRate)
}

// Load drains src into a mono buffer and closes it. A panic while reading is
// reported as a KindDecode error.
func Load(src audio.Source, targetRate int) (buf *audio.Buffer, err error) {
	defer audio.GuardKind(audio.KindDecode, "read", decodeContext, &err)
	defer src.Close()

	buf, err = audio.ReadAll(src, DefaultBufferSize)
	if err != nil {
		return nil, err
	}

	if targetRate > 0 && targetRate != buf.SampleRate {
		buf = audio.Resample(buf, targetRate)
	}

	return buf, nil
}

// SaveWAV writes buf to path as 16-bit mono PCM. Failures are KindEncode errors.
func SaveWAV(path string, buf *audio.Buffer) error {
	if err := wav.WriteFile(path, buf); err != nil {
		return audio.NewError(audio.KindEncode, "save", "Audio encoding failed", err)
	}

	return nil
}
