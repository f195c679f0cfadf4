// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/utils"
)

// BitDepth of files written by Encode and WriteFile.
const BitDepth = 16

// Encode writes buf as a mono 16-bit PCM WAV. Samples outside [-1,1] are clamped.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", audio.ErrEncode, buf.SampleRate)
	}

	data := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		data[i] = utils.FloatToPCM(s, BitDepth)
	}

	enc := gowav.NewEncoder(w, buf.SampleRate, BitDepth, 1, formatPCM)

	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(ib); err != nil {
		_ = enc.Close()
		return fmt.Errorf("%w: %w", audio.ErrEncode, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrEncode, err)
	}

	return nil
}

// WriteFile encodes buf to path. The file is removed again if encoding fails,
// so a failed write never leaves a truncated WAV behind.
func WriteFile(path string, buf *audio.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrEncode, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", audio.ErrEncode, cerr)
		}
		if err != nil {
			err = errors.Join(err, removeQuiet(path))
		}
	}()

	return Encode(f, buf)
}

func removeQuiet(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing partial file: %w", err)
	}
	return nil
}

// ReadFile decodes the WAV at path into a mono Buffer.
func ReadFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	defer src.Close()

	return audio.ReadAll(src, 4096)
}
