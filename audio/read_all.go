// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src, downmixing to mono, and returns the whole signal as a
// Buffer at the source's native sample rate.
//
// A read error other than io.EOF is reported as a KindDecode error; the
// partially read data is discarded.
func ReadAll(src Source, bufferSize int) (*Buffer, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	mono := NewMonoMixer(src)
	rate := mono.SampleRate()

	samples := make([]float64, 0, max(rate, bufferSize))
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		for i := range n {
			samples = append(samples, float64(buf[i]))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, NewError(KindDecode, "read", "Audio decoding failed", fmt.Errorf("%w: %w", ErrDecode, err))
		}

		if n == 0 {
			// decoders that signal the end with (0, nil)
			break
		}
	}

	return NewBuffer(samples, rate), nil
}
