// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/internal/audiotest"
)

func ExampleReadAll() {
	// one second of stereo 440 Hz at 44.1 kHz
	src := audiotest.NewSineSource(44100, 2, 44100, 440)

	buf, err := audio.ReadAll(src, 4096)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%d samples at %d Hz, %.1f s\n", buf.Len(), buf.SampleRate, buf.Duration())
	// Output: 44100 samples at 44100 Hz, 1.0 s
}

func ExampleResample() {
	buf := audiotest.Sine(44100, 440, 1, 0.5)

	out := audio.Resample(buf, 22050)

	fmt.Println(out.Len(), out.SampleRate)
	// Output: 22050 22050
}

func ExampleError() {
	err := audio.NewError(audio.KindDegenerateInput, "analyze", "Audio analysis failed",
		fmt.Errorf("%w: empty buffer", audio.ErrDegenerateInput))

	fmt.Println(errors.Is(err, audio.ErrDegenerateInput))
	fmt.Println(audio.KindOf(err))
	fmt.Println(err)
	// Output:
	// true
	// DEGENERATE_INPUT
	// analyze: degenerate input: empty buffer
}
