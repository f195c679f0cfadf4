// SPDX-License-Identifier: EPL-2.0

package mastering_test

import (
	"fmt"

	"github.com/ik5/audproc/internal/audiotest"
	"github.com/ik5/audproc/mastering"
)

func ExampleProcessor_Master() {
	res, err := mastering.New().Master(audiotest.Silence(22050, 4096), mastering.DefaultTarget)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, line := range res.Log {
		fmt.Println(line)
	}

	// Output:
	// Measured loudness: -120.00 LUFS
	// Target loudness: -14.00 LUFS
	// Makeup gain applied: 106.00 dB
	// Soft limiter: engaged at 0.95
	// Output normalized to -0.01 dB
}
