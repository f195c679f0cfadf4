// SPDX-License-Identifier: EPL-2.0

package analyzer_test

import (
	"fmt"

	"github.com/ik5/audproc/analyzer"
	"github.com/ik5/audproc/internal/audiotest"
)

func ExampleAnalyzer_Analyze() {
	buf := audiotest.Sine(22050, 440, 2, 0.5)

	report, err := analyzer.New().Analyze(buf)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(report.Analysis.Key)
	fmt.Println(report.Analysis.Duration)

	// Output:
	// A major
	// 2
}

func ExampleRecommend() {
	for _, r := range analyzer.Recommend(analyzer.Features{LoudnessDB: -21, DynamicRange: 0.05, SpectralCentroid: 3000}) {
		fmt.Println(r)
	}

	// Output:
	// Audio is quiet - recommend +3 to +6 dB of makeup gain
	// Even dynamics - minimal compression needed
	// Target loudness: -14 LUFS (streaming standard)
	// Dithering recommended for bit-depth reduction
}
