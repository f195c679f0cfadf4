// SPDX-License-Identifier: EPL-2.0

// Package analyzer measures a mono recording and turns the measurements into
// mastering advice.
//
// Tempo comes from the autocorrelation of a mel spectral-flux onset curve,
// weighted by a log-normal prior centred on 120 BPM; beats are then placed by
// dynamic programming over the same curve. The root note is the pitch class
// with the most chroma energy and is always labelled major. Loudness,
// dynamic range and energy come from 2048-sample frame RMS; danceability
// from positive spectral flux; acousticness from the spectral centroid.
//
//	report, err := analyzer.New(analyzer.WithLogger(log)).Analyze(buf)
//	for _, r := range report.Recommendations {
//	    fmt.Println(r)
//	}
//
// All reported values are rounded, and the recommendations are derived from
// the rounded values.
package analyzer
