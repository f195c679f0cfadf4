// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ik5/audproc/analyzer"
)

type analyzeResult struct {
	Success bool `json:"success"`
	*analyzer.Report
}

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <audio>",
		Short: "Extract tempo, key and loudness features and suggest mastering steps",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			buf, err := a.load(args[0])
			if err != nil {
				return err
			}

			report, err := analyzer.New(analyzer.WithLogger(a.entry)).Analyze(buf)
			if err != nil {
				return err
			}

			return a.emit(analyzeResult{Success: true, Report: report}, analyzeRows(report))
		},
	}
}

func analyzeRows(r *analyzer.Report) [][]string {
	f := r.Analysis
	rows := [][]string{
		{"bpm", ftoa(f.BPM)},
		{"key", f.Key},
		{"duration", ftoa(f.Duration)},
		{"loudness_db", ftoa(f.LoudnessDB)},
		{"spectral_centroid", ftoa(f.SpectralCentroid)},
		{"dynamic_range", ftoa(f.DynamicRange)},
		{"danceability", ftoa(f.Danceability)},
		{"acousticness", ftoa(f.Acousticness)},
		{"energy", ftoa(f.Energy)},
		{"sample_rate", strconv.Itoa(f.SampleRate)},
		{"frames", strconv.Itoa(f.Frames)},
		{"beats", strconv.Itoa(f.Beats)},
	}
	for i, rec := range r.Recommendations {
		rows = append(rows, []string{"recommendation " + strconv.Itoa(i+1), rec})
	}
	return rows
}
