// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ik5/audproc/effects"
)

type effectsResult struct {
	Success bool `json:"success"`
	*effects.Result
}

func (a *app) effectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effects <audio> <reverb> <eq_high> <compression_ratio> <gain>",
		Short: "Apply gain, compression, reverb and high EQ",
		Long: `reverb is the wet fraction in [0,1], eq_high the high EQ amount in [-1,1],
compression_ratio is at least 1 (1 disables compression) and gain is a
positive linear factor. Flags go before <audio>.`,
		Example: `  audproc -o table effects vocals.wav 0.3 -0.5 4 1.2`,
		Args:    checkArgs(cobra.ExactArgs(5)),
		RunE: func(_ *cobra.Command, args []string) error {
			var params effects.Params
			fields := []struct {
				name string
				dst  *float64
			}{
				{"reverb", &params.Reverb},
				{"eq_high", &params.EQHigh},
				{"compression_ratio", &params.CompressionRatio},
				{"gain", &params.Gain},
			}
			for i, f := range fields {
				v, err := parseFloat(f.name, args[i+1])
				if err != nil {
					return err
				}
				*f.dst = v
			}

			buf, err := a.load(args[0])
			if err != nil {
				return err
			}

			proc := effects.New(
				effects.WithLogger(a.entry),
				effects.WithValidator(a.validate),
				effects.WithPreview(a.preview()),
			)
			res, err := proc.Process(buf, params)
			if err != nil {
				return err
			}

			return a.emit(effectsResult{Success: true, Result: res}, [][]string{
				{"reverb", ftoa(params.Reverb)},
				{"eq_high", ftoa(params.EQHigh)},
				{"compression_ratio", ftoa(params.CompressionRatio)},
				{"gain", ftoa(params.Gain)},
				{"sample_rate", strconv.Itoa(res.SampleRate)},
				{"duration", ftoa(res.Duration)},
				{"peak", ftoa(res.Buffer.Peak())},
			})
		},
	}

	// numeric arguments such as -14 follow the audio path
	cmd.Flags().SetInterspersed(false)

	return cmd
}
