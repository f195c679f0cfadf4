// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/spf13/cobra"

	"github.com/ik5/audproc"
	"github.com/ik5/audproc/mastering"
)

type masterResult struct {
	Success bool `json:"success"`
	*mastering.Result
	OutputPath string `json:"output_path"`
}

func (a *app) masterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "master <audio> [target_lufs]",
		Short: "Bring audio to a loudness target and limit its peaks",
		Long: `The target defaults to -14 (master.target in the config file). The mastered
audio is written to master.output_path, /tmp/mastered.wav by default. Flags go
before <audio>.`,
		Example: `  audproc master song.wav -16`,
		Args:    checkArgs(cobra.RangeArgs(1, 2)),
		RunE: func(_ *cobra.Command, args []string) error {
			target := a.v.GetFloat64(keyMasterLUFS)
			if len(args) > 1 {
				var err error
				if target, err = parseFloat("target_lufs", args[1]); err != nil {
					return err
				}
			}

			buf, err := a.load(args[0])
			if err != nil {
				return err
			}

			proc := mastering.New(
				mastering.WithLogger(a.entry),
				mastering.WithValidator(a.validate),
				mastering.WithPreview(a.preview()),
			)
			res, err := proc.Master(buf, target)
			if err != nil {
				return err
			}

			path := a.v.GetString(keyMasterPath)
			if err := audproc.SaveWAV(path, res.Buffer); err != nil {
				return err
			}

			rows := [][]string{
				{"measured_loudness_lufs", ftoa(res.MeasuredLUFS)},
				{"target_loudness_lufs", ftoa(res.TargetLUFS)},
				{"makeup_gain_db", ftoa(res.MakeupGainDB)},
				{"output_path", path},
			}
			for _, line := range res.Log {
				rows = append(rows, []string{"log", line})
			}

			return a.emit(masterResult{Success: true, Result: res, OutputPath: path}, rows)
		},
	}

	// numeric arguments such as -14 follow the audio path
	cmd.Flags().SetInterspersed(false)

	return cmd
}
