// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/audproc"
)

const defaultConvertRate = 8000

type convertResult struct {
	Success    bool    `json:"success"`
	OutputPath string  `json:"output_path"`
	SampleRate int     `json:"sample_rate"`
	Duration   float64 `json:"duration"`
}

func (a *app) convertCmd() *cobra.Command {
	var rate int

	cmd := &cobra.Command{
		Use:   "convert <audio> <output.wav>",
		Short: "Decode any supported format to mono 16-bit WAV",
		Args:  checkArgs(cobra.ExactArgs(2)),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.validate.Var(rate, "gte=0"); err != nil {
				return invalidParam("convert", err)
			}

			buf, err := audproc.LoadFile(args[0], rate)
			if err != nil {
				return err
			}

			if err := audproc.SaveWAV(args[1], buf); err != nil {
				return err
			}

			a.entry.WithFields(logrus.Fields{
				"function": "convert",
				"in":       args[0],
				"out":      args[1],
				"rate":     buf.SampleRate,
			}).Info("Converted")

			return a.emit(convertResult{
				Success:    true,
				OutputPath: args[1],
				SampleRate: buf.SampleRate,
				Duration:   buf.Duration(),
			}, [][]string{
				{"output_path", args[1]},
				{"sample_rate", strconv.Itoa(buf.SampleRate)},
				{"duration", ftoa(buf.Duration())},
			})
		},
	}

	cmd.Flags().IntVar(&rate, "rate", defaultConvertRate, "output sample rate, 0 keeps the native rate")

	return cmd
}
