// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/audproc/separator"
)

type separateResult struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Stems   map[string]*separator.Stem `json:"stems"`
}

func (a *app) separateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "separate <audio> [output_dir]",
		Short: "Split audio into vocals, drums, bass and other stems",
		Long: `Writes <output_dir>/<name>/{vocals,drums,bass,other}.wav, where name is the
audio file name without extension. output_dir defaults to a "stems"
directory next to the audio file.`,
		Args: checkArgs(cobra.RangeArgs(1, 2)),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			outDir := separator.DefaultOutputDir(path)
			if len(args) > 1 {
				outDir = args[1]
			}

			buf, err := a.load(path)
			if err != nil {
				return err
			}

			sep := separator.New(
				separator.WithLogger(a.entry),
				separator.WithKernel(a.v.GetInt(keyKernel)),
			)
			set, err := sep.Separate(buf)
			if err != nil {
				return err
			}

			if err := separator.Save(set, outDir, separator.SourceName(path)); err != nil {
				return err
			}

			a.entry.WithFields(logrus.Fields{
				"function": "separate",
				"dir":      outDir,
			}).Info("Stems written")

			res := separateResult{
				Success: true,
				Message: "Stem separation completed (HPSS)",
				Stems:   make(map[string]*separator.Stem, len(separator.Names)),
			}
			var rows [][]string
			for _, st := range set.All() {
				res.Stems[st.Name] = st
				rows = append(rows, []string{st.Name, st.Path + " (" + ftoa(st.RMSDB) + " dB)"})
			}

			return a.emit(res, rows)
		},
	}
}
