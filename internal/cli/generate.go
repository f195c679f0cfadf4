// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/audproc"
	"github.com/ik5/audproc/synth"
)

// songFlags is the parameter schema of the generate command.
type songFlags struct {
	Genre    string  `validate:"oneof=pop rock edm"`
	Tempo    int     `validate:"gte=1,lte=400"`
	Key      string  `validate:"musickey"`
	Duration float64 `validate:"gte=0,lte=3600"`
}

type generateResult struct {
	Success bool      `json:"success"`
	Audio   []float64 `json:"audio"`
	*synth.Composition
	AudioPath string `json:"audio_path"`
}

func (a *app) generateCmd() *cobra.Command {
	flags := songFlags{Genre: synth.DefaultGenre, Tempo: synth.DefaultTempo, Key: synth.DefaultKey}

	cmd := &cobra.Command{
		Use:   "generate <lyrics...>",
		Short: "Compose a song from lyrics",
		Long: `All positional arguments are joined into the lyrics. The song is written to
song.output_path, /tmp/generated_song.wav by default.`,
		Example: `  audproc generate "city lights are calling" --genre edm --tempo 128 --key "A minor"`,
		Args:    checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.validate.Struct(flags); err != nil {
				return invalidParam("generate", err)
			}

			lyrics := strings.TrimSpace(strings.Join(args, " "))
			s := synth.New(synth.WithLogger(a.entry), synth.WithValidator(a.validate))
			c, err := s.Compose(synth.Request{
				Lyrics:   lyrics,
				Genre:    flags.Genre,
				Tempo:    flags.Tempo,
				Key:      flags.Key,
				Duration: flags.Duration,
			})
			if err != nil {
				return err
			}

			path := a.v.GetString(keySongPath)
			if err := audproc.SaveWAV(path, c.Mix); err != nil {
				return err
			}

			preview := make([]float64, min(a.preview(), c.Mix.Len()))
			copy(preview, c.Mix.Samples)

			return a.emit(generateResult{Success: true, Audio: preview, Composition: c, AudioPath: path}, [][]string{
				{"genre", c.Metadata.Genre},
				{"tempo", strconv.Itoa(c.Metadata.Tempo)},
				{"key", c.Metadata.Key},
				{"melody_notes", strings.Join(c.Metadata.MelodyNotes, " ")},
				{"structure", strings.Join(c.Metadata.Structure, ", ")},
				{"duration", ftoa(c.Duration)},
				{"audio_path", path},
			})
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.Genre, "genre", flags.Genre, "drum pattern: pop, rock or edm")
	fs.IntVar(&flags.Tempo, "tempo", flags.Tempo, "tempo in beats per minute")
	fs.StringVar(&flags.Key, "key", flags.Key, `key, e.g. "G major" or "E minor"`)
	fs.Float64Var(&flags.Duration, "duration", 0, "length in seconds, 0 for max(20, 2 per word)")

	return cmd
}
