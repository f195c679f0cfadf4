// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/ik5/audproc/synth"
)

const tagMusicKey = "musickey"

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation(tagMusicKey, func(fl validator.FieldLevel) bool {
		return synth.KnownKey(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// checkArgs reports positional argument errors as invalid parameters.
func checkArgs(rule cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := rule(cmd, args); err != nil {
			return invalidParam(cmd.Name(), err)
		}
		return nil
	}
}
