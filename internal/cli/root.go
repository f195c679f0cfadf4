// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/audproc"
	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/dsp"
	"github.com/ik5/audproc/mastering"
)

const (
	envPrefix  = "AUDPROC"
	configName = ".audproc"

	keyLogLevel    = "log_level"
	keyLogFormat   = "log_format"
	keyOutput      = "output"
	keySampleRate  = "sample_rate"
	keyPreview     = "preview_samples"
	keyKernel      = "separate.kernel"
	keyMasterPath  = "master.output_path"
	keyMasterLUFS  = "master.target"
	keySongPath    = "song.output_path"
	defaultMasterP = "/tmp/mastered.wav"
	defaultSongP   = "/tmp/generated_song.wav"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v        *viper.Viper
	validate *validator.Validate
	out      io.Writer
	errOut   io.Writer
	log      *logrus.Logger
	entry    logrus.FieldLogger
	cfgFile  string
	runID    string
}

// NewRootCmd builds the command tree. Results go to stdout, logs to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:        viper.New(),
		validate: newValidator(),
		out:      stdout,
		errOut:   stderr,
		log:      logrus.New(),
	}
	a.entry = a.log

	root := &cobra.Command{
		Use:   "audproc",
		Short: "Offline audio analysis, stem separation, effects, mastering and song synthesis",
		Long: `audproc loads an audio file (wav, mp3, ogg, aiff), downmixes it to mono and
runs one processing step on it. The result is printed as a single JSON object.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.initConfig()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return invalidParam(c.Name(), err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.audproc.yaml)")
	pf.String("log-level", "warn", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.StringP("output", "o", "json", "result format: json or table")
	pf.Int("sample-rate", 0, "resample input to this rate, 0 keeps the native rate")

	a.bind(pf, keyLogLevel, "log-level")
	a.bind(pf, keyLogFormat, "log-format")
	a.bind(pf, keyOutput, "output")
	a.bind(pf, keySampleRate, "sample-rate")

	root.AddCommand(
		a.analyzeCmd(),
		a.separateCmd(),
		a.effectsCmd(),
		a.masterCmd(),
		a.generateCmd(),
		a.convertCmd(),
	)

	return root
}

func (a *app) bind(fs *pflag.FlagSet, key, flag string) {
	if err := a.v.BindPFlag(key, fs.Lookup(flag)); err != nil {
		// only fails for a nil flag, i.e. a typo in the name
		panic(fmt.Sprintf("binding %s: %v", flag, err))
	}
}

// initConfig reads the config file and AUDPROC_* environment variables and
// sets up logging for this run.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return invalidParam("config", err)
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigName(configName)
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	a.v.SetDefault(keyPreview, 1000)
	a.v.SetDefault(keyKernel, dsp.DefaultKernel)
	a.v.SetDefault(keyMasterPath, defaultMasterP)
	a.v.SetDefault(keyMasterLUFS, mastering.DefaultTarget)
	a.v.SetDefault(keySongPath, defaultSongP)

	readErr := a.v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(readErr, &notFound) {
			return invalidParam("config", readErr)
		}
	}

	if err := a.setupLogger(); err != nil {
		return err
	}

	if err := a.validate.Var(a.v.GetString(keyOutput), "oneof=json table"); err != nil {
		return invalidParam("config", fmt.Errorf("output %q: %w", a.v.GetString(keyOutput), err))
	}
	if err := a.validate.Var(a.v.GetInt(keySampleRate), "gte=0"); err != nil {
		return invalidParam("config", fmt.Errorf("sample rate: %w", err))
	}

	if readErr == nil {
		a.entry.WithField("file", a.v.ConfigFileUsed()).Debug("Using config file")
	}

	return nil
}

func (a *app) setupLogger() error {
	level, err := logrus.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return invalidParam("config", err)
	}

	a.log.SetOutput(a.errOut)
	a.log.SetLevel(level)

	switch format := a.v.GetString(keyLogFormat); format {
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		a.log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	default:
		return invalidParam("config", fmt.Errorf("unknown log format %q", format))
	}

	a.runID = uuid.NewString()
	a.entry = a.log.WithField("run_id", a.runID)

	return nil
}

// load decodes path, resampling to the configured rate if one is set.
func (a *app) load(path string) (*audio.Buffer, error) {
	buf, err := audproc.LoadFile(path, a.v.GetInt(keySampleRate))
	if err != nil {
		return nil, err
	}

	a.entry.WithFields(logrus.Fields{
		"function":    "load",
		"path":        path,
		"samples":     buf.Len(),
		"sample_rate": buf.SampleRate,
	}).Debug("Audio loaded")

	return buf, nil
}

func (a *app) preview() int {
	return max(a.v.GetInt(keyPreview), 0)
}

// Run executes args and returns the process exit status. Any failure is
// reported on stdout as an error object.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		writeError(stdout, err)
		return 1
	}

	return 0
}

// Execute runs the command line of the current process and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
