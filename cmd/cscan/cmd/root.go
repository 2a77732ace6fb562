// Package cmd implements the cscan command line.
package cmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agenthands/cscan/pkg/automata"
	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/diagnostics"
	"github.com/agenthands/cscan/pkg/emitter"
	"github.com/agenthands/cscan/pkg/logging"
	"github.com/agenthands/cscan/pkg/logging/logfields"
	"github.com/agenthands/cscan/pkg/metrics"
	"github.com/agenthands/cscan/pkg/option"
	"github.com/agenthands/cscan/pkg/scanner"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "cscan")

// New creates a new cscan command.
func New() *cobra.Command {
	vp := option.NewViper()
	rootCmd := &cobra.Command{
		Use:   "cscan [flags] <file>",
		Short: "Tokenize a C-like source file",
		Long: `cscan splits a source file into classified tokens using a set of
finite automata run in lock step. Tokens are written to <file>scn unless
--output says otherwise; "-" reads standard input or writes standard output.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(vp)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := option.FromViper(vp, args[0])
			if err != nil {
				return err
			}
			return runScan(cmd, cfg)
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.String(option.ConfigFile, "", "Config file (YAML, JSON or TOML)")
	pflags.BoolP(option.Debug, "D", false, "Enable debug messages")
	pflags.String(option.LogLevel, "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	pflags.String(option.LogFile, "", "Write logs to a size rotated file instead of stderr")
	pflags.String(option.AutomataFile, "", "YAML automaton definitions to use instead of the built-in set")
	pflags.Bool(option.NoColor, false, "Disable colored output")

	flags := rootCmd.Flags()
	flags.StringP(option.Output, "o", "", `Output file (default "<file>scn")`)
	flags.StringP(option.Format, "f", emitter.Compact.String(), "Output format, one of: compact, annotated")
	flags.Int(option.MaxLexeme, scanner.DefaultMaxLexeme, "Maximum number of characters kept per token")
	flags.Int(option.MaxTokens, scanner.DefaultMaxTokens, "Maximum number of tokens kept in the token list")
	flags.Bool(option.Metrics, false, "Print scan metrics after the summary")

	if err := vp.BindPFlags(pflags); err != nil {
		panic(err)
	}
	if err := vp.BindPFlags(flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(newAutomataCmd(vp))
	return rootCmd
}

// setup reads the config file, if any, and configures logging.
func setup(vp *viper.Viper) error {
	if path := vp.GetString(option.ConfigFile); path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", path)
		}
	}
	return logging.SetupLogging(logging.Options{
		Level: vp.GetString(option.LogLevel),
		Debug: vp.GetBool(option.Debug),
		File:  vp.GetString(option.LogFile),
	})
}

// loadDefinitions returns the automata defined in path, or the built-in set
// when path is empty.
func loadDefinitions(path string) ([]*automaton.Definition, error) {
	if path == "" {
		return automata.Standard(), nil
	}
	defs, err := automata.LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		logfields.Path:  path,
		logfields.Count: len(defs),
	}).Debug("Loaded automaton definitions")
	return defs, nil
}

func runScan(cmd *cobra.Command, cfg *option.Config) error {
	defs, err := loadDefinitions(cfg.AutomataFile)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, cfg.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := createOutput(cmd, cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	bag := diagnostics.NewBag(cfg.Input)
	sink := emitter.NewEmitter(out, cfg.Format)
	opts := scanner.Options{
		MaxLexeme: cfg.MaxLexeme,
		MaxTokens: cfg.MaxTokens,
		Sink:      sink,
		Reporter:  bag,
	}

	var obs *metrics.Observer
	if cfg.Metrics {
		obs = metrics.NewObserver()
		opts.Observer = obs
		opts.Reporter = obs.Reporter(bag)
		hooks := logging.DefaultLogger.ReplaceHooks(make(logrus.LevelHooks))
		defer logging.DefaultLogger.ReplaceHooks(hooks)
		logging.DefaultLogger.AddHook(metrics.NewLoggingHook(obs))
	}

	res, err := scanner.NewScanner(defs, opts).Scan(in)
	if err != nil && !errors.Is(err, scanner.ErrEmptyInput) {
		return errors.Wrapf(err, "scanning %s", cfg.Input)
	}
	log.WithFields(logrus.Fields{
		logfields.File:  cfg.Input,
		logfields.Count: len(res.Tokens),
		logfields.Line:  res.Lines,
	}).Debug("Scan done")
	log.WithFields(logrus.Fields{
		logfields.Path:  cfg.Output,
		logfields.Count: sink.Tokens(),
		logfields.Line:  sink.Lines(),
	}).Debug("Output written")

	stderr := cmd.ErrOrStderr()
	if err := bag.Summary(stderr, !cfg.NoColor && !color.NoColor); err != nil {
		return err
	}
	if obs != nil {
		if err := metrics.Dump(stderr, obs.Registry()); err != nil {
			return err
		}
	}
	if bag.HasErrors() {
		return errors.Errorf("%s: %d error(s)", cfg.Input, bag.ErrorCount())
	}
	return nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == option.Stdio {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening input")
	}
	return f, func() { f.Close() }, nil
}

func createOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == option.Stdio {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating output file; check that its directory exists")
	}
	return f, func() {
		if err := f.Close(); err != nil {
			log.WithError(err).WithField(logfields.Path, path).Warning("Failed to close output file")
		}
	}, nil
}
