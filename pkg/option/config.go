// Package option holds the configuration of a cscan run, populated from
// viper.
package option

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/agenthands/cscan/pkg/emitter"
	"github.com/agenthands/cscan/pkg/scanner"
)

// CLI flags and config file keys
const (
	ConfigFile   = "config"
	Format       = "format"
	Output       = "output"
	AutomataFile = "automata-file"
	MaxLexeme    = "max-lexeme"
	MaxTokens    = "max-tokens"
	Debug        = "debug"
	LogLevel     = "log-level"
	LogFile      = "log-file"
	Metrics      = "metrics"
	NoColor      = "no-color"
)

const (
	// EnvPrefix is prepended to environment variable names, e.g.
	// CSCAN_MAX_TOKENS.
	EnvPrefix = "cscan"

	// OutputSuffix is appended to the input path to name the default
	// output file.
	OutputSuffix = "scn"

	// Stdio names standard input or output in place of a path.
	Stdio = "-"
)

// Config is the configuration of one scan.
type Config struct {
	Input        string
	Output       string
	Format       emitter.Format
	AutomataFile string // YAML automaton definitions, empty for the built-in set
	MaxLexeme    int
	MaxTokens    int
	Metrics      bool // print the metrics table after the summary
	NoColor      bool
}

// SetDefaults registers the default value of every key with vp.
func SetDefaults(vp *viper.Viper) {
	vp.SetDefault(Format, emitter.Compact.String())
	vp.SetDefault(MaxLexeme, scanner.DefaultMaxLexeme)
	vp.SetDefault(MaxTokens, scanner.DefaultMaxTokens)
	vp.SetDefault(LogLevel, "info")
}

// FromViper builds a Config for input from the values held by vp.
func FromViper(vp *viper.Viper, input string) (*Config, error) {
	format, err := emitter.ParseFormat(vp.GetString(Format))
	if err != nil {
		return nil, err
	}
	c := &Config{
		Input:        input,
		Output:       vp.GetString(Output),
		Format:       format,
		AutomataFile: vp.GetString(AutomataFile),
		MaxLexeme:    vp.GetInt(MaxLexeme),
		MaxTokens:    vp.GetInt(MaxTokens),
		Metrics:      vp.GetBool(Metrics),
		NoColor:      vp.GetBool(NoColor),
	}
	if c.Output == "" {
		c.Output = OutputPath(input)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values a scan cannot run with.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("no input file given")
	}
	if c.MaxLexeme <= 0 {
		return errors.Errorf("%s must be positive, got %d", MaxLexeme, c.MaxLexeme)
	}
	if c.MaxTokens <= 0 {
		return errors.Errorf("%s must be positive, got %d", MaxTokens, c.MaxTokens)
	}
	return nil
}

// OutputPath returns the default output path for input. Standard input
// is scanned to standard output.
func OutputPath(input string) string {
	if input == Stdio {
		return Stdio
	}
	return input + OutputSuffix
}

// NewViper returns a viper instance reading CSCAN_* environment variables
// with the defaults set.
func NewViper() *viper.Viper {
	vp := viper.New()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	SetDefaults(vp)
	return vp
}
