// Package logging owns the process wide logrus logger. Packages derive a
// subsystem entry from DefaultLogger:
//
//	var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "scanner")
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogger is the base logger every subsystem logger derives from.
var DefaultLogger = InitializeDefaultLogger()

// InitializeDefaultLogger returns a logger writing text to stderr at info
// level.
func InitializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// Options configures SetupLogging.
type Options struct {
	// Level is a logrus level name. Debug overrides it.
	Level string
	Debug bool
	// File, when set, redirects logs to a size rotated file.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// SetupLogging applies opts to DefaultLogger.
func SetupLogging(opts Options) error {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", opts.Level)
		}
		level = l
	}
	if opts.Debug {
		level = logrus.DebugLevel
	}
	DefaultLogger.SetLevel(level)

	if opts.File != "" {
		DefaultLogger.SetOutput(rotatingFile(opts))
		DefaultLogger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	return nil
}

func rotatingFile(opts Options) io.Writer {
	size := opts.MaxSizeMB
	if size <= 0 {
		size = 10
	}
	backups := opts.MaxBackups
	if backups <= 0 {
		backups = 3
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    size,
		MaxBackups: backups,
	}
}
