// Package logging builds the logrus logger shared by the game packages.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls where logs go and how much is written.
type Options struct {
	// File receives the logs when set. Stdout is reserved for the game itself.
	File string
	// Level is a logrus level name; empty means "warning".
	Level string
	// Discard drops everything unless File is set. Full-screen mode uses it so
	// log lines never land on top of the board.
	Discard bool
}

// New returns a configured logger and a closer for the log file, if any.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	closer := func() error { return nil }

	level := logrus.WarnLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, closer, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.JSONFormatter{})
		closer = f.Close
	case opts.Discard:
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return logger, closer, nil
}

// Nop returns a logger that writes nowhere, for tests and library callers.
func Nop() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
