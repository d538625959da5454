// Package main is the entry point for MineSweeper.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samdwyer/minesweeper/internal/game"
	"github.com/samdwyer/minesweeper/internal/logging"
	"github.com/samdwyer/minesweeper/internal/telemetry"
	"github.com/samdwyer/minesweeper/internal/ui"
)

// options mirrors the command-line flags.
type options struct {
	seed     int64
	tui      bool
	logFile  string
	logLevel string
	name     string
}

func main() {
	// Load .env file for local development.
	// Not fatal: the variables may be set directly.
	envErr := godotenv.Load()

	if err := newRootCommand(envErr).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(envErr error) *cobra.Command {
	opts := options{
		seed:     envInt64("MINESWEEPER_SEED"),
		logFile:  os.Getenv("MINESWEEPER_LOG_FILE"),
		logLevel: os.Getenv("MINESWEEPER_LOG_LEVEL"),
	}

	cmd := &cobra.Command{
		Use:          "minesweeper",
		Short:        "Play MineSweeper in the terminal",
		Long:         "A 9x9 MineSweeper with 10 mines, played by typing commands or in a full-screen view.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, envErr)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.seed, "seed", opts.seed, "random seed for mine placement (0 picks one from the clock)")
	flags.BoolVar(&opts.tui, "tui", false, "play in the full-screen view")
	flags.StringVar(&opts.logFile, "log-file", opts.logFile, "write JSON logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&opts.name, "name", "", "player name used when none is typed")

	return cmd
}

func run(ctx context.Context, opts options, envErr error) error {
	log, closeLog, err := logging.New(logging.Options{
		File:    opts.logFile,
		Level:   opts.logLevel,
		Discard: opts.tui,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	if envErr != nil {
		log.WithError(envErr).Debug(".env file not loaded")
	}

	// Set up OTEL environment variables from our .env variables
	if !telemetry.ConfigureHoneycombEnv() {
		log.Debug("no Honeycomb API key, spans will not be accepted upstream")
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		// Game still works without telemetry
		log.WithError(err).Warn("telemetry setup failed, running without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.WithError(err).Warn("telemetry shutdown failed")
			}
		}()
	}

	cfg := game.Config{
		Seed:       opts.seed,
		PlayerName: opts.name,
	}
	g, err := game.New(cfg, os.Stdin, os.Stdout, log)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}

	if !opts.tui {
		return g.Run(ctx)
	}
	return runTUI(ctx, g, log)
}

func runTUI(ctx context.Context, g *game.Game, log logrus.FieldLogger) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}

	tui, err := g.NewTUI(screen)
	if err != nil {
		screen.Close()
		return err
	}

	log.Info("full-screen mode started")
	return tui.Run(ctx)
}

// envInt64 reads an integer environment variable, returning 0 when it is
// unset or malformed.
func envInt64(key string) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
