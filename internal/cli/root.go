package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/brainplay/internal/factory"
	"github.com/mcoot/brainplay/internal/middleware"
)

// Version is the release shown by --version
var Version = "1.0.0"

// appBuilder wires the application for a validated configuration
type appBuilder func(cfg *Config, logger *slog.Logger) (*factory.App, error)

func buildApp(cfg *Config, logger *slog.Logger) (*factory.App, error) {
	fc := cfg.FactoryConfig()
	fc.Logger = logger
	return factory.New(fc)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(buildApp)
}

func newRootCmd(newApp appBuilder) *cobra.Command {
	cfg, envErr := LoadConfig()
	if cfg == nil {
		cfg = &Config{}
	}

	rootCmd := &cobra.Command{
		Use:   "brainplay",
		Short: "A command-line brain training game",
		Long: `brainplay asks square and square-root questions until you reach 50 points
or quit. Correct answers score +10, wrong answers -5.

Player profiles, session summaries and round histories are kept in the data
directory (or redis) between runs.`,
		Example: `  brainplay                        # Normal mode
  brainplay --mode easy            # Easy mode
  brainplay --player "John Doe"    # Specify player name
  brainplay --history              # Show game history
  brainplay --stats                # Show player statistics`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				NewOutput(OutputText, cmd.OutOrStdout(), cmd.ErrOrStderr()).PrintError(envErr)
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				NewOutput(OutputText, cmd.OutOrStdout(), cmd.ErrOrStderr()).PrintError(err)
				return err
			}
			err := run(cmd, cfg, newApp)
			if err != nil {
				NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).PrintError(err)
			}
			return err
		},
	}
	rootCmd.SetVersionTemplate("BrainPlay {{.Version}}\n")

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "Game difficulty: easy, normal, hard (env: BRAINPLAY_MODE)")
	flags.StringVarP(&cfg.Player, "player", "p", cfg.Player, "Player name for session tracking (env: BRAINPLAY_PLAYER)")
	flags.BoolVar(&cfg.History, "history", false, "Show recent game history and exit")
	flags.BoolVar(&cfg.Stats, "stats", false, "Show player statistics and exit")
	flags.BoolVar(&cfg.Hints, "hints", cfg.Hints, "Show a hint with every question (env: BRAINPLAY_HINTS)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: BRAINPLAY_OUTPUT)")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory for the file backend (env: BRAINPLAY_DATA_DIR)")
	flags.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: file, memory, redis (env: BRAINPLAY_STORAGE)")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis backend (env: BRAINPLAY_REDIS_URL)")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Game log file, default <data-dir>/game.log (env: BRAINPLAY_LOG_FILE)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Also write log records to stderr")

	return rootCmd
}

func run(cmd *cobra.Command, cfg *Config, newApp appBuilder) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

	logger, logFile, err := openLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logFile.Close()

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("failed to start", slog.String("error", err.Error()))
		return err
	}
	defer app.Close()

	name, action := "play", middleware.Action(func(ctx context.Context) error {
		g := &game{
			app:    app,
			cfg:    cfg,
			out:    out,
			in:     newLineReader(ctx, cmd.InOrStdin()),
			logger: logger,
		}
		return g.play(ctx)
	})
	switch {
	case cfg.History:
		name, action = "history", func(ctx context.Context) error { return showHistory(ctx, app, out) }
	case cfg.Stats:
		name, action = "stats", func(ctx context.Context) error { return showStats(ctx, app, out) }
	}

	return middleware.Chain(action,
		middleware.Logging(logger, app.Clock, name),
		middleware.Recovery(logger, name),
	)(ctx)
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
