package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ski/internal/config"
	"github.com/roach88/ski/internal/engine"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	MaxDepth int
	LogLevel string
	DB       string // default for commands with a --db flag

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ski CLI. cfg supplies
// the flag defaults; flags win over it.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{
		LogLevel: cfg.LogLevel,
		DB:       cfg.DB,
	}

	cmd := &cobra.Command{
		Use:           "ski",
		Short:         "ski - SKI combinator reduction",
		Long:          "Reduce S, K and I combinator terms under a depth budget and inspect the results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.MaxDepth < 0 {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid --max-depth %d: must be non-negative", opts.MaxDepth))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.MaxDepth, "max-depth", cfg.MaxDepth, "reduction depth budget")

	// Add subcommands
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewReduceCommand(opts))
	cmd.AddCommand(NewVocabCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger writes text logs to w. --verbose forces debug level.
func newLogger(w io.Writer, opts *RootOptions) *slog.Logger {
	level, err := config.ParseLevel(opts.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the command logger. Commands constructed without the root
// command (as in tests) log nothing.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

// newEngine builds an engine with the global budget and logger.
func (o *RootOptions) newEngine(opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithMaxDepth(o.MaxDepth),
		engine.WithLogger(o.Logger()),
	}
	return engine.New(append(base, opts...)...)
}

// formatter returns an OutputFormatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}
