package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/store"
)

// CodeNondeterministic reports a replay whose outcome differs from the record.
const CodeNondeterministic = "E_DETERMINISM"

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	DB string
	ID string // optional - specific run only
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []store.Replay `json:"runs"`
	TotalRuns        int            `json:"total_runs"`
	AllDeterministic bool           `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Reduce recorded runs again and verify determinism",
		Long: `Decode each recorded input, reduce it under its recorded budget and
compare outcome, result hash, step count and peak depth with the record.

Exit codes:
  0 - All runs are deterministic
  1 - A replay differed from its record
  2 - Command error (database not found, unknown run, etc.)

Examples:
  ski replay --db runs.db
  ski replay --db runs.db --id 0192f0c4-...
  ski replay --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", rootOpts.DB, "SQLite database path (required)")
	cmd.Flags().StringVar(&opts.ID, "id", "", "replay a specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := opts.formatter(cmd)

	if opts.DB == "" {
		return fail(f, ExitCommandError, CodeInvalidInput, "--db is required", nil, nil)
	}

	st, err := openStore(opts.DB)
	if err != nil {
		return fail(f, ExitCommandError, CodeStore, "replay failed", err, nil)
	}
	defer st.Close()

	engineOpts := []engine.Option{engine.WithLogger(opts.Logger())}

	var replays []store.Replay
	if opts.ID != "" {
		run, err := st.ReadRun(ctx, opts.ID)
		if errors.Is(err, store.ErrRunNotFound) {
			return fail(f, ExitCommandError, CodeInvalidInput, fmt.Sprintf("run %s not found", opts.ID), nil, nil)
		}
		if err != nil {
			return fail(f, ExitCommandError, CodeStore, "replay failed", err, nil)
		}
		rp, err := store.ReplayRun(run, engineOpts...)
		if err != nil {
			return fail(f, ExitCommandError, CodeInvalidInput, "replay failed", err, nil)
		}
		replays = []store.Replay{rp}
	} else {
		replays, err = st.ReplayAll(ctx, engineOpts...)
		if err != nil {
			return fail(f, ExitCommandError, CodeStore, "replay failed", err, nil)
		}
	}

	result := ReplayResult{
		Runs:             replays,
		TotalRuns:        len(replays),
		AllDeterministic: true,
	}
	for _, rp := range replays {
		if !rp.Deterministic {
			result.AllDeterministic = false
		}
	}

	if f.JSON() {
		return outputReplayJSON(f, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(f *OutputFormatter, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    CodeNondeterministic,
			Message: "determinism verification failed",
		}
	}

	if err := f.encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, rp := range result.Runs {
		status := "✓"
		if !rp.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s %d %s: %s\n", status, rp.Recorded.Seq, rp.Recorded.Label, rp.Replayed.Outcome)
		if verbose {
			fmt.Fprintf(w, "  Steps: %d\n", rp.Replayed.Steps)
			fmt.Fprintf(w, "  Peak depth: %d/%d\n", rp.Replayed.PeakDepth, rp.Replayed.MaxDepth)
		}
		for _, d := range rp.Differences {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
	fmt.Fprintln(w)

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
