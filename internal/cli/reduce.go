package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ski/internal/compiler"
	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/store"
	"github.com/roach88/ski/internal/term"
)

// ReduceOptions holds flags for the reduce command.
type ReduceOptions struct {
	*RootOptions
	Defs  []string
	Trace bool
	DB    string
}

// ReduceResult is the JSON payload of a successful reduction.
type ReduceResult struct {
	Input     string   `json:"input"`
	Term      string   `json:"term"`
	Realized  string   `json:"realized"`
	Hash      string   `json:"hash"`
	Steps     int      `json:"steps"`
	PeakDepth int      `json:"peak_depth"`
	MaxDepth  int      `json:"max_depth"`
	Trace     []string `json:"trace,omitempty"`
}

// NewReduceCommand creates the reduce command.
func NewReduceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReduceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reduce NAME [NAME...]",
		Short: "Reduce an application of named terms",
		Long: `Apply the named terms left to right and reduce the result.

Names come from the builtin vocabulary (I, K, S, Zero..Twelve, B, Succ,
Invert, Omega) and any --defs files. A number from 0 to 4096 stands for its
Church numeral.

Exit codes:
  0 - Reduced to a value
  1 - Depth budget exhausted or malformed term
  2 - Command error (unknown name, bad definitions, database error)

Examples:
  ski reduce S K S K
  ski reduce Twelve I K --trace
  ski reduce Omega Omega --max-depth 64
  ski reduce Flip Two I K --defs defs.cue`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Defs, "defs", nil, "CUE definitions file (repeatable)")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print every rewrite step")
	cmd.Flags().StringVar(&opts.DB, "db", rootOpts.DB, "record the run in this SQLite database")

	return cmd
}

func runReduce(opts *ReduceOptions, args []string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := opts.formatter(cmd)
	label := strings.Join(args, " ")

	vocab, err := loadVocabulary(opts.Defs)
	if err != nil {
		return fail(f, ExitCommandError, CodeInvalidInput, "invalid definitions", err, nil)
	}

	input, err := compiler.Build(termExpression(args), vocab)
	if err != nil {
		return fail(f, ExitCommandError, CodeInvalidInput, fmt.Sprintf("invalid term %q", label), err, nil)
	}

	var rec engine.Recorder
	var engineOpts []engine.Option
	if opts.Trace {
		engineOpts = append(engineOpts, engine.WithTracer(rec.Record))
	}
	eng := opts.newEngine(engineOpts...)

	run, err := store.NewRun(label, input, eng.MaxDepth())
	if err != nil {
		return fail(f, ExitCommandError, CodeInvalidInput, "invalid term", err, nil)
	}

	opts.Logger().Debug("reducing", "input", label, "max_depth", eng.MaxDepth())
	res, runErr := eng.Run(input)
	if err := run.Complete(res, runErr); err != nil {
		return fail(f, ExitCommandError, reductionErrorCode(err), "reduction failed", err, nil)
	}

	if err := recordRuns(ctx, opts.DB, run); err != nil {
		return fail(f, ExitCommandError, CodeStore, "reduction failed", err, nil)
	}

	if run.Outcome != store.OutcomeNormal {
		if !f.JSON() {
			writeTrace(cmd, rec.Lines())
		}
		if runErr == nil {
			runErr = errors.New(run.Error)
		}
		details := map[string]any{"input": label, "max_depth": eng.MaxDepth(), "outcome": run.Outcome}
		return fail(f, ExitFailure, outcomeCode(run.Outcome), fmt.Sprintf("%s: %s", label, run.Outcome), runErr, details)
	}

	if f.JSON() {
		return f.Success(ReduceResult{
			Input:     label,
			Term:      res.Term.String(),
			Realized:  run.Result,
			Hash:      run.ResultHash,
			Steps:     run.Steps,
			PeakDepth: run.PeakDepth,
			MaxDepth:  eng.MaxDepth(),
			Trace:     rec.Lines(),
		})
	}

	writeTrace(cmd, rec.Lines())
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", label, run.Result)
	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "term=%s steps=%d peak_depth=%d max_depth=%d\n",
			term.Truncate(res.Term, 80), run.Steps, run.PeakDepth, eng.MaxDepth())
	}
	return nil
}

func writeTrace(cmd *cobra.Command, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}
