package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded by demo, reduce and test, newest first.

Examples:
  ski history --db runs.db
  ski history --db runs.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", rootOpts.DB, "SQLite database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.DB == "" {
		return fail(f, ExitCommandError, CodeInvalidInput, "--db is required", nil, nil)
	}

	st, err := openStore(opts.DB)
	if err != nil {
		return fail(f, ExitCommandError, CodeStore, "history failed", err, nil)
	}
	defer st.Close()

	runs, err := st.ReadRuns(commandContext(cmd), opts.Limit)
	if err != nil {
		return fail(f, ExitCommandError, CodeStore, "history failed", err, nil)
	}

	if f.JSON() {
		return f.Success(runs)
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		result := r.Result
		if result == "" {
			result = "-"
		}
		rows[i] = []string{
			strconv.FormatInt(r.Seq, 10),
			r.Label,
			string(r.Outcome),
			result,
			strconv.Itoa(r.Steps),
			strconv.Itoa(r.PeakDepth) + "/" + strconv.Itoa(r.MaxDepth),
		}
	}
	return f.Table([]string{"SEQ", "LABEL", "OUTCOME", "RESULT", "STEPS", "DEPTH"}, rows)
}
