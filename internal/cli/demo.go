package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ski/internal/demo"
	"github.com/roach88/ski/internal/store"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	DB string
}

// DemoLine is one demo result in JSON output.
type DemoLine struct {
	Name      string `json:"name"`
	Realized  string `json:"realized"`
	Steps     int    `json:"steps"`
	PeakDepth int    `json:"peak_depth"`
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Reduce the showcase terms",
		Long: `Reduce I K, S K S K and the numerals Zero through Twelve applied to
I and K, printing "<name> = <realized>" for each.

Exit codes:
  0 - Every example reduced
  1 - An example exhausted the depth budget
  2 - Command error

Examples:
  ski demo
  ski demo --max-depth 64
  ski demo --db runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", rootOpts.DB, "record runs in this SQLite database")

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := opts.formatter(cmd)

	results, err := demo.Run(ctx, opts.newEngine(), demo.Examples())
	if err != nil {
		return fail(f, ExitFailure, reductionErrorCode(err), "demo failed", err, nil)
	}

	runs := make([]store.Run, len(results))
	for i, r := range results {
		runs[i] = r.Run
	}
	if err := recordRuns(ctx, opts.DB, runs...); err != nil {
		return fail(f, ExitCommandError, CodeStore, "demo failed", err, nil)
	}

	if f.JSON() {
		lines := make([]DemoLine, len(results))
		for i, r := range results {
			lines[i] = DemoLine{
				Name:      r.Example.Name,
				Realized:  r.Run.Result,
				Steps:     r.Run.Steps,
				PeakDepth: r.Run.PeakDepth,
			}
		}
		return f.Success(lines)
	}

	return demo.Write(cmd.OutOrStdout(), results)
}
