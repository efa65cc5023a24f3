package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders r as stable text, one line per case:
//
//	scenario=basics pass=true
//	identity outcome=normal realized=Constant pass=true
//
// Step counts and depths are left out so encoding changes that keep
// results intact do not churn golden files.
func Snapshot(r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario=%s pass=%t\n", r.Scenario, r.Pass)
	for _, c := range r.Cases {
		fmt.Fprintf(&b, "%s outcome=%s realized=%s pass=%t\n", c.Name, c.Outcome, c.Realized, c.Pass)
		for _, e := range c.Errors {
			fmt.Fprintf(&b, "  error: %s\n", e)
		}
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) error {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return err
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(result))
}
