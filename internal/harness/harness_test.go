package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ski/internal/store"
)

func TestRun_Basics(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/basics.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "failed cases: %+v", result.Failed())
	require.Len(t, result.Cases, 5)

	sksk := result.Cases[2]
	assert.Equal(t, "sksk", sksk.Name)
	assert.Equal(t, "SKSK", sksk.Input)
	assert.Equal(t, "normal", sksk.Outcome)
	assert.Equal(t, 6, sksk.Steps)
	assert.Equal(t, 3, sksk.PeakDepth)

	omega := result.Cases[4]
	assert.Equal(t, "depth_exceeded", omega.Outcome)
	assert.Equal(t, 512, omega.PeakDepth)
}

func TestRun_AllScenariosPass(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios", "")
	require.NoError(t, err)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "failed cases: %+v", result.Failed())
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "every expectation is wrong",
		Cases: []Case{
			{Name: "wrong_result", Term: []any{"I", "K"}, Expect: Expect{Result: "S"}},
			{Name: "wrong_realized", Term: []any{"I", "K"}, Expect: Expect{Realized: "Identity"}},
			{Name: "unexpected_error", Term: []any{"Omega", "Omega"}, Expect: Expect{Result: "I"}},
			{Name: "missing_error", Term: []any{"I", "K"}, Expect: Expect{Error: ExpectDepthExceeded}},
			{Name: "unknown_name", Term: []any{"Nope"}, Expect: Expect{Result: "I"}},
			{Name: "bad_expected", Term: "I", Expect: Expect{Result: "Nope"}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Failed(), 6)

	msgs := make(map[string]string)
	for _, c := range result.Cases {
		require.NotEmpty(t, c.Errors, c.Name)
		msgs[c.Name] = c.Errors[0]
	}

	assert.Equal(t, "result: got K, want S", msgs["wrong_result"])
	assert.Equal(t, "realized: got Constant, want Identity", msgs["wrong_realized"])
	assert.Contains(t, msgs["unexpected_error"], "outcome: got depth_exceeded, want normal")
	assert.Equal(t, "outcome: got normal, want depth_exceeded", msgs["missing_error"])
	assert.Contains(t, msgs["unknown_name"], "unknown name")
	assert.Contains(t, msgs["bad_expected"], "result: unknown name")
}

func TestRun_MaxDepthOption(t *testing.T) {
	s := &Scenario{
		Name:        "budget",
		Description: "budget comes from the option",
		Cases: []Case{
			{Name: "sksk", Term: []any{"S", "K", "S", "K"}, Expect: Expect{Error: ExpectDepthExceeded}},
		},
	}

	result, err := Run(s, WithMaxDepth(2))
	require.NoError(t, err)
	assert.True(t, result.Pass, "failed cases: %+v", result.Failed())

	depth := 3
	s.MaxDepth = &depth
	s.Cases[0].Expect = Expect{Result: "K"}
	result, err = Run(s, WithMaxDepth(2))
	require.NoError(t, err)
	assert.True(t, result.Pass, "scenario max_depth wins over the option")
}

func TestRun_BadDefinitionsFail(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "bad.cue", `define: { K: "S" }`)

	s := &Scenario{
		Name:        "bad",
		Description: "redefines K",
		Specs:       []string{path},
		Cases:       []Case{{Name: "x", Term: "I", Expect: Expect{Result: "I"}}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestRun_DefinitionsAreScopedToScenario(t *testing.T) {
	numerals, err := LoadScenario("testdata/scenarios/numerals.yaml")
	require.NoError(t, err)
	_, err = Run(numerals)
	require.NoError(t, err)

	s := &Scenario{
		Name:        "scoped",
		Description: "Thirteen is not a builtin",
		Cases:       []Case{{Name: "x", Term: "Thirteen", Expect: Expect{Result: "I"}}},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
}

func TestRun_RecordsRunsInStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer st.Close()

	s, err := LoadScenario("testdata/scenarios/bounded.yaml")
	require.NoError(t, err)

	_, err = Run(s, WithStore(st))
	require.NoError(t, err)

	runs, err := st.ReadRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// newest first
	assert.Equal(t, "bounded/omega", runs[0].Label)
	assert.Equal(t, store.OutcomeDepthExceeded, runs[0].Outcome)
	assert.Equal(t, 5, runs[0].MaxDepth)
	assert.Equal(t, "bounded/identity", runs[2].Label)
	assert.Equal(t, store.OutcomeNormal, runs[2].Outcome)
	assert.Equal(t, "Constant", runs[2].Result)
}
