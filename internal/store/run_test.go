package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/term"
	"github.com/roach88/ski/internal/testutil"
)

func quietEngine(maxDepth int) *engine.Engine {
	return engine.New(
		engine.WithMaxDepth(maxDepth),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestNewRun(t *testing.T) {
	in := term.ApplyAll(term.S(), term.K(), term.S(), term.K())

	run, err := NewRun("SKSK", in, 64)
	require.NoError(t, err)

	assert.Equal(t, "SKSK", run.Label)
	assert.Equal(t, "SKSK", run.Input)
	assert.Equal(t, term.MustHash(in), run.InputHash)
	assert.Contains(t, run.InputJSON, `"kind":"Application"`)
	assert.Equal(t, 64, run.MaxDepth)
	assert.Empty(t, run.ID)
	assert.Empty(t, run.Outcome)

	_, err = NewRun("nil", nil, 64)
	assert.Error(t, err)
}

func TestRunComplete_Normal(t *testing.T) {
	in := term.ApplyAll(term.S(), term.K(), term.S(), term.K())
	run, err := NewRun("SKSK", in, 512)
	require.NoError(t, err)

	res, rerr := quietEngine(512).Run(in)
	require.NoError(t, run.Complete(res, rerr))

	assert.Equal(t, OutcomeNormal, run.Outcome)
	assert.Equal(t, "Constant", run.Result)
	assert.Equal(t, term.MustHash(term.K()), run.ResultHash)
	assert.Equal(t, 6, run.Steps)
	assert.Equal(t, 3, run.PeakDepth)
	assert.Empty(t, run.Error)
}

func TestRunComplete_DepthExceeded(t *testing.T) {
	omega := term.ApplyAll(term.S(), term.I(), term.I())
	in := term.Apply(omega, omega)
	run, err := NewRun("omega", in, 16)
	require.NoError(t, err)

	res, rerr := quietEngine(16).Run(in)
	require.Error(t, rerr)
	require.NoError(t, run.Complete(res, rerr))

	assert.Equal(t, OutcomeDepthExceeded, run.Outcome)
	assert.Equal(t, 16, run.PeakDepth)
	assert.Contains(t, run.Error, "no normal form")
	assert.Empty(t, run.Result)
}

func TestRunComplete_Malformed(t *testing.T) {
	run, err := NewRun("bad", term.I(), 512)
	require.NoError(t, err)

	require.NoError(t, run.Complete(nil, engine.NewMalformedTermError("<nil>", "K")))
	assert.Equal(t, OutcomeMalformed, run.Outcome)
	assert.Contains(t, run.Error, "MALFORMED_TERM")
}

func TestRunComplete_OtherErrorsPassThrough(t *testing.T) {
	run, err := NewRun("x", term.I(), 512)
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, run.Complete(nil, fmt.Errorf("wrapped: %w", boom)), boom)
	assert.Error(t, run.Complete(nil, nil))
}

func TestWriteRun_AssignsIDAndSeq(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(testutil.NewFixedGenerator("run-1", "run-2")))
	ctx := context.Background()

	first, err := s.WriteRun(ctx, createTestRun(t, "IK", term.Apply(term.I(), term.K())))
	require.NoError(t, err)
	assert.Equal(t, "run-1", first.ID)
	assert.Equal(t, int64(1), first.Seq)

	second, err := s.WriteRun(ctx, createTestRun(t, "SKSK", term.ApplyAll(term.S(), term.K(), term.S(), term.K())))
	require.NoError(t, err)
	assert.Equal(t, "run-2", second.ID)
	assert.Equal(t, int64(2), second.Seq)
}

func TestWriteRun_DefaultsToUUIDv7(t *testing.T) {
	s := createTestStore(t)

	run, err := s.WriteRun(context.Background(), createTestRun(t, "IK", term.Apply(term.I(), term.K())))
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun(t, "IK", term.Apply(term.I(), term.K()))
	run.ID = "fixed"

	first, err := s.WriteRun(ctx, run)
	require.NoError(t, err)

	run.Label = "changed"
	again, err := s.WriteRun(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	all, err := s.ReadRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWriteRun_RequiresOutcome(t *testing.T) {
	s := createTestStore(t)

	run, err := NewRun("IK", term.Apply(term.I(), term.K()), 512)
	require.NoError(t, err)

	_, err = s.WriteRun(context.Background(), run)
	assert.ErrorContains(t, err, "outcome is required")
}

func TestReadRun_RoundTrip(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(testutil.NewFixedGenerator("run-1")))
	ctx := context.Background()

	written, err := s.WriteRun(ctx, createTestRun(t, "IK", term.Apply(term.I(), term.K())))
	require.NoError(t, err)

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, written, got)

	_, err = s.ReadRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReadRuns_NewestFirstWithLimit(t *testing.T) {
	s := createTestStore(t, WithIDGenerator(testutil.NewFixedGenerator("a", "b", "c")))
	ctx := context.Background()

	for _, label := range []string{"one", "two", "three"} {
		_, err := s.WriteRun(ctx, createTestRun(t, label, term.I()))
		require.NoError(t, err)
	}

	runs, err := s.ReadRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "three", runs[0].Label)
	assert.Equal(t, "two", runs[1].Label)

	all, err := s.ReadRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReadRuns_EmptyIsNotNil(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ReadRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestRunsForTerm(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ik := term.Apply(term.I(), term.K())
	for _, label := range []string{"first", "second"} {
		_, err := s.WriteRun(ctx, createTestRun(t, label, ik))
		require.NoError(t, err)
	}
	_, err := s.WriteRun(ctx, createTestRun(t, "other", term.S()))
	require.NoError(t, err)

	runs, err := s.RunsForTerm(ctx, term.MustHash(term.Apply(term.I(), term.K())))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "first", runs[0].Label)
	assert.Equal(t, "second", runs[1].Label)
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := g.Generate()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
