package store

import (
	"context"
	"fmt"

	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/term"
)

// Replay is the outcome of reducing a recorded run's input again.
type Replay struct {
	Recorded      Run      `json:"recorded"`
	Replayed      Run      `json:"replayed"`
	Deterministic bool     `json:"deterministic"`
	Differences   []string `json:"differences,omitempty"`
}

// ReplayRun decodes r's canonical input and reduces it again under the
// recorded budget. The replay is deterministic when outcome, result hash,
// step count and peak depth all match.
//
// opts may add a logger or tracer; any budget they set is overridden by the
// recorded one.
func ReplayRun(r Run, opts ...engine.Option) (Replay, error) {
	input, err := term.UnmarshalCanonical([]byte(r.InputJSON))
	if err != nil {
		return Replay{}, fmt.Errorf("replay run %s: %w", r.ID, err)
	}

	eng := engine.New(append(opts, engine.WithMaxDepth(r.MaxDepth))...)
	replayed, err := NewRun(r.Label, input, r.MaxDepth)
	if err != nil {
		return Replay{}, fmt.Errorf("replay run %s: %w", r.ID, err)
	}
	replayed.ID = r.ID
	replayed.Seq = r.Seq

	res, runErr := eng.Run(input)
	if err := replayed.Complete(res, runErr); err != nil {
		return Replay{}, fmt.Errorf("replay run %s: %w", r.ID, err)
	}

	diffs := compareRuns(r, replayed)
	return Replay{
		Recorded:      r,
		Replayed:      replayed,
		Deterministic: len(diffs) == 0,
		Differences:   diffs,
	}, nil
}

// ReplayAll replays every recorded run in sequence order.
func (s *Store) ReplayAll(ctx context.Context, opts ...engine.Option) ([]Replay, error) {
	runs, err := s.ReadRuns(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("replay all: %w", err)
	}

	replays := make([]Replay, 0, len(runs))
	// ReadRuns is newest first.
	for i := len(runs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rp, err := ReplayRun(runs[i], opts...)
		if err != nil {
			return nil, err
		}
		replays = append(replays, rp)
	}
	return replays, nil
}

func compareRuns(a, b Run) []string {
	var diffs []string
	if a.InputHash != b.InputHash {
		diffs = append(diffs, fmt.Sprintf("input_hash: %s != %s", a.InputHash, b.InputHash))
	}
	if a.Outcome != b.Outcome {
		diffs = append(diffs, fmt.Sprintf("outcome: %s != %s", a.Outcome, b.Outcome))
	}
	if a.ResultHash != b.ResultHash {
		diffs = append(diffs, fmt.Sprintf("result_hash: %s != %s", a.ResultHash, b.ResultHash))
	}
	if a.Steps != b.Steps {
		diffs = append(diffs, fmt.Sprintf("steps: %d != %d", a.Steps, b.Steps))
	}
	if a.PeakDepth != b.PeakDepth {
		diffs = append(diffs, fmt.Sprintf("peak_depth: %d != %d", a.PeakDepth, b.PeakDepth))
	}
	return diffs
}
