package store

import (
	"context"
	"fmt"
)

// WriteRun appends run to the log and returns it with ID and Seq assigned.
//
// An empty ID is filled from the store's IDGenerator. Seq is the next value
// of the logical clock, allocated inside the insert transaction. Uses
// ON CONFLICT(id) DO NOTHING for idempotency: rewriting an existing ID
// returns the stored row unchanged.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	if run.Outcome == "" {
		return Run{}, fmt.Errorf("write run %q: outcome is required", run.Label)
	}
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, label, input_hash, input, input_json, outcome, result, result_hash, error, max_depth, peak_depth, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Seq,
		run.Label,
		run.InputHash,
		run.Input,
		run.InputJSON,
		string(run.Outcome),
		run.Result,
		run.ResultHash,
		run.Error,
		run.MaxDepth,
		run.PeakDepth,
		run.Steps,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return Run{}, fmt.Errorf("write run: rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}

	if rows == 0 {
		return s.ReadRun(ctx, run.ID)
	}
	return run, nil
}
