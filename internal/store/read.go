package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun for an unknown ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, seq, label, input_hash, input, input_json, outcome, result, result_hash, error, max_depth, peak_depth, steps`

// ReadRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
//
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC, id COLLATE BINARY ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// ReadRun returns the run with the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// RunsForTerm returns every run whose input hashes to inputHash, oldest first.
func (s *Store) RunsForTerm(ctx context.Context, inputHash string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE input_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, inputHash)
	if err != nil {
		return nil, fmt.Errorf("query runs for term: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]Run, error) {
	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var outcome string
	if err := row.Scan(
		&run.ID, &run.Seq, &run.Label, &run.InputHash, &run.Input, &run.InputJSON,
		&outcome, &run.Result, &run.ResultHash, &run.Error,
		&run.MaxDepth, &run.PeakDepth, &run.Steps,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Outcome = Outcome(outcome)
	return run, nil
}
