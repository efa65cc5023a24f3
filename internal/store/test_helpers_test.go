package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/ski/internal/term"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a completed normal run for input.
func createTestRun(t *testing.T, label string, input term.Term) Run {
	t.Helper()
	run, err := NewRun(label, input, 512)
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	run.Outcome = OutcomeNormal
	run.Result = "Constant"
	run.ResultHash = term.MustHash(term.K())
	run.PeakDepth = 3
	run.Steps = 6
	return run
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
