package harness

import (
	"fmt"

	"github.com/roach88/ski/internal/compiler"
	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/store"
	"github.com/roach88/ski/internal/term"
)

// checkExpectation compares a completed run with the case expectation and
// returns one message per mismatch.
func (h *Harness) checkExpectation(e Expect, run store.Run, res *engine.Result) []string {
	var errs []string

	if e.Error != "" {
		if string(run.Outcome) != e.Error {
			errs = append(errs, fmt.Sprintf("outcome: got %s, want %s", run.Outcome, e.Error))
		}
		return errs
	}

	if run.Outcome != store.OutcomeNormal {
		return append(errs, fmt.Sprintf("outcome: got %s, want normal (%s)", run.Outcome, run.Error))
	}

	if e.Result != nil {
		if msg := h.checkResult(e.Result, res.Term); msg != "" {
			errs = append(errs, msg)
		}
	}

	if e.Realized != "" && run.Result != e.Realized {
		errs = append(errs, fmt.Sprintf("realized: got %s, want %s", run.Result, e.Realized))
	}

	return errs
}

// checkResult reduces the expected expression and compares it structurally
// with got.
func (h *Harness) checkResult(expr any, got term.Term) string {
	want, err := compiler.Build(expr, h.vocab)
	if err != nil {
		return fmt.Sprintf("result: %v", err)
	}
	want, err = h.engine.Reduce(want)
	if err != nil {
		return fmt.Sprintf("result: expected term does not reduce: %v", err)
	}
	if !term.Equal(want, got) {
		return fmt.Sprintf("result: got %s, want %s",
			term.Truncate(got, 120), term.Truncate(want, 120))
	}
	return ""
}
