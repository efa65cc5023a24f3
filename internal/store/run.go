package store

import (
	"errors"
	"fmt"

	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/realize"
	"github.com/roach88/ski/internal/term"
)

// Outcome classifies how a reduction ended.
type Outcome string

const (
	OutcomeNormal        Outcome = "normal"
	OutcomeDepthExceeded Outcome = "depth_exceeded"
	OutcomeMalformed     Outcome = "malformed"
)

// Run is one recorded reduction.
type Run struct {
	ID         string  `json:"id"`
	Seq        int64   `json:"seq"`
	Label      string  `json:"label"`
	InputHash  string  `json:"input_hash"`
	Input      string  `json:"input"`      // notation
	InputJSON  string  `json:"input_json"` // canonical JSON
	Outcome    Outcome `json:"outcome"`
	Result     string  `json:"result,omitempty"` // realized debug string, empty unless normal
	ResultHash string  `json:"result_hash,omitempty"`
	Error      string  `json:"error,omitempty"`
	MaxDepth   int     `json:"max_depth"`
	PeakDepth  int     `json:"peak_depth"`
	Steps      int     `json:"steps"`
}

// NewRun describes the reduction of input under maxDepth. ID and Seq are
// assigned by WriteRun; the outcome is filled in by Complete.
func NewRun(label string, input term.Term, maxDepth int) (Run, error) {
	canonical, err := term.MarshalCanonical(input)
	if err != nil {
		return Run{}, fmt.Errorf("new run %q: %w", label, err)
	}
	hash, err := term.Hash(input)
	if err != nil {
		return Run{}, fmt.Errorf("new run %q: %w", label, err)
	}
	return Run{
		Label:     label,
		InputHash: hash,
		Input:     input.String(),
		InputJSON: string(canonical),
		MaxDepth:  maxDepth,
	}, nil
}

// Complete records the result of engine.Run on r.
//
// Depth exhaustion and malformed terms are outcomes, not failures. Any other
// error is returned unchanged.
func (r *Run) Complete(res *engine.Result, err error) error {
	switch {
	case err == nil:
		if res == nil {
			return fmt.Errorf("complete run %q: missing result", r.Label)
		}
		r.Steps = res.Steps
		r.PeakDepth = res.PeakDepth

		v, rerr := realize.Realize(res.Term)
		if rerr != nil {
			r.Outcome = OutcomeMalformed
			r.Error = rerr.Error()
			return nil
		}
		hash, herr := term.Hash(res.Term)
		if herr != nil {
			return fmt.Errorf("complete run %q: %w", r.Label, herr)
		}
		r.Outcome = OutcomeNormal
		r.Result = v.String()
		r.ResultHash = hash
		return nil

	case engine.IsDepthExceeded(err):
		r.Outcome = OutcomeDepthExceeded
		r.Error = err.Error()
		var de *engine.DepthExceededError
		if errors.As(err, &de) {
			r.PeakDepth = de.Limit
		}
		return nil

	case engine.IsMalformedTerm(err), realize.IsMalformed(err):
		r.Outcome = OutcomeMalformed
		r.Error = err.Error()
		return nil

	default:
		return err
	}
}
