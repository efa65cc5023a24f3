package engine

import (
	"fmt"

	"github.com/roach88/ski/internal/term"
)

// Step describes one rewrite performed during a reduction.
type Step struct {
	Seq      int       // 1-based position within the reduction
	Depth    int       // Budget depth in use when the rewrite ran
	Rule     string    // Rule symbol: I, K, K1, S, S1, S2
	Function term.Term // Resolved function term
	Argument term.Term // Resolved argument term
	Result   term.Term // Rewrite result; an Application for S2
}

// Tracer receives every rewrite step in order.
// A Tracer set on an Engine is shared by all reductions run on it.
type Tracer func(Step)

// FormatStep renders a step as a single stable line.
func FormatStep(s Step) string {
	return fmt.Sprintf("step=%d depth=%d rule=%s fn=%s arg=%s result=%s",
		s.Seq, s.Depth, s.Rule, s.Function, s.Argument, s.Result)
}

// Recorder collects steps in memory.
// Not safe for concurrent use; give each reduction its own Recorder.
type Recorder struct {
	Steps []Step
}

// Record appends s. Pass r.Record as a Tracer.
func (r *Recorder) Record(s Step) {
	r.Steps = append(r.Steps, s)
}

// Lines returns every recorded step formatted with FormatStep.
func (r *Recorder) Lines() []string {
	lines := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		lines[i] = FormatStep(s)
	}
	return lines
}
