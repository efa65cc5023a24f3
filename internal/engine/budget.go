package engine

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth is the reduction depth budget used when none is configured.
const DefaultMaxDepth = 512

// DepthBudget tracks how deeply one reduction is nested and enforces a
// maximum depth.
//
// Each reduction has its own DepthBudget instance. A unit is taken when an
// Application starts resolving, and when a rewrite hands back a pending
// Application (the S2 rule). Units are returned when that work finishes.
//
// Self-application such as (SII)(SII) takes a unit on every round and never
// returns one, so it always hits the limit.
type DepthBudget struct {
	limit   int
	current int
	peak    int
}

// NewDepthBudget creates a budget with the given limit.
func NewDepthBudget(limit int) *DepthBudget {
	return &DepthBudget{limit: limit}
}

// Enter takes one unit of depth.
//
// Returns DepthExceededError if the limit is exceeded. label names the term
// being reduced in the error message.
func (b *DepthBudget) Enter(label string) error {
	b.current++
	if b.current > b.peak {
		b.peak = b.current
	}
	if b.current > b.limit {
		return &DepthExceededError{
			Term:  label,
			Depth: b.current,
			Limit: b.limit,
		}
	}
	return nil
}

// Leave returns one unit of depth.
func (b *DepthBudget) Leave() {
	if b.current > 0 {
		b.current--
	}
}

// Current returns the depth in use.
func (b *DepthBudget) Current() int {
	return b.current
}

// Peak returns the deepest point reached, including a failed Enter.
func (b *DepthBudget) Peak() int {
	return b.peak
}

// Limit returns the maximum depth.
func (b *DepthBudget) Limit() int {
	return b.limit
}

// DepthExceededError is returned when a reduction needs more nested rewrites
// than its budget allows. It is the expected outcome for terms with no normal
// form.
type DepthExceededError struct {
	Term  string // Rendered (possibly truncated) input term
	Depth int    // Depth that was refused
	Limit int    // Configured maximum depth
}

// Error implements the error interface.
func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("term %s has no normal form within depth budget %d (reached depth %d)",
		e.Term, e.Limit, e.Depth)
}

// IsDepthExceeded returns true if the error is a DepthExceededError or a
// RuntimeError with ErrCodeDepthExceeded.
// Uses errors.As to handle wrapped errors.
func IsDepthExceeded(err error) bool {
	var de *DepthExceededError
	if errors.As(err, &de) {
		return true
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeDepthExceeded
	}
	return false
}
