package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error detected while driving a reduction.
//
// Runtime errors include:
//   - Depth exceeded: the budget ran out (see also DepthExceededError)
//   - Invalid budget: a negative max depth was configured
//   - Malformed term: a nil or unknown node reached the rewrite rule
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeDepthExceeded indicates the reduction ran out of depth budget.
	ErrCodeDepthExceeded RuntimeErrorCode = "DEPTH_EXCEEDED"

	// ErrCodeInvalidBudget indicates a negative max depth.
	ErrCodeInvalidBudget RuntimeErrorCode = "INVALID_BUDGET"

	// ErrCodeMalformedTerm indicates a nil or unknown term variant.
	ErrCodeMalformedTerm RuntimeErrorCode = "MALFORMED_TERM"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidBudgetError creates a RuntimeError for a negative max depth.
func NewInvalidBudgetError(maxDepth int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidBudget,
		Message: fmt.Sprintf("max depth must be non-negative, got %d", maxDepth),
		Details: map[string]string{
			"max_depth": fmt.Sprintf("%d", maxDepth),
		},
	}
}

// NewMalformedTermError creates a RuntimeError for a term the rewrite rule
// cannot handle.
func NewMalformedTermError(function, argument string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMalformedTerm,
		Message: fmt.Sprintf("cannot rewrite %s applied to %s", function, argument),
		Details: map[string]string{
			"function": function,
			"argument": argument,
		},
	}
}

// IsInvalidBudget returns true if the error is an invalid budget error.
func IsInvalidBudget(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeInvalidBudget
	}
	return false
}

// IsMalformedTerm returns true if the error is a malformed term error.
func IsMalformedTerm(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeMalformedTerm
	}
	return false
}
