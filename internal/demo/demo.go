// Package demo reduces the fixed showcase terms: I K, S K S K and the
// numerals Zero through Twelve applied to I and K.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/numeral"
	"github.com/roach88/ski/internal/store"
	"github.com/roach88/ski/internal/term"
)

// Example is a named term to reduce.
type Example struct {
	Name string
	Term term.Term
}

// Examples returns the showcase in print order.
func Examples() []Example {
	examples := []Example{
		{Name: "IK", Term: term.Apply(term.I(), term.K())},
		{Name: "SKSK", Term: term.ApplyAll(term.S(), term.K(), term.S(), term.K())},
	}
	for i, name := range numeral.Names() {
		examples = append(examples, Example{
			Name: name,
			Term: numeral.Applied(numeral.MustFromInt(i), term.I(), term.K()),
		})
	}
	return examples
}

// Result is a completed example.
type Result struct {
	Example Example
	Run     store.Run
}

// Line renders the result as "<name> = <realized>".
func (r Result) Line() string {
	return fmt.Sprintf("%s = %s", r.Example.Name, r.Run.Result)
}

// ExampleError reports the example whose reduction failed.
type ExampleError struct {
	Name     string
	MaxDepth int
	Err      error
}

func (e *ExampleError) Error() string {
	return fmt.Sprintf("example %s (max depth %d): %v", e.Name, e.MaxDepth, e.Err)
}

func (e *ExampleError) Unwrap() error {
	return e.Err
}

// Run reduces every example with eng and returns the results in input order.
//
// Reductions are independent and run concurrently, at most GOMAXPROCS at a
// time. The first failure cancels the examples not yet started and is
// returned as an *ExampleError.
func Run(ctx context.Context, eng *engine.Engine, examples []Example) ([]Result, error) {
	results := make([]Result, len(examples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, ex := range examples {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			run, err := store.NewRun(ex.Name, ex.Term, eng.MaxDepth())
			if err != nil {
				return &ExampleError{Name: ex.Name, MaxDepth: eng.MaxDepth(), Err: err}
			}

			res, runErr := eng.Run(ex.Term)
			if err := run.Complete(res, runErr); err != nil {
				return &ExampleError{Name: ex.Name, MaxDepth: eng.MaxDepth(), Err: err}
			}
			if run.Outcome != store.OutcomeNormal {
				if runErr == nil {
					runErr = errors.New(run.Error)
				}
				return &ExampleError{Name: ex.Name, MaxDepth: eng.MaxDepth(), Err: runErr}
			}

			results[i] = Result{Example: ex, Run: run}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Write prints one line per result.
func Write(w io.Writer, results []Result) error {
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r.Line()); err != nil {
			return err
		}
	}
	return nil
}
