package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ski/internal/compiler"
	"github.com/roach88/ski/internal/engine"
	"github.com/roach88/ski/internal/store"
	"github.com/roach88/ski/internal/term"
)

// Harness runs scenario cases against a vocabulary and an engine.
type Harness struct {
	vocab  *compiler.Vocabulary
	engine *engine.Engine
	store  *store.Store
	logger *slog.Logger
}

// Option configures a scenario run.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	store    *store.Store
	maxDepth *int
}

// WithLogger sets the logger handed to the engine.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStore records every case as a run in s.
func WithStore(s *store.Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithMaxDepth sets the budget for scenarios that do not set max_depth.
func WithMaxDepth(maxDepth int) Option {
	return func(c *config) {
		c.maxDepth = &maxDepth
	}
}

// Run executes a scenario and returns the per-case results.
//
// Execution flow:
//  1. Start from the builtin vocabulary
//  2. Load the scenario's CUE definition files in order
//  3. Reduce each case under the scenario budget
//  4. Compare outcome, result and realized form with the expectation
//
// A case that fails its expectation is reported in the Result. Only setup
// failures (unreadable or invalid definitions) return an error.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	vocab := compiler.Builtins()
	for _, spec := range scenario.Specs {
		if _, err := compiler.LoadDefinitions(spec, vocab); err != nil {
			return nil, fmt.Errorf("failed to load definitions %s: %w", spec, err)
		}
	}

	maxDepth := engine.DefaultMaxDepth
	if cfg.maxDepth != nil {
		maxDepth = *cfg.maxDepth
	}
	if scenario.MaxDepth != nil {
		maxDepth = *scenario.MaxDepth
	}

	h := &Harness{
		vocab:  vocab,
		engine: engine.New(engine.WithMaxDepth(maxDepth), engine.WithLogger(cfg.logger)),
		store:  cfg.store,
		logger: cfg.logger,
	}

	ctx := context.Background()
	result := NewResult(scenario.Name)
	for _, c := range scenario.Cases {
		cr, err := h.runCase(ctx, scenario.Name, c)
		if err != nil {
			return nil, fmt.Errorf("case %s: %w", c.Name, err)
		}
		result.Add(cr)
	}

	return result, nil
}

// runCase reduces one case. Returned errors are infrastructure failures;
// expectation mismatches land in the CaseResult.
func (h *Harness) runCase(ctx context.Context, scenarioName string, c Case) (CaseResult, error) {
	cr := CaseResult{Name: c.Name, Pass: true}

	input, err := compiler.Build(c.Term, h.vocab)
	if err != nil {
		cr.AddError(fmt.Sprintf("term: %v", err))
		return cr, nil
	}
	cr.Input = term.Truncate(input, 120)

	run, err := store.NewRun(scenarioName+"/"+c.Name, input, h.engine.MaxDepth())
	if err != nil {
		return cr, err
	}

	res, runErr := h.engine.Run(input)
	if err := run.Complete(res, runErr); err != nil {
		return cr, err
	}

	cr.Outcome = string(run.Outcome)
	cr.Realized = run.Result
	cr.Steps = run.Steps
	cr.PeakDepth = run.PeakDepth

	for _, msg := range h.checkExpectation(c.Expect, run, res) {
		cr.AddError(msg)
	}

	if h.store != nil {
		if _, err := h.store.WriteRun(ctx, run); err != nil {
			return cr, fmt.Errorf("record run: %w", err)
		}
	}

	h.logger.Debug("case finished",
		"scenario", scenarioName,
		"case", c.Name,
		"outcome", cr.Outcome,
		"pass", cr.Pass,
	)

	return cr, nil
}
