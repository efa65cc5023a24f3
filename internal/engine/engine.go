package engine

import (
	"log/slog"

	"github.com/roach88/ski/internal/term"
)

// labelWidth bounds how much of the input term appears in errors and logs.
const labelWidth = 80

// Engine reduces SKI terms under a depth budget.
//
// An Engine holds configuration only. Every reduction gets its own budget,
// so one Engine may be used from many goroutines at once.
type Engine struct {
	maxDepth int
	logger   *slog.Logger
	tracer   Tracer
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithMaxDepth sets the reduction depth budget.
//
// Default: 512 (DefaultMaxDepth)
// Use WithMaxDepth(0) to accept only terms that are already resolved.
func WithMaxDepth(maxDepth int) Option {
	return func(e *Engine) {
		e.maxDepth = maxDepth
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracer installs a callback that receives every rewrite step.
func WithTracer(t Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New creates an Engine. Options can be passed to configure it
// (e.g., WithMaxDepth).
func New(opts ...Option) *Engine {
	e := &Engine{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxDepth returns the configured depth budget.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// Result is a completed reduction.
type Result struct {
	Term      term.Term // Resolved term; contains no Application nodes
	Steps     int       // Number of rewrites performed
	PeakDepth int       // Deepest budget use
	MaxDepth  int       // Budget the reduction ran under
}

// Reduce resolves t under maxDepth. It is the one-shot form of
// New(WithMaxDepth(maxDepth)).Reduce(t).
func Reduce(t term.Term, maxDepth int) (term.Term, error) {
	return New(WithMaxDepth(maxDepth)).Reduce(t)
}

// Reduce resolves t and returns only the resulting term.
func (e *Engine) Reduce(t term.Term) (term.Term, error) {
	res, err := e.Run(t)
	if err != nil {
		return nil, err
	}
	return res.Term, nil
}

// Run resolves t and returns the term with reduction statistics.
//
// Returns DepthExceededError when the budget runs out, and RuntimeError for
// a negative budget or a malformed term.
func (e *Engine) Run(t term.Term) (*Result, error) {
	if e.maxDepth < 0 {
		return nil, NewInvalidBudgetError(e.maxDepth)
	}

	r := &reduction{
		budget: NewDepthBudget(e.maxDepth),
		label:  term.Truncate(t, labelWidth),
		tracer: e.tracer,
	}

	e.logger.Debug("reduction started",
		"term", r.label,
		"size", term.Size(t),
		"max_depth", e.maxDepth,
	)

	out, err := r.resolve(t)
	if err != nil {
		if IsDepthExceeded(err) {
			e.logger.Warn("reduction exceeded depth budget",
				"term", r.label,
				"max_depth", e.maxDepth,
				"steps", r.steps,
			)
		}
		return nil, err
	}

	res := &Result{
		Term:      out,
		Steps:     r.steps,
		PeakDepth: r.budget.Peak(),
		MaxDepth:  e.maxDepth,
	}

	e.logger.Debug("reduction finished",
		"term", r.label,
		"result", term.Truncate(out, labelWidth),
		"steps", res.Steps,
		"peak_depth", res.PeakDepth,
	)

	return res, nil
}

// reduction is the per-call state of one Run.
type reduction struct {
	budget *DepthBudget
	label  string
	tracer Tracer
	steps  int
}

// resolve returns the resolved shape of t.
// Function and argument are resolved before the rewrite (strict order), so
// every frozen operand of the result is itself resolved.
func (r *reduction) resolve(t term.Term) (term.Term, error) {
	if t == nil {
		return nil, NewMalformedTermError("<nil>", "<nil>")
	}

	app, ok := t.(*term.Application)
	if !ok {
		return r.resolveOperands(t)
	}

	if err := r.budget.Enter(r.label); err != nil {
		return nil, err
	}
	defer r.budget.Leave()

	f, err := r.resolve(app.Function())
	if err != nil {
		return nil, err
	}
	x, err := r.resolve(app.Argument())
	if err != nil {
		return nil, err
	}
	return r.apply(f, x)
}

// resolveOperands rebuilds a partial variant whose frozen operands still
// hold pending applications. Terms built through the engine never need it.
func (r *reduction) resolveOperands(t term.Term) (term.Term, error) {
	if term.IsResolved(t) {
		return t, nil
	}

	ops := term.Operands(t)
	resolved := make([]term.Term, len(ops))
	for i, op := range ops {
		v, err := r.resolve(op)
		if err != nil {
			return nil, err
		}
		resolved[i] = v
	}

	switch t.Kind() {
	case term.KindPartialConstant:
		return term.Rewrite(term.K(), resolved[0]), nil
	case term.KindPartialSubstitutor1:
		return term.Rewrite(term.S(), resolved[0]), nil
	case term.KindPartialSubstitutor2:
		return term.Rewrite(term.Rewrite(term.S(), resolved[0]), resolved[1]), nil
	default:
		return nil, NewMalformedTermError(t.String(), "")
	}
}

// apply drives the rewrite of resolved f applied to resolved x until the
// result is no longer a pending Application.
//
// The S2 rule's continuation is iterated rather than recursed. Each round
// holds one budget unit until apply returns, so a term that keeps producing
// pending work exhausts the budget instead of the stack.
func (r *reduction) apply(f, x term.Term) (term.Term, error) {
	held := 0
	defer func() {
		for ; held > 0; held-- {
			r.budget.Leave()
		}
	}()

	for {
		next := term.Rewrite(f, x)
		if next == nil {
			return nil, NewMalformedTermError(term.Truncate(f, labelWidth), term.Truncate(x, labelWidth))
		}
		r.steps++
		r.trace(f, x, next)

		pending, ok := next.(*term.Application)
		if !ok {
			return next, nil
		}

		if err := r.budget.Enter(r.label); err != nil {
			return nil, err
		}
		held++

		var err error
		if f, err = r.resolve(pending.Function()); err != nil {
			return nil, err
		}
		if x, err = r.resolve(pending.Argument()); err != nil {
			return nil, err
		}
	}
}

func (r *reduction) trace(f, x, result term.Term) {
	if r.tracer == nil {
		return
	}
	r.tracer(Step{
		Seq:      r.steps,
		Depth:    r.budget.Current(),
		Rule:     f.Kind().Symbol(),
		Function: f,
		Argument: x,
		Result:   result,
	})
}
