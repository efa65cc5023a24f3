// Package engine implements the SKI reduction engine.
//
// The engine drives term.Rewrite until a term's outermost shape is no longer
// a pending Application, or until the depth budget runs out.
//
// ARCHITECTURE:
//
// Strict Evaluation:
// Before a rewrite, both the function and the argument are resolved. Frozen
// operands of K1, S1 and S2 are therefore always resolved, and every result
// returned by Reduce is free of Application nodes.
//
// Depth Budget:
// Resolving an Application takes one unit of depth while it runs. A rewrite
// that hands back more pending work (the S2 rule) takes one unit that is held
// until the enclosing application finishes. Exceeding the budget returns a
// DepthExceededError; this is how terms without a normal form are rejected.
//
// The S2 continuation is a loop, not a recursive call, so self-application
// such as (SII)(SII) spends budget without growing the goroutine stack.
//
// Per-Call State:
// The budget and step counter live in a per-call reduction value. An Engine
// holds configuration only and is safe for concurrent use. There is no
// cancellation channel: budget exhaustion is the only way a reduction stops
// early.
package engine
