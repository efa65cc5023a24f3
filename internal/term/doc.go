// Package term provides the SKI term algebra.
//
// This package contains the term shapes and the single-step rewrite rule only.
// It imports nothing internal; every other package builds on it.
//
// Key design constraints:
//   - Terms are immutable once constructed. Nothing in the repository mutates a node.
//   - Shapes are decided structurally. Two terms built the same way are Equal.
//   - Partial variants (K x, S x, S x y) are produced only by Rewrite, so their
//     frozen operands come from the rewrite rule and never from callers.
//   - Rewrite performs exactly one rewrite. Driving it to a resolved shape,
//     and bounding that work, is the engine's job.
package term
