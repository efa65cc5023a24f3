// Package realize turns resolved terms into inspectable runtime values.
//
// A Value carries a stable variant tag and, for partial variants, the realized
// frozen operands. Realization has no effect on reduction; it exists so a
// caller can look at an otherwise opaque result.
package realize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/ski/internal/term"
)

// Value is a realized term.
// Values are immutable; primitive values are shared singletons.
type Value struct {
	kind     term.Kind
	operands []*Value
}

var (
	identity    = &Value{kind: term.KindIdentity}
	constant    = &Value{kind: term.KindConstant}
	substitutor = &Value{kind: term.KindSubstitutor}
)

// Kind returns the variant of the realized term.
func (v *Value) Kind() term.Kind { return v.kind }

// Tag returns the stable variant name, e.g. "PartialSubstitutor1".
func (v *Value) Tag() string { return v.kind.String() }

// Operands returns the realized frozen operands. Primitives have none.
func (v *Value) Operands() []*Value {
	if len(v.operands) == 0 {
		return nil
	}
	ops := make([]*Value, len(v.operands))
	copy(ops, v.operands)
	return ops
}

// String renders the debug form, e.g.
// "PartialSubstitutor2(PartialConstant(Substitutor), Constant)".
func (v *Value) String() string {
	if len(v.operands) == 0 {
		return v.Tag()
	}
	parts := make([]string, len(v.operands))
	for i, op := range v.operands {
		parts[i] = op.String()
	}
	return v.Tag() + "(" + strings.Join(parts, ", ") + ")"
}

// Term rebuilds the term this value was realized from.
// Partial variants are rebuilt through the rewrite rule itself.
func (v *Value) Term() term.Term {
	switch v.kind {
	case term.KindIdentity:
		return term.I()
	case term.KindConstant:
		return term.K()
	case term.KindSubstitutor:
		return term.S()
	case term.KindPartialConstant:
		return term.Rewrite(term.K(), v.operands[0].Term())
	case term.KindPartialSubstitutor1:
		return term.Rewrite(term.S(), v.operands[0].Term())
	case term.KindPartialSubstitutor2:
		return term.Rewrite(term.Rewrite(term.S(), v.operands[0].Term()), v.operands[1].Term())
	default:
		return nil
	}
}

// Equal reports whether v and o realize the same shape.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.kind != o.kind || len(v.operands) != len(o.operands) {
		return false
	}
	for i := range v.operands {
		if !v.operands[i].Equal(o.operands[i]) {
			return false
		}
	}
	return true
}

// Realize converts a resolved term into a Value.
//
// Returns MalformedApplicationError if t, or any frozen operand, is nil or a
// pending Application. Terms returned by the engine never are.
func Realize(t term.Term) (*Value, error) {
	return realize(t, "term")
}

func realize(t term.Term, path string) (*Value, error) {
	if t == nil {
		return nil, &MalformedApplicationError{Path: path}
	}

	switch t.Kind() {
	case term.KindIdentity:
		return identity, nil
	case term.KindConstant:
		return constant, nil
	case term.KindSubstitutor:
		return substitutor, nil
	case term.KindPartialConstant, term.KindPartialSubstitutor1, term.KindPartialSubstitutor2:
		ops := term.Operands(t)
		v := &Value{kind: t.Kind(), operands: make([]*Value, len(ops))}
		for i, op := range ops {
			realized, err := realize(op, fmt.Sprintf("%s.operands[%d]", path, i))
			if err != nil {
				return nil, err
			}
			v.operands[i] = realized
		}
		return v, nil
	default:
		return nil, &MalformedApplicationError{Path: path, Kind: t.Kind(), Term: term.Truncate(t, 80)}
	}
}

// MalformedApplicationError reports a term shape the engine never produces.
// It signals an internal inconsistency, not bad user input.
type MalformedApplicationError struct {
	Path string    // Location of the offending node, e.g. "term.operands[1]"
	Kind term.Kind // Variant found; zero for nil
	Term string    // Rendered offending node
}

// Error implements the error interface.
func (e *MalformedApplicationError) Error() string {
	if e.Kind == 0 {
		return fmt.Sprintf("malformed application at %s: nil term", e.Path)
	}
	return fmt.Sprintf("malformed application at %s: unresolved %s %s", e.Path, e.Kind, e.Term)
}

// IsMalformed returns true if the error is a MalformedApplicationError.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var me *MalformedApplicationError
	return errors.As(err, &me)
}
