package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileDefinitions reads the "define" struct of a CUE value into vocab and
// returns the new names in declaration order.
//
// Each field is a name bound to an expression (see Build):
//
//	define: {
//		B:    [["S", ["K", "S"]], "K"]
//		Succ: ["S", "B"]
//	}
//
// A definition may only refer to names defined before it.
func CompileDefinitions(v cue.Value, vocab *Vocabulary) ([]string, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	defs := v.LookupPath(cue.ParsePath("define"))
	if !defs.Exists() {
		return nil, &CompileError{
			Field:   "define",
			Message: "define block is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := defs.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defined []string
	for iter.Next() {
		name := iter.Label()
		value := iter.Value()

		expr, err := decodeExpr(value)
		if err != nil {
			return nil, err
		}

		t, err := Build(expr, vocab)
		if err != nil {
			return nil, &CompileError{
				Field:   "define." + name,
				Message: err.Error(),
				Pos:     value.Pos(),
			}
		}

		if err := vocab.Define(name, t); err != nil {
			return nil, &CompileError{
				Field:   "define." + name,
				Message: err.Error(),
				Pos:     value.Pos(),
			}
		}
		defined = append(defined, name)
	}

	return defined, nil
}

// LoadDefinitions compiles a CUE definitions file into vocab.
func LoadDefinitions(path string, vocab *Vocabulary) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return CompileDefinitions(v, vocab)
}

// decodeExpr converts a concrete CUE value into a Build expression.
// Strings become names, integers numerals and lists applications.
func decodeExpr(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return n, nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var items []any
		for iter.Next() {
			item, err := decodeExpr(iter.Value())
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			return nil, &CompileError{
				Field:   "expr",
				Message: "empty application list",
				Pos:     v.Pos(),
			}
		}
		return items, nil
	default:
		return nil, &CompileError{
			Field:   "expr",
			Message: fmt.Sprintf("expression must be a name, integer or list, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
