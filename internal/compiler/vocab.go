package compiler

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/roach88/ski/internal/numeral"
	"github.com/roach88/ski/internal/term"
)

// ErrUnknownName is returned when an expression names a term the vocabulary
// does not define.
var ErrUnknownName = errors.New("unknown name")

// Vocabulary maps names to terms. Names keep their definition order.
type Vocabulary struct {
	names []string
	terms map[string]term.Term
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{terms: make(map[string]term.Term)}
}

// Builtins returns a fresh vocabulary holding the primitives, the numeral
// library and the self-application term:
//
//	I K S
//	Zero One ... Twelve
//	B (Compose) Succ Invert
//	Omega (SII)
func Builtins() *Vocabulary {
	v := NewVocabulary()
	v.mustDefine("I", term.I())
	v.mustDefine("K", term.K())
	v.mustDefine("S", term.S())
	for i, name := range numeral.Names() {
		v.mustDefine(name, numeral.MustFromInt(i))
	}
	v.mustDefine("B", numeral.Compose())
	v.mustDefine("Succ", numeral.Succ())
	v.mustDefine("Invert", numeral.Invert())
	v.mustDefine("Omega", term.ApplyAll(term.S(), term.I(), term.I()))
	return v
}

// Define adds name. Redefinition is an error.
func (v *Vocabulary) Define(name string, t term.Term) error {
	if !validName(name) {
		return fmt.Errorf("invalid name %q: must start with a letter or underscore", name)
	}
	if t == nil {
		return fmt.Errorf("define %q: nil term", name)
	}
	if _, exists := v.terms[name]; exists {
		return fmt.Errorf("define %q: name already defined", name)
	}
	v.names = append(v.names, name)
	v.terms[name] = t
	return nil
}

func (v *Vocabulary) mustDefine(name string, t term.Term) {
	if err := v.Define(name, t); err != nil {
		panic(err)
	}
}

// Lookup returns the term bound to name.
func (v *Vocabulary) Lookup(name string) (term.Term, bool) {
	t, ok := v.terms[name]
	return t, ok
}

// Names returns all defined names in definition order.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len returns the number of defined names.
func (v *Vocabulary) Len() int {
	return len(v.names)
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Build turns a structured expression into a term.
//
// An expression is one of:
//   - a string: a vocabulary name
//   - a non-negative integer: the Church numeral for it
//   - a non-empty list of expressions, applied left-associatively
//   - a term.Term, used as is
//
// Names are looked up, never parsed.
func Build(expr any, v *Vocabulary) (term.Term, error) {
	switch e := expr.(type) {
	case term.Term:
		return e, nil
	case string:
		t, ok := v.Lookup(e)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, e)
		}
		return t, nil
	case int:
		return numeral.FromInt(e)
	case int64:
		if e < 0 || e > numeral.MaxValue {
			return nil, fmt.Errorf("%w: %d not in [0, %d]", numeral.ErrOutOfRange, e, numeral.MaxValue)
		}
		return numeral.FromInt(int(e))
	case []string:
		items := make([]any, len(e))
		for i, s := range e {
			items[i] = s
		}
		return Build(items, v)
	case []any:
		if len(e) == 0 {
			return nil, fmt.Errorf("empty application list")
		}
		terms := make([]term.Term, len(e))
		for i, item := range e {
			t, err := Build(item, v)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			terms[i] = t
		}
		return term.ApplyAll(terms[0], terms[1:]...), nil
	case nil:
		return nil, fmt.Errorf("missing expression")
	default:
		return nil, fmt.Errorf("unsupported expression type %T", expr)
	}
}
