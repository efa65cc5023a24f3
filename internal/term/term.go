package term

import "strings"

// Term is a sealed interface over the SKI term shapes.
// Only Identity, Constant, Substitutor, *PartialConstant, *PartialSubstitutor1,
// *PartialSubstitutor2 and *Application implement it.
type Term interface {
	Kind() Kind
	String() string
	term() // Sealed
}

// Kind identifies a term variant.
type Kind uint8

const (
	KindIdentity Kind = iota + 1
	KindConstant
	KindSubstitutor
	KindPartialConstant
	KindPartialSubstitutor1
	KindPartialSubstitutor2
	KindApplication
)

var kindNames = map[Kind]string{
	KindIdentity:            "Identity",
	KindConstant:            "Constant",
	KindSubstitutor:         "Substitutor",
	KindPartialConstant:     "PartialConstant",
	KindPartialSubstitutor1: "PartialSubstitutor1",
	KindPartialSubstitutor2: "PartialSubstitutor2",
	KindApplication:         "Application",
}

// kindSymbols are the short rule names used in traces.
var kindSymbols = map[Kind]string{
	KindIdentity:            "I",
	KindConstant:            "K",
	KindSubstitutor:         "S",
	KindPartialConstant:     "K1",
	KindPartialSubstitutor1: "S1",
	KindPartialSubstitutor2: "S2",
	KindApplication:         "@",
}

// String returns the stable variant name, e.g. "PartialConstant".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Symbol returns the short name of the rewrite rule keyed by this kind.
func (k Kind) Symbol() string {
	if sym, ok := kindSymbols[k]; ok {
		return sym
	}
	return "?"
}

// Identity is the combinator I.
type Identity struct{}

func (Identity) term()          {}
func (Identity) Kind() Kind     { return KindIdentity }
func (Identity) String() string { return "I" }

// Constant is the combinator K.
type Constant struct{}

func (Constant) term()          {}
func (Constant) Kind() Kind     { return KindConstant }
func (Constant) String() string { return "K" }

// Substitutor is the combinator S.
type Substitutor struct{}

func (Substitutor) term()          {}
func (Substitutor) Kind() Kind     { return KindSubstitutor }
func (Substitutor) String() string { return "S" }

// PartialConstant is K applied to one argument. Applying it to anything
// yields the frozen value.
type PartialConstant struct {
	value Term
}

func (*PartialConstant) term()      {}
func (*PartialConstant) Kind() Kind { return KindPartialConstant }

// Value returns the frozen argument.
func (p *PartialConstant) Value() Term { return p.value }

func (p *PartialConstant) String() string { return "K" + wrap(p.value) }

// PartialSubstitutor1 is S applied to its first argument.
type PartialSubstitutor1 struct {
	first Term
}

func (*PartialSubstitutor1) term()      {}
func (*PartialSubstitutor1) Kind() Kind { return KindPartialSubstitutor1 }

// First returns the frozen first argument.
func (p *PartialSubstitutor1) First() Term { return p.first }

func (p *PartialSubstitutor1) String() string { return "S" + wrap(p.first) }

// PartialSubstitutor2 is S applied to two arguments.
type PartialSubstitutor2 struct {
	first  Term
	second Term
}

func (*PartialSubstitutor2) term()      {}
func (*PartialSubstitutor2) Kind() Kind { return KindPartialSubstitutor2 }

// First returns the frozen first argument.
func (p *PartialSubstitutor2) First() Term { return p.first }

// Second returns the frozen second argument.
func (p *PartialSubstitutor2) Second() Term { return p.second }

func (p *PartialSubstitutor2) String() string {
	return "S" + wrap(p.first) + wrap(p.second)
}

// Application is a pending combination of a function and an argument.
// Its shape is unknown until the engine resolves it.
type Application struct {
	fn  Term
	arg Term
}

func (*Application) term()      {}
func (*Application) Kind() Kind { return KindApplication }

// Function returns the term in function position.
func (a *Application) Function() Term { return a.fn }

// Argument returns the term in argument position.
func (a *Application) Argument() Term { return a.arg }

func (a *Application) String() string { return str(a.fn) + wrap(a.arg) }

// I returns the identity combinator.
func I() Term { return Identity{} }

// K returns the constant combinator.
func K() Term { return Constant{} }

// S returns the substitution combinator.
func S() Term { return Substitutor{} }

// Apply builds the symbolic application of f to x. It never reduces.
func Apply(f, x Term) Term {
	return &Application{fn: f, arg: x}
}

// ApplyAll applies f to each argument in turn, left-associatively:
// ApplyAll(f, a, b) is Apply(Apply(f, a), b).
func ApplyAll(f Term, args ...Term) Term {
	t := f
	for _, a := range args {
		t = Apply(t, a)
	}
	return t
}

// str renders t, tolerating nil so malformed terms can still be printed.
func str(t Term) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// wrap renders t as an argument: single-letter terms bare, everything else
// parenthesized.
func wrap(t Term) string {
	s := str(t)
	if len(s) == 1 {
		return s
	}
	return "(" + s + ")"
}

// Truncate shortens a rendered term for diagnostics.
func Truncate(t Term, max int) string {
	s := str(t)
	if max <= 0 || len(s) <= max {
		return s
	}
	var b strings.Builder
	b.WriteString(s[:max])
	b.WriteString("…")
	return b.String()
}
