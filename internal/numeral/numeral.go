// Package numeral builds Church numerals from S, K and I.
//
// A numeral n applied to f and then x reduces to f applied n times to x.
// Every term here is an unreduced expression over the primitives; nothing in
// this package reduces anything.
package numeral

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/roach88/ski/internal/term"
)

// MaxValue is the largest numeral FromInt builds. The term for n holds n
// successor applications, and numerals well below this limit already need
// more than the default depth budget to reduce.
const MaxValue = 4096

// ErrOutOfRange is returned by FromInt for a negative n or one above
// MaxValue.
var ErrOutOfRange = errors.New("numeral out of range")

var names = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six",
	"Seven", "Eight", "Nine", "Ten", "Eleven", "Twelve",
}

// Zero is K I: applied to f it discards f and leaves I, so x comes back unchanged.
func Zero() term.Term {
	return term.Apply(term.K(), term.I())
}

// Compose is the B combinator S(KS)K, with B f g x = f (g x).
func Compose() term.Term {
	return term.ApplyAll(term.S(), term.Apply(term.K(), term.S()), term.K())
}

// Succ is S B. Succ n f x = B f (n f) x = f (n f x).
func Succ() term.Term {
	return term.Apply(term.S(), Compose())
}

// Successor returns the numeral one greater than n.
func Successor(n term.Term) term.Term {
	return term.Apply(Succ(), n)
}

// Invert is S(K(SI))K.
//
// Invert n f reduces to (n f)(f (n f)), not to B f (n f). It agrees with
// Successor when f acts as the identity and differs otherwise; with f = K,
// x = S and n = Zero it yields I instead of K S.
func Invert() term.Term {
	return term.Apply(term.S(), term.ApplyAll(term.K(), term.Apply(term.S(), term.I()), term.K()))
}

// InvertSuccessor applies Invert to n.
func InvertSuccessor(n term.Term) term.Term {
	return term.Apply(Invert(), n)
}

// FromInt returns the numeral for n built by n applications of Successor
// over Zero. n must lie in [0, MaxValue].
func FromInt(n int) (term.Term, error) {
	if n < 0 || n > MaxValue {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, n, MaxValue)
	}
	t := Zero()
	for i := 0; i < n; i++ {
		t = Successor(t)
	}
	return t, nil
}

// MustFromInt is like FromInt but panics on error.
// Use only in tests or when n is known to be in range.
func MustFromInt(n int) term.Term {
	t, err := FromInt(n)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the English name for n up to Twelve, and the decimal form
// beyond that.
func Name(n int) string {
	if n >= 0 && n < len(names) {
		return names[n]
	}
	return strconv.Itoa(n)
}

// Names returns the named numerals, Zero through Twelve, in order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Applied builds n f x.
func Applied(n, f, x term.Term) term.Term {
	return term.ApplyAll(n, f, x)
}

// Iterate builds f applied k times to x, the shape n f x must reduce to.
func Iterate(k int, f, x term.Term) term.Term {
	t := x
	for i := 0; i < k; i++ {
		t = term.Apply(f, t)
	}
	return t
}
