package term

// Rewrite performs one SKI rewrite of f applied to x.
//
//	I X                    => X
//	K X                    => K1(X)
//	K1(X) _                => X
//	S X                    => S1(X)
//	S1(X) Y                => S2(X, Y)
//	S2(X, Y) Z             => (X Z)(Y Z)
//	(F A) X                => (Rewrite(F, A)) X
//
// The S2 rule is the only one that does not shrink the term; its result is a
// pending Application and may never resolve.
// Returns nil when f is nil or not a known variant.
func Rewrite(f, x Term) Term {
	switch fn := f.(type) {
	case Identity:
		return x
	case Constant:
		return &PartialConstant{value: x}
	case *PartialConstant:
		return fn.value
	case Substitutor:
		return &PartialSubstitutor1{first: x}
	case *PartialSubstitutor1:
		return &PartialSubstitutor2{first: fn.first, second: x}
	case *PartialSubstitutor2:
		return Apply(Apply(fn.first, x), Apply(fn.second, x))
	case *Application:
		inner := Rewrite(fn.fn, fn.arg)
		if inner == nil {
			return nil
		}
		return Apply(inner, x)
	default:
		return nil
	}
}

// Operands returns the direct sub-terms of t in order.
// Primitives have none.
func Operands(t Term) []Term {
	switch v := t.(type) {
	case *PartialConstant:
		return []Term{v.value}
	case *PartialSubstitutor1:
		return []Term{v.first}
	case *PartialSubstitutor2:
		return []Term{v.first, v.second}
	case *Application:
		return []Term{v.fn, v.arg}
	default:
		return nil
	}
}

// Equal reports whether a and b have the same structure.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	ao, bo := Operands(a), Operands(b)
	if len(ao) != len(bo) {
		return false
	}
	for i := range ao {
		if !Equal(ao[i], bo[i]) {
			return false
		}
	}
	return true
}

// Size returns the number of nodes in t.
func Size(t Term) int {
	if t == nil {
		return 0
	}
	n := 1
	for _, op := range Operands(t) {
		n += Size(op)
	}
	return n
}

// IsResolved reports whether t contains no Application nodes.
func IsResolved(t Term) bool {
	if t == nil || t.Kind() == KindApplication {
		return false
	}
	for _, op := range Operands(t) {
		if !IsResolved(op) {
			return false
		}
	}
	return true
}
