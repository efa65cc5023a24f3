package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ski/internal/numeral"
	"github.com/roach88/ski/internal/term"
)

func TestBuiltins(t *testing.T) {
	v := Builtins()

	names := v.Names()
	assert.Equal(t, []string{"I", "K", "S", "Zero"}, names[:4])
	assert.Equal(t, "Twelve", names[15])
	assert.Equal(t, []string{"B", "Succ", "Invert", "Omega"}, names[16:])
	assert.Equal(t, len(names), v.Len())

	k, ok := v.Lookup("K")
	require.True(t, ok)
	assert.Equal(t, term.KindConstant, k.Kind())

	twelve, ok := v.Lookup("Twelve")
	require.True(t, ok)
	assert.True(t, term.Equal(numeral.MustFromInt(12), twelve))

	omega, ok := v.Lookup("Omega")
	require.True(t, ok)
	assert.Equal(t, "SII", omega.String())

	_, ok = v.Lookup("Thirteen")
	assert.False(t, ok)
}

func TestBuiltinsAreIndependent(t *testing.T) {
	a := Builtins()
	require.NoError(t, a.Define("Extra", term.I()))

	_, ok := Builtins().Lookup("Extra")
	assert.False(t, ok)
}

func TestVocabularyDefine(t *testing.T) {
	v := NewVocabulary()
	require.NoError(t, v.Define("x_1", term.I()))

	assert.Error(t, v.Define("x_1", term.K()), "redefinition")
	assert.Error(t, v.Define("", term.K()))
	assert.Error(t, v.Define("1x", term.K()))
	assert.Error(t, v.Define("a-b", term.K()))
	assert.Error(t, v.Define("nilterm", nil))

	got, _ := v.Lookup("x_1")
	assert.Equal(t, term.KindIdentity, got.Kind())
}

func TestVocabularyNamesIsCopy(t *testing.T) {
	v := Builtins()
	names := v.Names()
	names[0] = "changed"
	assert.Equal(t, "I", v.Names()[0])
}

func TestBuild(t *testing.T) {
	v := Builtins()

	tests := []struct {
		name string
		expr any
		want string
	}{
		{"name", "S", "S"},
		{"int numeral", 0, "KI"},
		{"int64 numeral", int64(1), "S(S(KS)K)(KI)"},
		{"left associative", []any{"S", "K", "S", "K"}, "SKSK"},
		{"nested", []any{"K", []any{"S", "I"}}, "K(SI)"},
		{"singleton list", []any{"I"}, "I"},
		{"string slice", []string{"S", "I", "I"}, "SII"},
		{"term passthrough", term.Apply(term.I(), term.K()), "IK"},
		{"mixed", []any{"Zero", "I", "K"}, "KIIK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.expr, v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBuildErrors(t *testing.T) {
	v := Builtins()

	_, err := Build("Nope", v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownName))

	_, err = Build([]any{"S", []any{"K", "Nope"}}, v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownName))
	assert.Contains(t, err.Error(), "[1]: [1]:")

	_, err = Build([]any{}, v)
	assert.ErrorContains(t, err, "empty application list")

	_, err = Build(nil, v)
	assert.ErrorContains(t, err, "missing expression")

	_, err = Build(-1, v)
	assert.ErrorIs(t, err, numeral.ErrOutOfRange)

	_, err = Build(numeral.MaxValue+1, v)
	assert.ErrorIs(t, err, numeral.ErrOutOfRange)

	_, err = Build(int64(99999999999), v)
	assert.ErrorIs(t, err, numeral.ErrOutOfRange)
	assert.ErrorContains(t, err, "99999999999 not in [0, 4096]")

	top, err := Build(int64(numeral.MaxValue), v)
	require.NoError(t, err)
	assert.True(t, term.Equal(numeral.MustFromInt(numeral.MaxValue), top))

	_, err = Build(3.5, v)
	assert.ErrorContains(t, err, "unsupported expression type float64")
}
