package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ski/internal/numeral"
	"github.com/roach88/ski/internal/term"
)

func TestCompileDefinitionsBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		define: {
			Comp: [["S", ["K", "S"]], "K"]
			Next: ["S", "Comp"]
			Three: ["Next", 2]
		}
	`)
	require.NoError(t, v.Err())

	vocab := Builtins()
	vocab = withoutNames(t, vocab, "Three")

	names, err := CompileDefinitions(v, vocab)
	require.NoError(t, err)
	assert.Equal(t, []string{"Comp", "Next", "Three"}, names)

	comp, ok := vocab.Lookup("Comp")
	require.True(t, ok)
	assert.True(t, term.Equal(numeral.Compose(), comp))

	next, ok := vocab.Lookup("Next")
	require.True(t, ok)
	assert.Equal(t, "S(S(KS)K)", next.String())

	three, ok := vocab.Lookup("Three")
	require.True(t, ok)
	assert.True(t, term.Equal(term.Apply(next, numeral.MustFromInt(2)), three))
}

func TestCompileDefinitionsKeepsDeclarationOrder(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		define: {
			Zed: "K"
			Alpha: ["Zed", "I"]
			Mid: ["Alpha", "S"]
		}
	`)

	vocab := NewVocabulary()
	require.NoError(t, vocab.Define("I", term.I()))
	require.NoError(t, vocab.Define("K", term.K()))
	require.NoError(t, vocab.Define("S", term.S()))

	names, err := CompileDefinitions(v, vocab)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed", "Alpha", "Mid"}, names)
	assert.Equal(t, []string{"I", "K", "S", "Zed", "Alpha", "Mid"}, vocab.Names())
}

func TestCompileDefinitionsForwardReference(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		define: {
			A: ["B2", "K"]
			B2: "S"
		}
	`)

	_, err := CompileDefinitions(v, Builtins())
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "define.A", ce.Field)
	assert.Contains(t, ce.Message, "unknown name")
	assert.Contains(t, ce.Message, "B2")
}

func TestCompileDefinitionsRedefinition(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		define: {
			K: "S"
		}
	`)

	_, err := CompileDefinitions(v, Builtins())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already defined")
}

func TestCompileDefinitionsMissingDefine(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`other: 1`)

	_, err := CompileDefinitions(v, Builtins())
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "define", ce.Field)
	assert.Contains(t, ce.Message, "required")
}

func TestCompileDefinitionsBadExpressions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"empty list", `define: { A: [] }`, "empty application list"},
		{"boolean", `define: { A: true }`, "must be a name, integer or list"},
		{"struct", `define: { A: { x: 1 } }`, "must be a name, integer or list"},
		{"negative numeral", `define: { A: -3 }`, "numeral out of range"},
		{"huge numeral", `define: { A: ["Succ", 20000000] }`, "20000000 not in [0, 4096]"},
		{"nested unknown", `define: { A: ["S", ["K", "Nope"]] }`, "Nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := cuecontext.New()
			v := ctx.CompileString(tt.source)
			require.NoError(t, v.Err())

			_, err := CompileDefinitions(v, Builtins())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.cue")
	require.NoError(t, os.WriteFile(path, []byte(`
define: {
	KI2: ["K", "I"]
	Flip: ["S", ["K", ["S", "I"], "K"]]
}
`), 0o644))

	vocab := Builtins()
	names, err := LoadDefinitions(path, vocab)
	require.NoError(t, err)
	assert.Equal(t, []string{"KI2", "Flip"}, names)

	flip, ok := vocab.Lookup("Flip")
	require.True(t, ok)
	assert.True(t, term.Equal(numeral.Invert(), flip))
}

func TestLoadDefinitionsSyntaxErrorHasPosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.cue")
	require.NoError(t, os.WriteFile(path, []byte("define: {\n\tA: [\"S\",\n"), 0o644))

	_, err := LoadDefinitions(path, Builtins())
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Pos.IsValid())
	assert.Contains(t, err.Error(), "broken.cue")
}

func TestLoadDefinitionsMissingFile(t *testing.T) {
	_, err := LoadDefinitions(filepath.Join(t.TempDir(), "absent.cue"), Builtins())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read definitions file")
}

func TestCompileErrorWithoutPosition(t *testing.T) {
	err := &CompileError{Field: "define.X", Message: "bad"}
	assert.Equal(t, "define.X: bad", err.Error())
}

// withoutNames rebuilds v skipping the given names.
func withoutNames(t *testing.T, v *Vocabulary, skip ...string) *Vocabulary {
	t.Helper()
	drop := make(map[string]bool, len(skip))
	for _, s := range skip {
		drop[s] = true
	}
	out := NewVocabulary()
	for _, name := range v.Names() {
		if drop[name] {
			continue
		}
		tm, _ := v.Lookup(name)
		require.NoError(t, out.Define(name, tm))
	}
	return out
}
