package lr

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildExprGrammar builds the classic
//
//	S -> E
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
//
// grammar, a standard SLR(1) fixture.
func buildExprGrammar(t *testing.T) (*grammar.Grammar, map[string]symbol.Symbol) {
	t.Helper()
	f := symbol.NewFactory()
	syms := map[string]symbol.Symbol{
		"S":    f.Mint("S"),
		"E":    f.Mint("E"),
		"T":    f.Mint("T"),
		"F":    f.Mint("F"),
		"+":    f.Mint("+"),
		"*":    f.Mint("*"),
		"(":    f.Mint("("),
		")":    f.Mint(")"),
		"id":   f.Mint("id"),
	}

	g := grammar.New(syms["S"])
	_, err := g.AddProduction(syms["S"], syms["E"])
	require.NoError(t, err)
	_, err = g.AddProduction(syms["E"], syms["E"], syms["+"], syms["T"])
	require.NoError(t, err)
	_, err = g.AddProduction(syms["E"], syms["T"])
	require.NoError(t, err)
	_, err = g.AddProduction(syms["T"], syms["T"], syms["*"], syms["F"])
	require.NoError(t, err)
	_, err = g.AddProduction(syms["T"], syms["F"])
	require.NoError(t, err)
	_, err = g.AddProduction(syms["F"], syms["("], syms["E"], syms[")"])
	require.NoError(t, err)
	_, err = g.AddProduction(syms["F"], syms["id"])
	require.NoError(t, err)

	require.NoError(t, g.Finalize())
	return g, syms
}

func Test_Build_exprGrammar(t *testing.T) {
	g, syms := buildExprGrammar(t)

	tbl, err := Build(g)
	require.NoError(t, err)

	assert.True(t, len(tbl.States) > 0)
	assert.True(t, tbl.AcceptingState >= 0)

	idIdx := tbl.TerminalIndex[syms["id"]]
	foundShift := false
	for _, row := range tbl.Action {
		if row[idIdx] > 0 {
			foundShift = true
			break
		}
	}
	assert.True(t, foundShift, "expected at least one shift on id")
}

func Test_Build_rejectsAmbiguousGrammar(t *testing.T) {
	// the dangling-else style ambiguity: S -> A, A -> a A | a is
	// reduce-reduce/shift-reduce ambiguous under a naive construction when
	// a second production collides; here we force a reduce-reduce directly
	// (S -> E, E -> A | B, A -> x, B -> x: after x both A and B reduce).
	f := symbol.NewFactory()
	s := f.Mint("S")
	e := f.Mint("E")
	a := f.Mint("A")
	b := f.Mint("B")
	x := f.Mint("x")

	g := grammar.New(s)
	_, err := g.AddProduction(s, e)
	require.NoError(t, err)
	_, err = g.AddProduction(e, a)
	require.NoError(t, err)
	_, err = g.AddProduction(e, b)
	require.NoError(t, err)
	_, err = g.AddProduction(a, x)
	require.NoError(t, err)
	_, err = g.AddProduction(b, x)
	require.NoError(t, err)
	require.NoError(t, g.Finalize())

	_, err = Build(g)
	require.Error(t, err)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "reduce-reduce", conflict.Kind)
}

func Test_Tables_String_doesNotPanic(t *testing.T) {
	g, _ := buildExprGrammar(t)
	tbl, err := Build(g)
	require.NoError(t, err)
	assert.NotEmpty(t, tbl.String())
}

func Test_BuildWithOptions_nonFatalKeepsFirstDeclaredProduction(t *testing.T) {
	f := symbol.NewFactory()
	s := f.Mint("S")
	e := f.Mint("E")
	a := f.Mint("A")
	b := f.Mint("B")
	x := f.Mint("x")

	g := grammar.New(s)
	_, err := g.AddProduction(s, e)
	require.NoError(t, err)
	_, err = g.AddProduction(e, a)
	require.NoError(t, err)
	_, err = g.AddProduction(e, b)
	require.NoError(t, err)
	aPid, err := g.AddProduction(a, x)
	require.NoError(t, err)
	_, err = g.AddProduction(b, x)
	require.NoError(t, err)
	require.NoError(t, g.Finalize())

	var traced []string
	tbl, err := BuildWithOptions(g, func(msg string) { traced = append(traced, msg) }, false)
	require.NoError(t, err)
	assert.NotEmpty(t, tbl.Warnings)
	assert.NotEmpty(t, traced)

	// SLR(1) places the reduce by A -> x under FOLLOW(A) = {EOI}.
	eoiIdx := tbl.TerminalIndex[symbol.EOI]
	foundKept := false
	for _, row := range tbl.Action {
		if row[eoiIdx] == -(aPid + 1) {
			foundKept = true
		}
	}
	assert.True(t, foundKept, "expected the first-declared production (A -> x) to win the conflict")
}
