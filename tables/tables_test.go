package tables

import (
	"path/filepath"
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lr"
	"github.com/dekarrin/ictiobus/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildNLGrammar(t *testing.T) (*grammar.Grammar, *symbol.Factory) {
	t.Helper()
	f := symbol.NewFactory()
	start := f.Mint("S")
	nl := f.Mint("NL")
	n := f.Mint("N")
	comma := f.Mint("COMMA")

	g := grammar.New(start)
	_, err := g.AddProduction(start, nl, symbol.EOI)
	require.NoError(t, err)
	_, err = g.AddProduction(nl, n)
	require.NoError(t, err)
	_, err = g.AddProduction(nl, n, comma, nl)
	require.NoError(t, err)
	require.NoError(t, g.Finalize())
	return g, f
}

func Test_SaveTo_LoadFrom_roundTrips(t *testing.T) {
	g, f := buildNLGrammar(t)
	tbl, err := lr.Build(g)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lang.rzb")
	require.NoError(t, SaveTo(path, tbl))

	f2 := symbol.NewFactory()
	// mint in the same declaration order as buildNLGrammar, so ids align
	f2.Mint("S")
	f2.Mint("NL")
	f2.Mint("N")
	f2.Mint("COMMA")

	_, loaded, err := LoadFrom(path, f2)
	require.NoError(t, err)

	assert.Equal(t, tbl.Action, loaded.Action)
	assert.Equal(t, tbl.Goto, loaded.Goto)
	assert.Equal(t, tbl.AcceptingState, loaded.AcceptingState)
	assert.Equal(t, tbl.RuleLengths, loaded.RuleLengths)

	n, _ := f2.Lookup("N")
	nl, _ := f2.Lookup("NL")
	assert.True(t, loaded.Follow.Has(nl, symbol.EOI))
	assert.True(t, loaded.Grammar.IsTerminal(n))
}
