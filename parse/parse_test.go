package parse

import (
	"testing"

	"github.com/dekarrin/ictiobus/charinput"
	"github.com/dekarrin/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/lex"
	"github.com/dekarrin/ictiobus/lr"
	"github.com/dekarrin/ictiobus/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSumSetup builds a tiny grammar/lexer pair for the language of
// comma-separated numbers terminated by end of input:
//
//	S    -> LIST EOI
//	LIST -> LIST COMMA NUM
//	LIST -> NUM
//
// LIST is left-recursive so that COMMA, not just EOI, lands in
// FOLLOW(LIST) - giving panic-mode recovery a sync point short of the
// very end of input.
func buildSumSetup(t *testing.T) (*grammar.Grammar, *lr.Tables, *lex.Lexer, symbol.Symbol, symbol.Symbol) {
	t.Helper()
	f := symbol.NewFactory()
	s := f.Mint("S")
	list := f.Mint("LIST")
	num := f.Mint("NUM")
	comma := f.Mint("COMMA")

	g := grammar.New(s)
	_, err := g.AddProduction(s, list, symbol.EOI)
	require.NoError(t, err)
	_, err = g.AddProduction(list, list, comma, num)
	require.NoError(t, err)
	_, err = g.AddProduction(list, num)
	require.NoError(t, err)
	require.NoError(t, g.Finalize())

	tbl, err := lr.Build(g)
	require.NoError(t, err)

	lx, err := lex.Compile([]lex.Rule{
		{Symbol: num, Pattern: "[0-9]+"},
		{Symbol: comma, Pattern: ","},
	}, "[ \t\n]+")
	require.NoError(t, err)

	return g, tbl, lx, num, comma
}

func Test_Parse_acceptsValidInput(t *testing.T) {
	_, tbl, lx, _, _ := buildSumSetup(t)

	in := charinput.New([]byte("1, 2, 3"))
	tree, errs, err := Parse(tbl, lx, in, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.NotNil(t, tree)
	assert.False(t, tree.IsLeaf())
}

func Test_Validate_fastPathAgrees(t *testing.T) {
	_, tbl, lx, _, _ := buildSumSetup(t)

	in := charinput.New([]byte("1, 2, 3"))
	ok, errs, err := Validate(tbl, lx, in, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func Test_Parse_reportsSyntaxErrorWithoutRecovery(t *testing.T) {
	_, tbl, lx, _, _ := buildSumSetup(t)

	in := charinput.New([]byte("1, , 3"))
	opts := DefaultOptions()
	opts.Recover = false

	_, errs, err := Parse(tbl, lx, in, opts)
	require.Error(t, err)
	require.Len(t, errs, 1)
	assert.False(t, errs[0].Recovered)
}

func Test_Parse_recoversAndContinues(t *testing.T) {
	_, tbl, lx, _, _ := buildSumSetup(t)

	// a stray comma where a number is expected; the parser should
	// synthesize a LIST node in its place and continue.
	in := charinput.New([]byte("1, , 3"))
	tree, errs, err := Parse(tbl, lx, in, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.True(t, errs[0].Recovered)
	assert.NotEmpty(t, errs[0].RecentTerminals)
	assert.NotNil(t, tree)
}
