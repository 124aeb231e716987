package gspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumSpec = `
NUM   ::= /[0-9]+/ .
COMMA ::= /,/ .
SKIP  ::= /[ \t\n]+/ .

<start> ::= <list> EOI .
<list>  ::= <list> COMMA NUM | NUM .
`

func Test_Parse_buildsGrammarAndRules(t *testing.T) {
	spec, err := Parse(sumSpec)
	require.NoError(t, err)

	require.NoError(t, spec.Grammar.Finalize())
	assert.Equal(t, "[ \\t\\n]+", spec.SkipPattern)
	require.Len(t, spec.Rules, 2)
	assert.Equal(t, "NUM", spec.Rules[0].Symbol.Name())
	assert.Equal(t, "[0-9]+", spec.Rules[0].Pattern)
}

func Test_Parse_rejectsMissingStart(t *testing.T) {
	_, err := Parse(`NUM ::= /[0-9]+/ .`)
	assert.Error(t, err)
}

func Test_Parse_rejectsMalformedAssign(t *testing.T) {
	_, err := Parse(`NUM := /[0-9]+/ .`)
	assert.Error(t, err)
}

func Test_Parse_rejectsUnterminatedRegex(t *testing.T) {
	_, err := Parse(`NUM ::= /[0-9]+ .`)
	assert.Error(t, err)
}

func Test_Parse_skipsComments(t *testing.T) {
	src := "# a comment\nNUM ::= /[0-9]+/ .\n<start> ::= NUM EOI .\n"
	spec, err := Parse(src)
	require.NoError(t, err)
	require.NoError(t, spec.Grammar.Finalize())
}
