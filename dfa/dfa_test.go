package dfa

import (
	"testing"

	"github.com/dekarrin/ictiobus/regex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSingle(t *testing.T, pattern string, tokenID int) (*DFA, int) {
	t.Helper()
	node, err := regex.Parse(pattern)
	require.NoError(t, err)
	n := node.AssignPositions(0)
	node.SetDelimiter(tokenID)
	d, err := Build(node, n)
	require.NoError(t, err)
	return d, n
}

func scan(d *DFA, s string) (matched bool, tokenID int) {
	state := d.Start
	lastAccept := -1
	lastToken := 0
	if d.Accepting[state] {
		lastAccept = 0
	}
	for i := 0; i < len(s); i++ {
		next, ok := d.Step(state, s[i])
		if !ok {
			break
		}
		if id, ok := d.AcceptID(state, next); ok {
			lastAccept = i + 1
			lastToken = id
		}
		state = next
	}
	return lastAccept == len(s), lastToken
}

func Test_Build_digitsPlus(t *testing.T) {
	d, _ := buildSingle(t, "[0-9]+", 7)

	matched, id := scan(d, "12349")
	assert.True(t, matched)
	assert.Equal(t, 7, id)

	matched, _ = scan(d, "12a")
	assert.False(t, matched)
}

func Test_Build_literalAlternationTiebreak(t *testing.T) {
	// two rules folded left-to-right: the "if" keyword (declared first)
	// should win over the more general identifier pattern on a tie.
	ifNode, err := regex.Parse("if")
	require.NoError(t, err)
	identNode, err := regex.Parse("[a-z]+")
	require.NoError(t, err)

	combined := regex.NewAlt(ifNode, identNode)
	n := combined.AssignPositions(0)
	ifNode.SetDelimiter(1)
	identNode.SetDelimiter(2)

	d, err := Build(combined, n)
	require.NoError(t, err)

	matched, id := scan(d, "if")
	assert.True(t, matched)
	assert.Equal(t, 1, id)

	matched, id = scan(d, "ifcatch")
	assert.True(t, matched)
	assert.Equal(t, 2, id)
}

func Test_Build_configurationsAreDistinct(t *testing.T) {
	d, _ := buildSingle(t, "ab", 1)
	seenKeys := map[string]bool{}
	for s := 0; s < d.NumStates(); s++ {
		key := d.Configs[s].Key()
		assert.False(t, seenKeys[key])
		seenKeys[key] = true
	}
}

func Test_DFA_String_doesNotPanic(t *testing.T) {
	d, _ := buildSingle(t, "[0-9]+", 7)
	out := d.String()
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "state")
}
