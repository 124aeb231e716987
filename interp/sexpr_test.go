package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSource(t *testing.T, src string) []Value {
	t.Helper()
	syntax, err := CompileSyntax()
	require.NoError(t, err)

	exprs, err := syntax.FromSource(src)
	require.NoError(t, err)

	env := newTestEnv()
	var results []Value
	for _, expr := range exprs {
		v, err := Eval(expr, env)
		require.NoError(t, err)
		results = append(results, v)
	}
	return results
}

func Test_FromSource_additionOfTwoNumbers(t *testing.T) {
	results := evalSource(t, "(+ 1 2)")
	require.Len(t, results, 1)
	r, err := results[0].Real()
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
}

func Test_FromSource_setThenUseBinding(t *testing.T) {
	results := evalSource(t, `(set a 5) (* a a)`)
	require.Len(t, results, 2)

	r0, err := results[0].Real()
	require.NoError(t, err)
	assert.Equal(t, 5.0, r0)

	r1, err := results[1].Real()
	require.NoError(t, err)
	assert.Equal(t, 25.0, r1)
}

func Test_FromSource_quoteOfAList(t *testing.T) {
	results := evalSource(t, "(quote (a b c))")
	require.Len(t, results, 1)

	v := results[0]
	assert.Equal(t, "(a b c)", v.String())

	items, ok := v.ToSlice()
	require.True(t, ok)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Name())
	assert.Equal(t, "b", items[1].Name())
	assert.Equal(t, "c", items[2].Name())
}

func Test_FromSource_stringAndEmptyList(t *testing.T) {
	syntax, err := CompileSyntax()
	require.NoError(t, err)

	exprs, err := syntax.FromSource(`"hello" ()`)
	require.NoError(t, err)
	require.Len(t, exprs, 2)

	assert.True(t, exprs[0].IsString())
	assert.Equal(t, "hello", exprs[0].Str())

	assert.True(t, exprs[1].IsNil())
}

func Test_FromSource_negativeAndFractionalNumbers(t *testing.T) {
	syntax, err := CompileSyntax()
	require.NoError(t, err)

	exprs, err := syntax.FromSource("-3.5")
	require.NoError(t, err)
	require.Len(t, exprs, 1)

	r, err := exprs[0].Real()
	require.NoError(t, err)
	assert.Equal(t, -3.5, r)
}
