package charinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Input_AdvanceTracksLineAndColumn(t *testing.T) {
	in := New([]byte("ab\ncd"))

	in.Advance(3)
	assert.Equal(t, 2, in.Line())
	assert.Equal(t, 1, in.Column())

	in.Advance(2)
	assert.True(t, in.AtEnd())
}

func Test_Input_PeekAtDoesNotAdvance(t *testing.T) {
	in := New([]byte("xyz"))

	b, ok := in.PeekAt(1)
	assert.True(t, ok)
	assert.Equal(t, byte('y'), b)
	assert.Equal(t, 0, in.Pos())

	_, ok = in.PeekAt(10)
	assert.False(t, ok)
}

func Test_Input_Extract(t *testing.T) {
	in := New([]byte("hello world"))
	assert.Equal(t, "hello", string(in.Extract(0, 5)))
}

func Test_Input_Rebind(t *testing.T) {
	in := New([]byte("first"))
	in.Advance(3)

	in.Rebind([]byte("second"))
	assert.Equal(t, 0, in.Pos())
	assert.Equal(t, 1, in.Line())
}
