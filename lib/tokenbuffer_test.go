package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	buf := newTokenBuffer()

	buf.Write(variableToken(1))

	tok, done := buf.Next()
	require.False(t, done)
	require.Equal(t, TokenVariable, tok.Type)
	require.Equal(t, "x", tok.Value)
}

func TestNextDoneMulti(t *testing.T) {
	buf := newTokenBufferFrom([]Token{numberToken(2, 1)})

	tok, done := buf.Next()
	require.False(t, done)
	require.Equal(t, TokenNumber, tok.Type)
	require.Equal(t, "2", tok.Value)

	_, done = buf.Next()
	require.True(t, done)

	_, done = buf.Next()
	require.True(t, done)
}

func TestPeek(t *testing.T) {
	buf := newTokenBufferFrom([]Token{functionToken("sin", 1), operatorToken('+', 4)})
	require.Equal(t, 2, buf.Len())

	tok, done := buf.Peek()
	require.False(t, done)
	require.Equal(t, "sin", tok.Value)
	require.Equal(t, 2, buf.Len())

	tok, done = buf.Next()
	require.False(t, done)
	require.Equal(t, "sin", tok.Value)

	remaining := buf.Tokens()
	require.Len(t, remaining, 1)
	require.Equal(t, "+", remaining[0].Value)

	_, _ = buf.Next()
	_, done = buf.Peek()
	require.True(t, done)
	require.Equal(t, 0, buf.Len())
}
