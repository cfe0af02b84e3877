package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	toks := []Token{
		{Text: "Tony M", Kind: KindPlayerName},
		{Text: "36", Kind: KindInteger, Value: 36},
		{Text: "465", Kind: KindInteger, Value: 465},
	}
	c := NewCursor(toks)

	tok, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, "Tony M", tok.Text)
	assert.True(t, c.PeekKind(KindInteger, KindPlayerName))

	_, ok = c.Accept(KindInteger)
	assert.False(t, ok, "accept must not consume a token of another kind")

	mark := c.Mark()
	_, ok = c.Accept(KindPlayerName)
	require.True(t, ok)
	tok, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, 36, tok.Value)
	assert.Len(t, c.Rest(), 1)

	c.Reset(mark)
	assert.Len(t, c.Rest(), 3)

	for range 3 {
		c.Next()
	}
	assert.True(t, c.Done())
	_, ok = c.Next()
	assert.False(t, ok)
	assert.Nil(t, c.Rest())
}
