package stream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pld-lang/pld/internal/compiler/lexer"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/compiler/stream"
)

func tokenize(t *testing.T, text string) []lexer.Token {
	t.Helper()
	toks, errs := lexer.New(source.New("t.pld", text)).ScanTokens()
	require.Empty(t, errs)
	return toks
}

func TestPeekAdvance(t *testing.T) {
	s := stream.New(tokenize(t, "struct Foo"))
	assert.Equal(t, lexer.TOKEN_STRUCT, s.Peek(0).Type)
	assert.Equal(t, lexer.TOKEN_IDENTIFIER, s.Peek(1).Type)
	s.Advance()
	assert.Equal(t, lexer.TOKEN_IDENTIFIER, s.Current().Type)
}

func TestForkRewind(t *testing.T) {
	s := stream.New(tokenize(t, "struct Foo"))
	cp := s.Fork()
	s.Advance()
	s.Advance()
	assert.True(t, s.AtEnd())
	s.Rewind(cp)
	assert.Equal(t, lexer.TOKEN_STRUCT, s.Current().Type)
}

func TestBalancedExtractsNestedGroup(t *testing.T) {
	s := stream.New(tokenize(t, "(a, (b, c), d) rest"))
	sub, ok := s.Balanced(lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN)
	require.True(t, ok)
	// rest of the outer stream continues after the closing paren
	assert.Equal(t, lexer.TOKEN_IDENTIFIER, s.Current().Type)
	assert.Equal(t, "rest", s.Current().Lexeme)
	// the sub-stream contains the nested group intact
	assert.Equal(t, lexer.TOKEN_IDENTIFIER, sub.Current().Type)
	sub.Advance() // a
	sub.Advance() // ,
	nested, ok := sub.Balanced(lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN)
	require.True(t, ok)
	assert.Equal(t, "b", nested.Current().Lexeme)
}

func TestBalancedUnterminatedFails(t *testing.T) {
	s := stream.New(tokenize(t, "(a, b"))
	_, ok := s.Balanced(lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN)
	assert.False(t, ok)
	assert.Equal(t, lexer.TOKEN_LPAREN, s.Current().Type)
}
