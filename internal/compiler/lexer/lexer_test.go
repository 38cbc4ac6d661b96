package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pld-lang/pld/internal/compiler/lexer"
	"github.com/pld-lang/pld/internal/compiler/source"
)

func scan(t *testing.T, text string) ([]lexer.Token, []lexer.LexError) {
	t.Helper()
	f := source.New("test.pld", text)
	toks, errs := lexer.New(f).ScanTokens()
	return toks, errs
}

func types(toks []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == lexer.TOKEN_NEWLINE {
			continue
		}
		out = append(out, tok.Type)
	}
	return out
}

func TestScanNamespaceDeclaration(t *testing.T) {
	toks, errs := scan(t, `namespace billing::core;`)
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_NAMESPACE, lexer.TOKEN_IDENTIFIER, lexer.TOKEN_DOUBLE_COLON,
		lexer.TOKEN_IDENTIFIER, lexer.TOKEN_SEMICOLON, lexer.TOKEN_EOF,
	}, types(toks))
}

func TestScanStructWithNullableField(t *testing.T) {
	toks, errs := scan(t, `struct Invoice { total: f64?; }`)
	require.Empty(t, errs)
	assert.Equal(t, []lexer.TokenType{
		lexer.TOKEN_STRUCT, lexer.TOKEN_IDENTIFIER, lexer.TOKEN_LBRACE,
		lexer.TOKEN_IDENTIFIER, lexer.TOKEN_COLON, lexer.TOKEN_F64, lexer.TOKEN_QUESTION,
		lexer.TOKEN_SEMICOLON, lexer.TOKEN_RBRACE, lexer.TOKEN_EOF,
	}, types(toks))
}

func TestScanStringLiteralEscapes(t *testing.T) {
	toks, errs := scan(t, `"line one\nline two"`)
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, "line one\nline two", toks[0].Literal)
}

func TestScanIntLiteral(t *testing.T) {
	toks, errs := scan(t, `42`)
	require.Empty(t, errs)
	assert.Equal(t, int64(42), toks[0].Literal)
}

func TestScanLineAndBlockComments(t *testing.T) {
	toks, errs := scan(t, "// leading\n/* block */ struct")
	require.Empty(t, errs)
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, lexer.TOKEN_COMMENT, toks[0].Type)
}

func TestScanUnterminatedStringProducesError(t *testing.T) {
	_, errs := scan(t, `"oops`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unterminated")
}

func TestScanUnexpectedCharacterProducesError(t *testing.T) {
	_, errs := scan(t, `$`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unexpected character")
}
