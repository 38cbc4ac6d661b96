package lexer

import (
	"fmt"

	"github.com/pld-lang/pld/internal/compiler/source"
)

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR
	// TOKEN_COMMENT holds a line or doc comment's text, including its
	// leading marker. Comments are emitted (unlike most DSL lexers) so
	// the formatter and AST can round-trip them.
	TOKEN_COMMENT
	// TOKEN_NEWLINE represents a line break. The lexer emits one for
	// every newline; the parser discards them, and formatter rules use
	// them to see line structure.

	TOKEN_NEWLINE

	// Keywords - declarations
	TOKEN_NAMESPACE // namespace
	TOKEN_USE       // use
	TOKEN_IMPORT    // import
	TOKEN_STRUCT    // struct
	TOKEN_ENUM      // enum
	TOKEN_TYPE      // type
	TOKEN_ONEOF     // oneof
	TOKEN_UNION     // union
	TOKEN_ERROR_KW  // error
	TOKEN_OPERATION // operation
	TOKEN_AS        // as

	// Built-in scalar type keywords
	TOKEN_BOOL
	TOKEN_STR
	TOKEN_I8
	TOKEN_I16
	TOKEN_I32
	TOKEN_I64
	TOKEN_U8
	TOKEN_U16
	TOKEN_U32
	TOKEN_U64
	TOKEN_F16
	TOKEN_F32
	TOKEN_F64
	TOKEN_USIZE
	TOKEN_DATETIME
	TOKEN_COMPLEX
	TOKEN_BINARY
	TOKEN_NEVER

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_INT_LITERAL
	TOKEN_STRING_LITERAL

	// Structural punctuation
	TOKEN_DOUBLE_COLON // ::
	TOKEN_LBRACE        // {
	TOKEN_RBRACE        // }
	TOKEN_LPAREN        // (
	TOKEN_RPAREN        // )
	TOKEN_LBRACKET      // [
	TOKEN_RBRACKET      // ]
	TOKEN_SEMICOLON     // ;
	TOKEN_COLON         // :
	TOKEN_COMMA         // ,
	TOKEN_QUESTION      // ?
	TOKEN_EQUALS        // =
	TOKEN_PIPE          // |
	TOKEN_AMP           // &
	TOKEN_HASH          // #
	TOKEN_BANG          // !
	TOKEN_ARROW         // ->
)

var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF:             "EOF",
	TOKEN_ERROR:           "ERROR",
	TOKEN_COMMENT:         "COMMENT",
	TOKEN_NEWLINE:         "NEWLINE",
	TOKEN_NAMESPACE:       "NAMESPACE",
	TOKEN_USE:             "USE",
	TOKEN_IMPORT:          "IMPORT",
	TOKEN_STRUCT:          "STRUCT",
	TOKEN_ENUM:            "ENUM",
	TOKEN_TYPE:            "TYPE",
	TOKEN_ONEOF:           "ONEOF",
	TOKEN_UNION:           "UNION",
	TOKEN_ERROR_KW:        "ERROR_KW",
	TOKEN_OPERATION:       "OPERATION",
	TOKEN_AS:              "AS",
	TOKEN_BOOL:            "BOOL",
	TOKEN_STR:             "STR",
	TOKEN_I8:              "I8",
	TOKEN_I16:             "I16",
	TOKEN_I32:             "I32",
	TOKEN_I64:             "I64",
	TOKEN_U8:              "U8",
	TOKEN_U16:             "U16",
	TOKEN_U32:             "U32",
	TOKEN_U64:             "U64",
	TOKEN_F16:             "F16",
	TOKEN_F32:             "F32",
	TOKEN_F64:             "F64",
	TOKEN_USIZE:           "USIZE",
	TOKEN_DATETIME:        "DATETIME",
	TOKEN_COMPLEX:         "COMPLEX",
	TOKEN_BINARY:          "BINARY",
	TOKEN_NEVER:           "NEVER",
	TOKEN_IDENTIFIER:      "IDENTIFIER",
	TOKEN_INT_LITERAL:     "INT_LITERAL",
	TOKEN_STRING_LITERAL:  "STRING_LITERAL",
	TOKEN_DOUBLE_COLON:    "DOUBLE_COLON",
	TOKEN_LBRACE:          "LBRACE",
	TOKEN_RBRACE:          "RBRACE",
	TOKEN_LPAREN:          "LPAREN",
	TOKEN_RPAREN:          "RPAREN",
	TOKEN_LBRACKET:        "LBRACKET",
	TOKEN_RBRACKET:        "RBRACKET",
	TOKEN_SEMICOLON:       "SEMICOLON",
	TOKEN_COLON:           "COLON",
	TOKEN_COMMA:           "COMMA",
	TOKEN_QUESTION:        "QUESTION",
	TOKEN_EQUALS:          "EQUALS",
	TOKEN_PIPE:            "PIPE",
	TOKEN_AMP:             "AMP",
	TOKEN_HASH:            "HASH",
	TOKEN_BANG:            "BANG",
	TOKEN_ARROW:           "ARROW",
}

// String returns the token type's name, used in diagnostics.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// Token is a single lexical token with its source span.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // parsed value for INT_LITERAL/STRING_LITERAL
	Span    source.Span
}

// String renders the token for debugging and test failure output.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q (%v) at %d:%d", t.Type, t.Lexeme, t.Literal, t.Span.Pos.Line, t.Span.Pos.Column)
	}
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Span.Pos.Line, t.Span.Pos.Column)
}

// Keywords maps reserved words to their token types. Anything not present
// here lexes as TOKEN_IDENTIFIER.
var Keywords = map[string]TokenType{
	"namespace": TOKEN_NAMESPACE,
	"use":       TOKEN_USE,
	"import":    TOKEN_IMPORT,
	"struct":    TOKEN_STRUCT,
	"enum":      TOKEN_ENUM,
	"type":      TOKEN_TYPE,
	"oneof":     TOKEN_ONEOF,
	"union":     TOKEN_UNION,
	"error":     TOKEN_ERROR_KW,
	"operation": TOKEN_OPERATION,
	"as":        TOKEN_AS,

	"bool":     TOKEN_BOOL,
	"str":      TOKEN_STR,
	"i8":       TOKEN_I8,
	"i16":      TOKEN_I16,
	"i32":      TOKEN_I32,
	"i64":      TOKEN_I64,
	"u8":       TOKEN_U8,
	"u16":      TOKEN_U16,
	"u32":      TOKEN_U32,
	"u64":      TOKEN_U64,
	"f16":      TOKEN_F16,
	"f32":      TOKEN_F32,
	"f64":      TOKEN_F64,
	"usize":    TOKEN_USIZE,
	"datetime": TOKEN_DATETIME,
	"complex":  TOKEN_COMPLEX,
	"binary":   TOKEN_BINARY,
	"never":    TOKEN_NEVER,
}

// BuiltinTypeTokens is the subset of Keywords that denote scalar built-in
// types rather than structural keywords. The parser and resolver use this
// to decide whether an identifier-position token names a built-in.
var BuiltinTypeTokens = map[TokenType]bool{
	TOKEN_BOOL: true, TOKEN_STR: true,
	TOKEN_I8: true, TOKEN_I16: true, TOKEN_I32: true, TOKEN_I64: true,
	TOKEN_U8: true, TOKEN_U16: true, TOKEN_U32: true, TOKEN_U64: true,
	TOKEN_F16: true, TOKEN_F32: true, TOKEN_F64: true,
	TOKEN_USIZE: true, TOKEN_DATETIME: true, TOKEN_COMPLEX: true,
	TOKEN_BINARY: true, TOKEN_NEVER: true,
}

// LexError is a single lexical error with its location.
type LexError struct {
	Message string
	Span    source.Span
}

func (e LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Pos.Line, e.Span.Pos.Column, e.Message)
}
