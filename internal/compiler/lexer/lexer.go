// Package lexer provides lexical analysis for pld source code. It
// tokenizes .pld files into a stream of spanned tokens for the parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pld-lang/pld/internal/compiler/source"
)

// Lexer tokenizes pld source code.
//
// Thread Safety: Lexer instances are NOT thread-safe. Each goroutine must
// create its own Lexer instance via New(). This is the expected pattern for
// parallel lexing across files, e.g. from the resolver's import fan-out or
// from LSP diagnostics running concurrently per document.
type Lexer struct {
	file    *source.File
	src     string
	start   int // byte offset of the token currently being scanned
	current int // byte offset of the next unread byte
	line    int // 1-indexed
	column  int // 1-indexed, counts bytes since the last newline
	tokens  []Token
	errors  []LexError
}

// New creates a Lexer over the given source file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		src:    file.Text,
		start:  0,
		line:   1,
		column: 1,
	}
}

// ScanTokens tokenizes the entire source and returns the token stream
// (always terminated by a TOKEN_EOF) along with any lexical errors.
// Scanning never stops early: like the parser, the lexer keeps going past
// an error so a single bad character produces one diagnostic, not a
// truncated file.
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.start = l.current
	l.tokens = append(l.tokens, Token{Type: TOKEN_EOF, Span: l.span()})
	return l.tokens, l.errors
}

func (l *Lexer) isAtEnd() bool { return l.current >= len(l.src) }

func (l *Lexer) advance() byte {
	c := l.src[l.current]
	l.current++
	l.column++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.current]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.current+offset >= len(l.src) {
		return 0
	}
	return l.src[l.current+offset]
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

//nolint:gocyclo // dispatch by character class is inherent to hand lexers
func (l *Lexer) scanToken() {
	c := l.advance()
	switch {
	case c == ' ' || c == '\r' || c == '\t':
		// insignificant whitespace
	case c == '\n':
		l.line++
		l.column = 1
		l.addToken(TOKEN_NEWLINE)
	case c == '/' && l.peek() == '/':
		l.lineComment()
	case c == '/' && l.peek() == '*':
		l.blockComment()
	case c == '"':
		l.stringLiteral()
	case c == ':':
		if l.match(':') {
			l.addToken(TOKEN_DOUBLE_COLON)
		} else {
			l.addToken(TOKEN_COLON)
		}
	case c == '-':
		if l.match('>') {
			l.addToken(TOKEN_ARROW)
		} else {
			l.errorf("unexpected character '-'")
		}
	case c == '{':
		l.addToken(TOKEN_LBRACE)
	case c == '}':
		l.addToken(TOKEN_RBRACE)
	case c == '(':
		l.addToken(TOKEN_LPAREN)
	case c == ')':
		l.addToken(TOKEN_RPAREN)
	case c == '[':
		l.addToken(TOKEN_LBRACKET)
	case c == ']':
		l.addToken(TOKEN_RBRACKET)
	case c == ';':
		l.addToken(TOKEN_SEMICOLON)
	case c == ',':
		l.addToken(TOKEN_COMMA)
	case c == '?':
		l.addToken(TOKEN_QUESTION)
	case c == '=':
		l.addToken(TOKEN_EQUALS)
	case c == '|':
		l.addToken(TOKEN_PIPE)
	case c == '&':
		l.addToken(TOKEN_AMP)
	case c == '#':
		l.addToken(TOKEN_HASH)
	case c == '!':
		l.addToken(TOKEN_BANG)
	case isDigit(c):
		l.number()
	case isIdentStart(c):
		l.identifier()
	default:
		l.errorf("unexpected character %q", string(c))
	}
}

func (l *Lexer) lineComment() {
	l.current++ // consume the second '/'
	l.column++
	for !l.isAtEnd() && l.peek() != '\n' {
		l.current++
		l.column++
	}
	l.addToken(TOKEN_COMMENT)
}

func (l *Lexer) blockComment() {
	l.current++ // consume '*'
	l.column++
	for !l.isAtEnd() && !(l.peek() == '*' && l.peekAt(1) == '/') {
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		l.current++
		l.column++
	}
	if l.isAtEnd() {
		l.errorf("unterminated block comment")
		return
	}
	l.current += 2 // consume "*/"
	l.column += 2
	l.addToken(TOKEN_COMMENT)
}

func (l *Lexer) stringLiteral() {
	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != '"' {
		c := l.advance()
		if c == '\n' {
			l.errorf("unterminated string literal")
			return
		}
		if c == '\\' && !l.isAtEnd() {
			sb.WriteByte(l.decodeEscape(l.advance()))
			continue
		}
		sb.WriteByte(c)
	}
	if l.isAtEnd() {
		l.errorf("unterminated string literal")
		return
	}
	l.current++ // closing quote
	l.column++
	l.addLiteral(TOKEN_STRING_LITERAL, sb.String())
}

func (l *Lexer) decodeEscape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '"':
		return '"'
	case '\\':
		return '\\'
	default:
		return c
	}
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.current++
		l.column++
	}
	lexeme := l.src[l.start:l.current]
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		l.errorf("invalid integer literal %q", lexeme)
		return
	}
	l.addLiteral(TOKEN_INT_LITERAL, v)
}

func (l *Lexer) identifier() {
	for isIdentPart(l.peek()) {
		l.current++
		l.column++
	}
	lexeme := l.src[l.start:l.current]
	if t, ok := Keywords[lexeme]; ok {
		l.addToken(t)
		return
	}
	l.addToken(TOKEN_IDENTIFIER)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return true
	}
	return c >= utf8.RuneSelf && unicode.IsLetter(rune(c))
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) span() source.Span {
	return source.Span{
		File:  l.file,
		Start: l.start,
		End:   l.current,
		Pos:   source.Position{Line: l.line, Column: l.column - (l.current - l.start)},
	}
}

func (l *Lexer) addToken(t TokenType) {
	l.tokens = append(l.tokens, Token{Type: t, Lexeme: l.src[l.start:l.current], Span: l.span()})
}

func (l *Lexer) addLiteral(t TokenType, literal interface{}) {
	l.tokens = append(l.tokens, Token{Type: t, Lexeme: l.src[l.start:l.current], Literal: literal, Span: l.span()})
}

func (l *Lexer) errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, LexError{Message: fmt.Sprintf(format, args...), Span: l.span()})
	l.tokens = append(l.tokens, Token{Type: TOKEN_ERROR, Lexeme: l.src[l.start:l.current], Span: l.span()})
}
