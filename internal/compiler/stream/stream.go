// Package stream provides a cursor over a lexed token vector with the
// peek/advance/fork/rewind primitives the parser uses for lookahead and
// speculative (backtracking) parsing, plus balanced-delimiter extraction
// for pulling out a parenthesized or braced sub-stream as a unit.
package stream

import "github.com/pld-lang/pld/internal/compiler/lexer"

// Stream is a forward cursor over a fixed token vector. It never mutates
// the underlying slice, so forks are cheap (an int) and rewinding is O(1).
type Stream struct {
	tokens []lexer.Token
	pos    int
}

// New builds a Stream over tokens. The caller is expected to have already
// filtered or kept TOKEN_NEWLINE/TOKEN_COMMENT as the grammar requires;
// Stream itself is agnostic to token kind.
func New(tokens []lexer.Token) *Stream {
	return &Stream{tokens: tokens}
}

// Checkpoint is an opaque cursor position produced by Fork and consumed by
// Rewind.
type Checkpoint int

// Fork returns a checkpoint capturing the current position, so the parser
// can attempt a speculative parse and roll back on failure without copying
// any token data.
func (s *Stream) Fork() Checkpoint { return Checkpoint(s.pos) }

// Rewind restores the cursor to a previously captured checkpoint.
func (s *Stream) Rewind(c Checkpoint) { s.pos = int(c) }

// Peek returns the token at the given lookahead offset (0 = next token to
// be consumed) without advancing. Requests past the end of the stream
// return the trailing EOF token.
func (s *Stream) Peek(offset int) lexer.Token {
	i := s.pos + offset
	if i < 0 {
		i = 0
	}
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Current returns Peek(0).
func (s *Stream) Current() lexer.Token { return s.Peek(0) }

// Advance returns the current token and moves the cursor forward by one,
// unless already at EOF.
func (s *Stream) Advance() lexer.Token {
	tok := s.Current()
	if tok.Type != lexer.TOKEN_EOF {
		s.pos++
	}
	return tok
}

// AtEnd reports whether the cursor sits on the trailing EOF token.
func (s *Stream) AtEnd() bool { return s.Current().Type == lexer.TOKEN_EOF }

// Check reports whether the current token has the given type, without
// consuming it.
func (s *Stream) Check(t lexer.TokenType) bool { return s.Current().Type == t }

// Match consumes and returns true if the current token has the given type,
// otherwise leaves the cursor untouched and returns false.
func (s *Stream) Match(t lexer.TokenType) bool {
	if s.Check(t) {
		s.Advance()
		return true
	}
	return false
}

// Balanced extracts the sub-stream between a matching pair of open/close
// delimiters, assuming the cursor currently sits on the opening token. It
// returns a new Stream scoped to the tokens strictly between the
// delimiters (EOF-terminated) and advances the receiver past the closing
// delimiter. Nested occurrences of open/close are tracked so that, e.g.,
// extracting a parenthesized group skips over inner parens correctly.
//
// ok is false if the stream runs out before the matching close is found;
// in that case the receiver's position is left at the original opening
// token so the caller can report an unterminated-group error.
func (s *Stream) Balanced(open, close lexer.TokenType) (sub *Stream, ok bool) {
	start := s.pos
	if !s.Check(open) {
		return nil, false
	}
	s.Advance()
	depth := 1
	contentStart := s.pos
	for {
		if s.AtEnd() {
			s.pos = start
			return nil, false
		}
		switch s.Current().Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				inner := append([]lexer.Token{}, s.tokens[contentStart:s.pos]...)
				inner = append(inner, lexer.Token{Type: lexer.TOKEN_EOF, Span: s.Current().Span})
				s.Advance() // consume the closing delimiter
				return New(inner), true
			}
		}
		s.Advance()
	}
}
