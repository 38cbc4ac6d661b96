package formatter

import "github.com/pld-lang/pld/internal/compiler/lexer"

// oneofArrayParensRule implements spec rule §4.7 "Parentheses around oneof
// before array suffix": an anonymous oneof used inline inside a type
// expression eagerly consumes a bare list of variant heads (no per-variant
// array suffixes), so a trailing `[]` after the last variant binds to the
// oneof as a whole. Left unparenthesized that reads as if the suffix
// belonged to the last variant, so the formatter always makes the
// grouping explicit: `oneof i32 | f32[]` becomes `(oneof i32 | f32)[]`.
var oneofArrayParensRule = Rule{
	Code:         "FMT005",
	Name:         "parens-around-oneof-before-array-suffix",
	Description:  "wrap an anonymous oneof's operand list in parens when followed by an array suffix",
	Group:        "oneof-placement",
	DefaultLevel: LevelWarn,
	FixPolicy:    FixSafe,
	Analyze:      analyzeOneofArrayParens,
}

func analyzeOneofArrayParens(tokens []lexer.Token) []Edit {
	var edits []Edit
	for i, tok := range tokens {
		if tok.Type != lexer.TOKEN_ONEOF {
			continue
		}
		if isNamedOneofDecl(tokens, i) || precededByParen(tokens, i) {
			continue
		}
		end := oneofOperandEnd(tokens, i)
		if end < 0 {
			continue
		}
		next := nextNonTrivia(tokens, end+1)
		if next < 0 || tokens[next].Type != lexer.TOKEN_LBRACKET {
			continue
		}
		edits = append(edits,
			Edit{
				Kind: EditInsert, Start: i,
				Tokens: []lexer.Token{{Type: lexer.TOKEN_LPAREN, Lexeme: "("}},
				Rule:   "parens-around-oneof-before-array-suffix", Detail: "insert '(' before oneof operand list",
			},
			Edit{
				Kind: EditInsert, Start: end + 1,
				Tokens: []lexer.Token{{Type: lexer.TOKEN_RPAREN, Lexeme: ")"}},
				Rule:   "parens-around-oneof-before-array-suffix", Detail: "insert ')' after oneof operand list, before array suffix",
			},
		)
	}
	return edits
}

// isNamedOneofDecl reports whether the oneof at index i begins a top-level
// `oneof Name { ... }` declaration rather than an anonymous operand list
// inline in a type expression. Only the named form can be followed by an
// identifier and then a brace group.
func isNamedOneofDecl(tokens []lexer.Token, i int) bool {
	nameIdx := nextNonTrivia(tokens, i+1)
	if nameIdx < 0 || tokens[nameIdx].Type != lexer.TOKEN_IDENTIFIER {
		return false
	}
	braceIdx := nextNonTrivia(tokens, nameIdx+1)
	return braceIdx >= 0 && tokens[braceIdx].Type == lexer.TOKEN_LBRACE
}

// precededByParen reports whether the nearest non-trivia token before index
// i is an opening paren, which this rule treats as already-grouped —
// otherwise a second formatting pass would keep inserting redundant parens
// and the rule would fail the idempotence contract.
func precededByParen(tokens []lexer.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if isTrivia(tokens[j]) {
			continue
		}
		return tokens[j].Type == lexer.TOKEN_LPAREN
	}
	return false
}

// oneofOperandEnd returns the index of the last token belonging to the
// oneof's bare `Head (| Head)*` operand list starting right after the
// `oneof` keyword at index i, or -1 if the operand list isn't a shape this
// rule understands (in which case it declines to edit rather than guess).
func oneofOperandEnd(tokens []lexer.Token, i int) int {
	cur := nextNonTrivia(tokens, i+1)
	if cur < 0 {
		return -1
	}
	last := operandHeadEnd(tokens, cur)
	if last < 0 {
		return -1
	}
	for {
		pipe := nextNonTrivia(tokens, last+1)
		if pipe < 0 || tokens[pipe].Type != lexer.TOKEN_PIPE {
			return last
		}
		next := nextNonTrivia(tokens, pipe+1)
		if next < 0 {
			return last
		}
		end := operandHeadEnd(tokens, next)
		if end < 0 {
			return last
		}
		last = end
	}
}

// operandHeadEnd returns the index of the last token of one bare type head
// (builtin keyword, possibly `::`-qualified identifier, parenthesized
// group, or a nested anonymous oneof) starting at index start.
func operandHeadEnd(tokens []lexer.Token, start int) int {
	tok := tokens[start]
	switch {
	case tok.Type == lexer.TOKEN_LPAREN:
		return matchingDelimiter(tokens, start, lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN)
	case tok.Type == lexer.TOKEN_ONEOF:
		return oneofOperandEnd(tokens, start)
	case lexer.BuiltinTypeTokens[tok.Type]:
		return start
	case tok.Type == lexer.TOKEN_IDENTIFIER:
		last := start
		for last+1 < len(tokens) && tokens[last+1].Type == lexer.TOKEN_DOUBLE_COLON {
			if last+2 >= len(tokens) || tokens[last+2].Type != lexer.TOKEN_IDENTIFIER {
				break
			}
			last += 2
		}
		return last
	default:
		return -1
	}
}

// nextNonTrivia returns the index of the first non-trivia token at or after
// idx, or -1 if none remains.
func nextNonTrivia(tokens []lexer.Token, idx int) int {
	for j := idx; j < len(tokens); j++ {
		if !isTrivia(tokens[j]) {
			return j
		}
	}
	return -1
}
