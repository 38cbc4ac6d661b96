package formatter

import "github.com/pld-lang/pld/internal/compiler/lexer"

// structParensRule removes a redundant outer `(` `)` pair that wraps
// nothing but a single `{ ... }` group, e.g. `({ a: str })` -> `{ a: str }`.
var structParensRule = Rule{
	Code:         "FMT004",
	Name:         "no-parens-around-struct-group",
	Description:  "remove redundant parentheses wrapping a single struct group",
	Group:        "paired-tokens",
	DefaultLevel: LevelWarn,
	FixPolicy:    FixSafe,
	Analyze:      analyzeStructParens,
}

func analyzeStructParens(tokens []lexer.Token) []Edit {
	var edits []Edit
	for i, tok := range tokens {
		if tok.Type != lexer.TOKEN_LPAREN {
			continue
		}
		close := matchingDelimiter(tokens, i, lexer.TOKEN_LPAREN, lexer.TOKEN_RPAREN)
		if close < 0 {
			continue
		}
		inner := trimTrivia(tokens[i+1 : close])
		if len(inner) == 0 || inner[0].Type != lexer.TOKEN_LBRACE {
			continue
		}
		braceClose := matchingDelimiter(tokens, i+1+indexOf(tokens, inner[0], i+1), lexer.TOKEN_LBRACE, lexer.TOKEN_RBRACE)
		// The brace group must consume everything up to (modulo trivia) close.
		innerStart := close - len(inner)
		if braceClose != innerStart+len(inner)-1 {
			continue
		}
		edits = append(edits,
			Edit{Kind: EditRemove, Start: i, End: i + 1, Rule: "no-parens-around-struct-group", Detail: "redundant '(' before struct group"},
			Edit{Kind: EditRemove, Start: close, End: close + 1, Rule: "no-parens-around-struct-group", Detail: "redundant ')' after struct group"},
		)
	}
	return edits
}

// matchingDelimiter returns the index of the token matching tokens[open]
// (which must be of type openType) by depth-counting balanced openType/
// closeType pairs, or -1 if unbalanced.
func matchingDelimiter(tokens []lexer.Token, open int, openType, closeType lexer.TokenType) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i].Type {
		case openType:
			depth++
		case closeType:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func trimTrivia(tokens []lexer.Token) []lexer.Token {
	start, end := 0, len(tokens)
	for start < end && isTrivia(tokens[start]) {
		start++
	}
	for end > start && isTrivia(tokens[end-1]) {
		end--
	}
	return tokens[start:end]
}

func isTrivia(t lexer.Token) bool {
	return t.Type == lexer.TOKEN_NEWLINE || t.Type == lexer.TOKEN_COMMENT
}

// indexOf finds the offset of needle within tokens starting the scan at
// absolute position base, returning an offset relative to base.
func indexOf(tokens []lexer.Token, needle lexer.Token, base int) int {
	for i := base; i < len(tokens); i++ {
		if tokens[i].Span == needle.Span {
			return i - base
		}
	}
	return 0
}
