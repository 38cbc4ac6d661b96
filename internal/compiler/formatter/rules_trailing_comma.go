package formatter

import "github.com/pld-lang/pld/internal/compiler/lexer"

// trailingCommaRule deletes a comma whose next non-whitespace,
// non-comment token is a closing brace.
var trailingCommaRule = Rule{
	Code:         "FMT001",
	Name:         "no-trailing-comma-before-brace",
	Description:  "remove a trailing comma before a closing brace",
	Group:        "trailing-commas",
	DefaultLevel: LevelError,
	FixPolicy:    FixSafe,
	Analyze:      analyzeTrailingComma,
}

func analyzeTrailingComma(tokens []lexer.Token) []Edit {
	var edits []Edit
	for i, tok := range tokens {
		if tok.Type != lexer.TOKEN_COMMA {
			continue
		}
		j := i + 1
		for j < len(tokens) && (tokens[j].Type == lexer.TOKEN_NEWLINE || tokens[j].Type == lexer.TOKEN_COMMENT) {
			j++
		}
		if j < len(tokens) && tokens[j].Type == lexer.TOKEN_RBRACE {
			edits = append(edits, Edit{
				Kind: EditRemove, Start: i, End: i + 1,
				Rule: "no-trailing-comma-before-brace", Detail: "trailing comma before '}'",
			})
		}
	}
	return edits
}
