package formatter

import (
	"strings"

	"github.com/pld-lang/pld/internal/compiler/lexer"
)

// commentNewlineRule inserts a newline immediately after a single-line
// (`//`) comment when one isn't already present, so a following token can
// never be dragged onto the comment's line.
var commentNewlineRule = Rule{
	Code:         "FMT002",
	Name:         "newline-after-line-comment",
	Description:  "insert a newline after a single-line comment",
	Group:        "comments",
	DefaultLevel: LevelError,
	FixPolicy:    FixSafe,
	Analyze:      analyzeCommentNewline,
}

func analyzeCommentNewline(tokens []lexer.Token) []Edit {
	var edits []Edit
	for i, tok := range tokens {
		if tok.Type != lexer.TOKEN_COMMENT || strings.HasPrefix(tok.Lexeme, "/*") {
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Type == lexer.TOKEN_NEWLINE {
			continue
		}
		edits = append(edits, Edit{
			Kind:   EditInsert,
			Start:  i + 1,
			Tokens: []lexer.Token{{Type: lexer.TOKEN_NEWLINE, Lexeme: "\n"}},
			Rule:   "newline-after-line-comment",
			Detail: "missing newline after line comment",
		})
	}
	return edits
}
