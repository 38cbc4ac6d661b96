package formatter

import "github.com/pld-lang/pld/internal/compiler/lexer"

// fileNewlineRule normalizes trailing newlines so the file ends with
// exactly one: missing terminator is added, runs of several are collapsed.
var fileNewlineRule = Rule{
	Code:         "FMT003",
	Name:         "file-terminating-newline",
	Description:  "file must end with exactly one newline",
	Group:        "file-level",
	DefaultLevel: LevelError,
	FixPolicy:    FixSafe,
	Analyze:      analyzeFileNewline,
}

func analyzeFileNewline(tokens []lexer.Token) []Edit {
	if len(tokens) == 0 {
		return nil
	}
	eof := len(tokens) - 1
	if tokens[eof].Type != lexer.TOKEN_EOF {
		eof = len(tokens)
	}
	if eof == 0 {
		return nil
	}

	run := 0
	for i := eof - 1; i >= 0 && tokens[i].Type == lexer.TOKEN_NEWLINE; i-- {
		run++
	}

	switch {
	case run == 0:
		return []Edit{{
			Kind:   EditInsert,
			Start:  eof,
			Tokens: []lexer.Token{{Type: lexer.TOKEN_NEWLINE, Lexeme: "\n"}},
			Rule:   "file-terminating-newline",
			Detail: "missing terminating newline",
		}}
	case run > 1:
		return []Edit{{
			Kind:   EditRemove,
			Start:  eof - run,
			End:    eof - 1,
			Rule:   "file-terminating-newline",
			Detail: "multiple trailing newlines",
		}}
	default:
		return nil
	}
}
