package formatter

import (
	"sort"

	"github.com/pld-lang/pld/internal/compiler/lexer"
	"github.com/pld-lang/pld/internal/compiler/source"
)

// Registry returns every formatter rule, in a stable order. The CLI's
// `format` command and the formatter's own tests both iterate this list
// rather than hardcoding rule names, so adding a rule only means adding
// its Rule var here.
func Registry() []Rule {
	return []Rule{
		fileNewlineRule,
		commentNewlineRule,
		structParensRule,
		trailingCommaRule,
		oneofArrayParensRule,
	}
}

// Options controls how Format runs.
type Options struct {
	// Dry reports findings without mutating the source text.
	Dry bool
	// AllowUnsafe permits FixUnsafe rules' edits to apply.
	AllowUnsafe bool
	// Overrides maps a rule code to a Level that replaces its
	// DefaultLevel (LevelSilent disables the rule entirely).
	Overrides map[string]Level
}

// Finding is one rule match, whether or not its edit was applied.
type Finding struct {
	Rule    string
	Detail  string
	Applied bool
}

// Format lexes file, runs every non-silent registry rule, and returns
// the reformatted text (unchanged from file.Text in Dry mode) plus the
// findings every rule reported.
func Format(file *source.File, opts Options) (string, []Finding, error) {
	tokens, lexErrs := lexer.New(file).ScanTokens()
	if len(lexErrs) > 0 {
		return file.Text, nil, lexErrs[0]
	}

	var edits []Edit
	var findings []Finding

	for _, rule := range Registry() {
		level := rule.DefaultLevel
		if override, ok := opts.Overrides[rule.Code]; ok {
			level = override
		}
		if level == LevelSilent {
			continue
		}

		for _, e := range rule.Analyze(tokens) {
			e.Rule = rule.Name
			applied := !opts.Dry && (rule.FixPolicy == FixSafe || (rule.FixPolicy == FixUnsafe && opts.AllowUnsafe))
			findings = append(findings, Finding{Rule: rule.Name, Detail: e.Detail, Applied: applied})
			if applied {
				edits = append(edits, e)
			}
		}
	}

	if opts.Dry || len(edits) == 0 {
		return file.Text, findings, nil
	}

	return apply(file, tokens, edits), findings, nil
}

// apply splices edits into the original source text. Edits are sorted by
// start token index (descending) so earlier splices don't invalidate
// later ones' byte offsets — the formatter never re-serializes the whole
// token stream, only the spans the rules actually touched.
func apply(file *source.File, tokens []lexer.Token, edits []Edit) string {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].Start > edits[j].Start })

	text := file.Text
	for _, e := range edits {
		switch e.Kind {
		case EditInsert:
			at := tokenByteOffset(tokens, e.Start, true)
			text = text[:at] + tokensText(e.Tokens) + text[at:]
		case EditRemove:
			start := tokenByteOffset(tokens, e.Start, true)
			end := tokenByteOffset(tokens, e.End-1, false)
			text = text[:start] + text[end:]
		case EditReplace:
			start := tokenByteOffset(tokens, e.Start, true)
			end := tokenByteOffset(tokens, e.End-1, false)
			text = text[:start] + tokensText(e.Tokens) + text[end:]
		}
	}
	return text
}

func tokenByteOffset(tokens []lexer.Token, idx int, start bool) int {
	if idx >= len(tokens) {
		if len(tokens) == 0 {
			return 0
		}
		return tokens[len(tokens)-1].Span.End
	}
	if start {
		return tokens[idx].Span.Start
	}
	return tokens[idx].Span.End
}

func tokensText(tokens []lexer.Token) string {
	var out string
	for _, t := range tokens {
		out += t.Lexeme
	}
	return out
}
