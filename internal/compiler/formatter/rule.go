// Package formatter implements pld's token-level formatter: a registry of
// rewrite rules that each analyze a token stream and propose edits, which
// are then sorted by source position and applied in a single pass. Rules
// never re-serialize the AST; they splice the original source around the
// tokens they touch, which is what keeps formatting of untouched regions
// byte-identical and the whole pass idempotent.
package formatter

import "github.com/pld-lang/pld/internal/compiler/lexer"

// Level is the formatter's reporting severity for a rule, independent of
// (but collapsible to) errors.Severity: "silent" means the rule never
// runs, the other three control how a finding is surfaced when the rule
// fires in dry-run mode or under a fix policy that doesn't auto-apply.
type Level string

const (
	LevelSilent Level = "silent"
	LevelInfo   Level = "info"
	LevelWarn   Level = "warn"
	LevelError  Level = "error"
)

// FixPolicy controls whether a rule's proposed edits are applied
// automatically when the formatter runs in applied (non-dry) mode.
type FixPolicy string

const (
	// FixSkip means the rule only ever reports findings; its edits are
	// never applied even in applied mode.
	FixSkip FixPolicy = "skip"
	// FixUnsafe means the rule's edits are applied only when the caller
	// opts in via Options.AllowUnsafe.
	FixUnsafe FixPolicy = "unsafe"
	// FixSafe means the rule's edits are applied whenever the rule runs.
	FixSafe FixPolicy = "safe"
)

// EditKind identifies the shape of a proposed token-stream rewrite.
type EditKind int

const (
	EditInsert EditKind = iota
	EditRemove
	EditReplace
)

// Edit is one proposed rewrite, anchored at token indices into the
// original token stream rather than byte offsets, so multiple rules can
// propose edits independently and have them composed by a single sort.
type Edit struct {
	Kind   EditKind
	Start  int // token index; for Insert, the token the new tokens precede
	End    int // exclusive; unused for Insert
	Tokens []lexer.Token
	Rule   string
	Detail string
}

// Rule is one entry in the formatter's rule registry: metadata plus an
// Analyze function that inspects the full token stream and proposes zero
// or more edits.
type Rule struct {
	Code         string
	Name         string
	Description  string
	Group        string
	DefaultLevel Level
	FixPolicy    FixPolicy
	Analyze      func(tokens []lexer.Token) []Edit
}
