// Package errors provides structured diagnostics for the pld compiler:
// error codes, categories, and dual JSON/terminal rendering shared by the
// CLI, the LSP server, and the watch/introspection surfaces.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/pld-lang/pld/internal/compiler/source"
)

// Code is a unique, stable diagnostic code, e.g. "SYN001" or "VAL203".
type Code string

// Category groups diagnostics by the compiler pass that raised them.
type Category string

const (
	CategorySyntax     Category = "syntax"
	CategoryResolution Category = "resolution"
	CategoryValidation Category = "validation"
	CategoryVersion    Category = "version"
	CategoryFormat     Category = "format"
)

// Severity indicates how a diagnostic should affect the overall compile
// result. Rule overrides (see the formatter package) select from a finer
// silent/info/warn/error scale that collapses to this type at the
// diagnostic boundary.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one structured compiler error, warning, or info message.
type Diagnostic struct {
	Code          Code        `json:"code"`
	Category      Category    `json:"category"`
	Severity      Severity    `json:"severity"`
	Message       string      `json:"message"`
	Span          source.Span `json:"-"`
	File          string      `json:"file,omitempty"`
	Line          int         `json:"line,omitempty"`
	Column        int         `json:"column,omitempty"`
	Expected      string      `json:"expected,omitempty"`
	Actual        string      `json:"actual,omitempty"`
	Suggestion    string      `json:"suggestion,omitempty"`
	Documentation string      `json:"documentation,omitempty"`
}

func (d *Diagnostic) Error() string { return d.Message }

// WithSuggestion attaches a human-facing fix hint.
func (d *Diagnostic) WithSuggestion(s string) *Diagnostic {
	d.Suggestion = s
	return d
}

// WithExpectedActual attaches "expected X, found Y" detail.
func (d *Diagnostic) WithExpectedActual(expected, actual string) *Diagnostic {
	d.Expected = expected
	d.Actual = actual
	return d
}

func documentationURL(code Code) string {
	return fmt.Sprintf("https://docs.pld-lang.dev/errors/%s", code)
}

func newDiagnostic(code Code, category Category, severity Severity, message string, span source.Span) *Diagnostic {
	d := &Diagnostic{
		Code:          code,
		Category:      category,
		Severity:      severity,
		Message:       message,
		Span:          span,
		Documentation: documentationURL(code),
	}
	if span.File != nil {
		d.File = span.File.Path
		d.Line = span.Pos.Line
		d.Column = span.Pos.Column
	}
	return d
}

// List is an ordered collection of diagnostics, typically the accumulated
// result of a lexer, parser, resolver, or validator pass.
type List []*Diagnostic

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	return fmt.Sprintf("%d diagnostic(s), first: %s", len(l), l[0].Message)
}

// HasErrors reports whether the list contains any SeverityError entries.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Counts tallies diagnostics by severity.
func (l List) Counts() (errs, warnings, infos int) {
	for _, d := range l {
		switch d.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return
}

// ToJSON renders the list as an indented JSON array, the machine-readable
// form consumed by the introspection HTTP surface and LSP clients.
func (l List) ToJSON() (string, error) {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
