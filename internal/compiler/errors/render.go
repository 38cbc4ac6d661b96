package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	locationColor = color.New(color.FgWhite, color.Faint)
	codeColor    = color.New(color.FgMagenta)
)

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityWarning:
		return warningColor
	case SeverityInfo:
		return infoColor
	default:
		return errorColor
	}
}

// RenderTerminal formats a single diagnostic for human-facing CLI output,
// e.g.:
//
//	error[VAL202]: enum "Status" mixes integer and string discriminants
//	  --> billing/core.pld:12:3
//	  suggestion: pick one discriminant kind for every variant
func RenderTerminal(d *Diagnostic) string {
	var b strings.Builder
	severityColor(d.Severity).Fprint(&b, string(d.Severity))
	fmt.Fprint(&b, "[")
	codeColor.Fprint(&b, string(d.Code))
	fmt.Fprintf(&b, "]: %s\n", d.Message)
	if d.File != "" {
		locationColor.Fprintf(&b, "  --> %s:%d:%d\n", d.File, d.Line, d.Column)
	}
	if d.Expected != "" || d.Actual != "" {
		fmt.Fprintf(&b, "  expected %s, found %s\n", d.Expected, d.Actual)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "  suggestion: %s\n", d.Suggestion)
	}
	return b.String()
}

// RenderTerminalList formats a full diagnostic list plus a trailing
// summary line.
func RenderTerminalList(l List) string {
	var b strings.Builder
	for _, d := range l {
		b.WriteString(RenderTerminal(d))
	}
	errs, warnings, infos := l.Counts()
	fmt.Fprintf(&b, "%d error(s), %d warning(s), %d info\n", errs, warnings, infos)
	return b.String()
}
