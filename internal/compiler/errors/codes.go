package errors

import (
	"fmt"

	"github.com/pld-lang/pld/internal/compiler/source"
)

// Syntax errors (SYN0xx) — raised by the lexer and parser.

func NewSyntaxError(span source.Span, message string) *Diagnostic {
	return newDiagnostic("SYN001", CategorySyntax, SeverityError, message, span)
}

func NewUnexpectedToken(span source.Span, expected, found string) *Diagnostic {
	d := newDiagnostic("SYN002", CategorySyntax, SeverityError,
		fmt.Sprintf("unexpected token: expected %s, found %s", expected, found), span)
	return d.WithExpectedActual(expected, found)
}

func NewUnterminatedGroup(span source.Span, open string) *Diagnostic {
	return newDiagnostic("SYN003", CategorySyntax, SeverityError,
		fmt.Sprintf("unterminated group starting with %q", open), span)
}

// NewAmbiguousTypeHead builds the diagnostic for a type expression that
// could be parsed more than one way (e.g. a bare `oneof` used where a
// named declaration was expected, or vice versa). The parser does not
// call it: malformed type expressions are reported with NewSyntaxError.
func NewAmbiguousTypeHead(span source.Span, detail string) *Diagnostic {
	return newDiagnostic("SYN004", CategorySyntax, SeverityError,
		fmt.Sprintf("ambiguous type expression: %s", detail), span)
}

// Resolution errors (RES1xx) — raised by the resolver.

func NewUnresolvedImport(span source.Span, path string) *Diagnostic {
	return newDiagnostic("RES101", CategoryResolution, SeverityError,
		fmt.Sprintf("cannot resolve import %q", path), span).
		WithSuggestion("check that the namespace is declared in an included source file")
}

func NewUnresolvedReference(span source.Span, name string) *Diagnostic {
	return newDiagnostic("RES102", CategoryResolution, SeverityError,
		fmt.Sprintf("undefined type %q", name), span)
}

func NewImportCycle(span source.Span, cycle []string) *Diagnostic {
	return newDiagnostic("RES103", CategoryResolution, SeverityError,
		fmt.Sprintf("import cycle detected: %v", cycle), span)
}

// Validation errors (VAL2xx) — raised by the validator.

func NewNamespaceConflict(span source.Span, name, other string) *Diagnostic {
	return newDiagnostic("VAL201", CategoryValidation, SeverityError,
		fmt.Sprintf("%q is already declared in this namespace (see %s)", name, other), span)
}

func NewEnumDiscriminantMismatch(span source.Span, enumName string) *Diagnostic {
	return newDiagnostic("VAL202", CategoryValidation, SeverityError,
		fmt.Sprintf("enum %q mixes integer and string discriminants", enumName), span)
}

func NewEnumNonContiguous(span source.Span, enumName, variant string) *Diagnostic {
	return newDiagnostic("VAL203", CategoryValidation, SeverityError,
		fmt.Sprintf("enum %q variant %q breaks discriminant contiguity", enumName, variant), span)
}

func NewDanglingReference(span source.Span, typeName string) *Diagnostic {
	return newDiagnostic("VAL204", CategoryValidation, SeverityError,
		fmt.Sprintf("type %q is referenced but never declared or imported", typeName), span)
}

// Version errors (VER3xx) — raised by the validator's version-agreement
// pass.

func NewVersionConflict(span source.Span, outer, inner int64) *Diagnostic {
	return newDiagnostic("VER301", CategoryVersion, SeverityError,
		fmt.Sprintf("version %d conflicts with enclosing version %d", inner, outer), span)
}

func NewVersionMalformed(span source.Span, raw string) *Diagnostic {
	return newDiagnostic("VER302", CategoryVersion, SeverityError,
		fmt.Sprintf("malformed #version attribute: %q", raw), span)
}

// Format diagnostics — wraps a formatter finding as a Diagnostic. The
// formatter itself does not call this; it reports formatter.Finding
// values, and its rules use the codes FMT001..FMT005.

func NewFormatFinding(code Code, span source.Span, severity Severity, message string) *Diagnostic {
	return newDiagnostic(code, CategoryFormat, severity, message, span)
}
