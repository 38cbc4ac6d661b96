package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/source"
)

func span() source.Span {
	f := source.New("billing/core.pld", "struct Invoice {}")
	return source.Span{File: f, Start: 0, End: 6, Pos: source.Position{Line: 1, Column: 1}}
}

func TestListHasErrorsDistinguishesSeverity(t *testing.T) {
	l := errors.List{
		errors.NewFormatFinding("FMT401", span(), errors.SeverityWarning, "trailing comma"),
	}
	assert.False(t, l.HasErrors())

	l = append(l, errors.NewSyntaxError(span(), "unexpected token"))
	assert.True(t, l.HasErrors())

	errs, warnings, infos := l.Counts()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 0, infos)
}

func TestNewUnexpectedTokenCarriesExpectedActual(t *testing.T) {
	d := errors.NewUnexpectedToken(span(), "IDENTIFIER", "LBRACE")
	assert.Equal(t, "IDENTIFIER", d.Expected)
	assert.Equal(t, "LBRACE", d.Actual)
	assert.Equal(t, errors.CategorySyntax, d.Category)
}

func TestDiagnosticFileLineColumnDerivedFromSpan(t *testing.T) {
	d := errors.NewEnumDiscriminantMismatch(span(), "Status")
	assert.Equal(t, "billing/core.pld", d.File)
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 1, d.Column)
}

func TestRenderTerminalIncludesCodeAndMessage(t *testing.T) {
	d := errors.NewVersionConflict(span(), 2, 1)
	out := errors.RenderTerminal(d)
	assert.Contains(t, out, "VER301")
	assert.Contains(t, out, "conflicts with enclosing version")
}
