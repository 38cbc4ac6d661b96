package tooling_test

import (
	"testing"

	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/tooling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDocumentAndDiagnostics(t *testing.T) {
	rc := resolver.New()
	api := tooling.New(rc)

	_, err := api.UpdateDocument("a.pld", "namespace t;\nenum E { A = 1, B = \"x\" };\n")
	require.NoError(t, err)

	diags := api.Diagnostics("a.pld")
	require.NotEmpty(t, diags)
	assert.Equal(t, "VAL202", string(diags[0].Code))
}

func TestDefinitionAndHover(t *testing.T) {
	rc := resolver.New()
	api := tooling.New(rc)

	_, err := api.UpdateDocument("a.pld", "namespace x;\nstruct P { q: i32; };\n")
	require.NoError(t, err)

	decl, ok := api.Definition("x", []string{"P"})
	require.True(t, ok)
	assert.Equal(t, "P", decl.DeclName())

	hover, ok := api.Hover("x", []string{"P"})
	require.True(t, ok)
	assert.Contains(t, hover, "struct P")
}

func TestHoverMissingSymbol(t *testing.T) {
	rc := resolver.New()
	api := tooling.New(rc)
	_, err := api.UpdateDocument("a.pld", "namespace x;\nstruct P { q: i32; };\n")
	require.NoError(t, err)

	_, ok := api.Hover("x", []string{"Missing"})
	assert.False(t, ok)
}
