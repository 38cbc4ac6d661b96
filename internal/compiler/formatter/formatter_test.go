package formatter_test

import (
	"testing"

	"github.com/pld-lang/pld/internal/compiler/formatter"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAddsMissingTrailingNewline(t *testing.T) {
	file := source.New("a.pld", "namespace a;")
	out, findings, err := formatter.Format(file, formatter.Options{})
	require.NoError(t, err)
	assert.Equal(t, "namespace a;\n", out)
	assert.NotEmpty(t, findings)
}

func TestFormatDryRunReportsWithoutMutating(t *testing.T) {
	file := source.New("a.pld", "namespace a;")
	out, findings, err := formatter.Format(file, formatter.Options{Dry: true})
	require.NoError(t, err)
	assert.Equal(t, file.Text, out)
	assert.NotEmpty(t, findings)
	for _, f := range findings {
		assert.False(t, f.Applied)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	file := source.New("a.pld", "namespace a;")
	first, _, err := formatter.Format(file, formatter.Options{})
	require.NoError(t, err)

	second, findings, err := formatter.Format(source.New("a.pld", first), formatter.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	for _, f := range findings {
		assert.False(t, f.Applied, "re-formatting already-clean output should find nothing to apply")
	}
}

func TestFormatInsertsParensAroundOneofBeforeArraySuffix(t *testing.T) {
	file := source.New("a.pld", "namespace t;\ntype u = oneof i32 | f32[];\n")
	out, findings, err := formatter.Format(file, formatter.Options{})
	require.NoError(t, err)
	assert.Equal(t, "namespace t;\ntype u = (oneof i32 | f32)[];\n", out)
	assert.NotEmpty(t, findings)

	again, findings2, err := formatter.Format(source.New("a.pld", out), formatter.Options{})
	require.NoError(t, err)
	assert.Equal(t, out, again)
	for _, f := range findings2 {
		assert.False(t, f.Applied, "re-formatting should not re-wrap an already-parenthesized oneof")
	}
}

func TestFormatLeavesNamedOneofDeclarationAlone(t *testing.T) {
	file := source.New("a.pld", "namespace t;\noneof Shape { circle(f32), square(f32) };\n")
	out, findings, err := formatter.Format(file, formatter.Options{})
	require.NoError(t, err)
	for _, f := range findings {
		assert.NotEqual(t, "parens-around-oneof-before-array-suffix", f.Rule)
	}
	assert.Contains(t, out, "oneof Shape { circle(f32), square(f32) }")
}

func TestFormatSilentOverrideDisablesRule(t *testing.T) {
	file := source.New("a.pld", "namespace a;")
	out, findings, err := formatter.Format(file, formatter.Options{
		Overrides: map[string]formatter.Level{"FMT003": formatter.LevelSilent},
	})
	require.NoError(t, err)
	assert.Equal(t, file.Text, out)
	assert.Empty(t, findings)
}
