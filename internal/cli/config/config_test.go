package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempProject(t *testing.T, yaml string) func() {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pld.yml"), []byte(yaml), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { os.Chdir(wd) }
}

func TestLoadAppliesDefaultsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	m, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.pld"}, m.Sources.Include)
	assert.Equal(t, []string{"types"}, m.Targets)
	assert.Equal(t, []string{"rust"}, m.Languages)
}

func TestLoadReadsManifestFile(t *testing.T) {
	cleanup := withTempProject(t, `
sources:
  include: ["schemas/**/*.pld"]
  exclude: ["schemas/draft/**"]
targets: ["types", "client"]
languages: ["rust", "typescript"]
language:
  rust:
    output_dir: gen/rust
    mem: false
`)
	defer cleanup()

	m, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"schemas/**/*.pld"}, m.Sources.Include)
	assert.Equal(t, []string{"schemas/draft/**"}, m.Sources.Exclude)
	assert.ElementsMatch(t, []string{"types", "client"}, m.Targets)
	assert.ElementsMatch(t, []string{"rust", "typescript"}, m.Languages)
	assert.Equal(t, "gen/rust", m.Language["rust"].OutputDir)
}

func TestLoadRejectsUnknownTarget(t *testing.T) {
	cleanup := withTempProject(t, "targets: [\"bogus\"]\n")
	defer cleanup()

	_, err := config.Load()
	assert.Error(t, err)
}

func TestInProjectAndProjectRoot(t *testing.T) {
	cleanup := withTempProject(t, "targets: [\"types\"]\n")
	defer cleanup()

	assert.True(t, config.InProject())
	root, err := config.ProjectRoot()
	require.NoError(t, err)
	assert.NotEmpty(t, root)
}
