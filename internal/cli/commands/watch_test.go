package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pld-lang/pld/internal/cli/config"
	"github.com/pld-lang/pld/internal/tooling"
	"github.com/pld-lang/pld/internal/watch"
)

func TestWatchCommand_Creation(t *testing.T) {
	cmd := NewWatchCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "watch", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestWatchCommand_Flags(t *testing.T) {
	cmd := NewWatchCommand()

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "4173", portFlag.DefValue)

	verboseFlag := cmd.Flags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
}

func TestWatchCommand_CustomPort(t *testing.T) {
	cmd := NewWatchCommand()
	require.NoError(t, cmd.Flags().Set("port", "9100"))
	assert.Equal(t, "9100", cmd.Flags().Lookup("port").Value.String())
}

func TestWatchCommand_RequiresMatchingSources(t *testing.T) {
	tmpDir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(oldDir)

	cmd := NewWatchCommand()
	err = cmd.RunE(cmd, []string{})
	assert.Error(t, err, "watch should fail fast when no .pld files match sources.include")
}

func TestRebuildAndNotify_NoErrorsOnCleanSchema(t *testing.T) {
	tmpDir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(oldDir)

	schemaPath := filepath.Join(tmpDir, "core.pld")
	require.NoError(t, os.WriteFile(schemaPath, []byte("namespace core;\nstruct User { id: str }\n"), 0o644))

	manifest, err := config.Load()
	require.NoError(t, err)

	paths, err := resolveManifestSources(manifest)
	require.NoError(t, err)

	rc, diags, err := buildContext(paths)
	require.NoError(t, err)
	require.False(t, diags.HasErrors())

	api := tooling.New(rc)
	ds := watch.NewDiagnosticServer()
	defer ds.Close()

	require.NoError(t, rebuildAndNotify(api, manifest, ds, paths, false))
	assert.Empty(t, api.Diagnostics(""))
}

func TestRebuildAndNotify_ReportsDanglingReference(t *testing.T) {
	tmpDir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(oldDir)

	schemaPath := filepath.Join(tmpDir, "core.pld")
	require.NoError(t, os.WriteFile(schemaPath, []byte("namespace core;\nstruct User { id: Missing }\n"), 0o644))

	manifest, err := config.Load()
	require.NoError(t, err)

	paths, err := resolveManifestSources(manifest)
	require.NoError(t, err)

	rc, diags, err := buildContext(paths)
	require.NoError(t, err)
	require.False(t, diags.HasErrors())

	api := tooling.New(rc)
	ds := watch.NewDiagnosticServer()
	defer ds.Close()

	require.NoError(t, rebuildAndNotify(api, manifest, ds, paths, false))
	assert.NotEmpty(t, api.Diagnostics(""))
}
