package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDetectsPldFileChanges(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pld-watch-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	testFile := filepath.Join(tmpDir, "billing.pld")
	require.NoError(t, os.WriteFile(testFile, []byte("namespace billing;\n"), 0644))

	var mu sync.Mutex
	var changes [][]string

	watcher, err := NewFileWatcher([]string{tmpDir}, nil, func(files []string) error {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, files)
		return nil
	})
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, watcher.Start())

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(testFile, []byte("namespace billing;\nstruct Invoice {};\n"), 0644))
	time.Sleep(300 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, changes)
}

func TestFileWatcherIgnoresNonPldFiles(t *testing.T) {
	fw := &FileWatcher{}
	assert.True(t, fw.matchesPattern("a.pld"))
	assert.False(t, fw.matchesPattern("README.md"))
}

func TestFileWatcherIgnoresDotfiles(t *testing.T) {
	fw := &FileWatcher{ignored: []string{"*.bak"}}
	assert.True(t, fw.shouldIgnore(".hidden.pld"))
	assert.True(t, fw.shouldIgnore("foo.bak"))
	assert.False(t, fw.shouldIgnore("foo.pld"))
}

func TestDebouncerCoalescesRapidAdds(t *testing.T) {
	var mu sync.Mutex
	var called bool
	var files []string

	d := NewDebouncer(50 * time.Millisecond)
	d.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		called = true
		files = f
	})

	d.Add("a.pld")
	d.Add("b.pld")
	d.Add("a.pld")

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, called)
	assert.ElementsMatch(t, []string{"a.pld", "b.pld"}, files)
}
