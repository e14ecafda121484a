package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func waitStale(t *testing.T, w *Watcher) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if w.Stale() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("watcher never became stale")
}

func TestWatcher(t *testing.T) {
	t.Run("write marks the set stale and fires callback once", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "doc.txt")
		writeFile(t, path, "original")

		changed := make(chan string, 4)
		w, err := New(func(p string) { changed <- p })
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, w.Watch([]string{path}))
		assert.False(t, w.Stale())

		writeFile(t, path, "updated")
		waitStale(t, w)

		select {
		case p := <-changed:
			assert.Equal(t, path, p)
		case <-time.After(5 * time.Second):
			t.Fatal("callback never fired")
		}

		// further writes do not fire again
		writeFile(t, path, "updated twice")
		time.Sleep(100 * time.Millisecond)
		assert.Empty(t, changed)
	})

	t.Run("watch resets staleness", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "doc.txt")
		writeFile(t, path, "original")

		w, err := New(nil)
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, w.Watch([]string{path}))
		writeFile(t, path, "updated")
		waitStale(t, w)

		require.NoError(t, w.Watch([]string{path}))
		assert.False(t, w.Stale())
	})

	t.Run("watching a missing file is an error", func(t *testing.T) {
		w, err := New(nil)
		require.NoError(t, err)
		defer w.Close()

		err = w.Watch([]string{filepath.Join(t.TempDir(), "nope.txt")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.txt")
	})

	t.Run("close is idempotent", func(t *testing.T) {
		w, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		require.NoError(t, w.Close())
	})
}
