package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

func TestLocalWatcher_Watch(t *testing.T) {
	t.Run("emits changed java files", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		root := t.TempDir()

		changes, _, err := NewLocalWatcher(NewLocalSourceFSAdapter()).Watch(ctx, []m.Path{m.Path(root + "/...")})
		require.NoError(t, err)

		writeTestFile(t, filepath.Join(root, "notes.txt"), "ignored\n")
		target := filepath.Join(root, "A.java")
		writeTestFile(t, target, "class A {}\n")

		select {
		case path := <-changes:
			assert.Equal(t, m.Path(target), path)
		case <-time.After(5 * time.Second):
			t.Fatal("no change reported")
		}
	})

	t.Run("follows new directories under recursive roots", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		root := t.TempDir()

		changes, _, err := NewLocalWatcher(NewLocalSourceFSAdapter()).Watch(ctx, []m.Path{m.Path(root + "/...")})
		require.NoError(t, err)

		sub := filepath.Join(root, "sub")
		mustMkdir(t, sub)

		target := filepath.Join(sub, "B.java")

		assert.Eventually(t, func() bool {
			writeTestFile(t, target, "class B {}\n")

			for {
				select {
				case path := <-changes:
					if path == m.Path(target) {
						return true
					}
				case <-time.After(100 * time.Millisecond):
					return false
				}
			}
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("channels close with the context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		changes, errs, err := NewLocalWatcher(NewLocalSourceFSAdapter()).Watch(ctx, []m.Path{m.Path(t.TempDir())})
		require.NoError(t, err)

		cancel()

		assert.Eventually(t, func() bool {
			_, open := <-changes
			return !open
		}, 5*time.Second, 10*time.Millisecond)

		_, open := <-errs
		assert.False(t, open)
	})

	t.Run("missing root fails", func(t *testing.T) {
		_, _, err := NewLocalWatcher(NewLocalSourceFSAdapter()).Watch(context.Background(), []m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))})
		assert.Error(t, err)
	})
}

func TestIsJavaEvent(t *testing.T) {
	assert.True(t, isJavaEvent(fsnotify.Event{Name: "A.java", Op: fsnotify.Write}))
	assert.True(t, isJavaEvent(fsnotify.Event{Name: "A.java", Op: fsnotify.Remove}))
	assert.False(t, isJavaEvent(fsnotify.Event{Name: "A.java", Op: fsnotify.Chmod}))
	assert.False(t, isJavaEvent(fsnotify.Event{Name: "A.kt", Op: fsnotify.Write}))
}

func TestUnderRecursiveRoot(t *testing.T) {
	roots := map[string]bool{"/src": true}

	assert.True(t, underRecursiveRoot("/src/a/b", roots))
	assert.False(t, underRecursiveRoot("/other/a", roots))
	assert.True(t, underRecursiveRoot("sub/x", map[string]bool{".": true}))
}
