package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

// Watcher reports Java files that change under a set of path patterns.
type Watcher interface {
	// Watch starts watching and returns a channel of changed file paths and a
	// channel of watch errors. Both channels are closed when ctx is done.
	Watch(ctx context.Context, paths []m.Path) (<-chan m.Path, <-chan error, error)
}

// LocalWatcher implements Watcher with fsnotify.
type LocalWatcher struct {
	fs SourceFSAdapter
}

// NewLocalWatcher constructs a LocalWatcher that walks directories with fs.
func NewLocalWatcher(fs SourceFSAdapter) *LocalWatcher {
	return &LocalWatcher{fs: fs}
}

// Watch registers every directory named by paths. Recursive patterns register
// their whole tree, and directories created later are added as they appear.
func (w *LocalWatcher) Watch(ctx context.Context, paths []m.Path) (<-chan m.Path, <-chan error, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("Failed to create watcher", "error", err)
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}

	recursiveRoots := map[string]bool{}

	for _, pattern := range paths {
		root, recursive := splitPattern(pattern)

		if err := w.add(ctx, watcher, root, recursive); err != nil {
			_ = watcher.Close()
			return nil, nil, err
		}

		if recursive {
			recursiveRoots[filepath.Clean(root)] = true
		}
	}

	changes := make(chan m.Path)
	errs := make(chan error, 1)

	go func() {
		defer close(changes)
		defer close(errs)
		defer func() {
			_ = watcher.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Create) && underRecursiveRoot(event.Name, recursiveRoots) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := w.add(ctx, watcher, event.Name, true); err != nil {
							slog.Warn("Failed to watch new directory", "path", event.Name, "error", err)
						}

						continue
					}
				}

				if !isJavaEvent(event) {
					continue
				}

				slog.Debug("Detected change", "path", event.Name, "op", event.Op.String())

				select {
				case <-ctx.Done():
					return
				case changes <- m.Path(event.Name):
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				slog.Error("Watcher error", "error", err)

				select {
				case errs <- err:
				default:
				}
			}
		}
	}()

	return changes, errs, nil
}

func (w *LocalWatcher) add(ctx context.Context, watcher *fsnotify.Watcher, root string, recursive bool) error {
	info, err := w.fs.FileInfo(ctx, m.Path(root))
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if !info.IsDir() {
		return w.addPath(watcher, filepath.Dir(root))
	}

	if !recursive {
		return w.addPath(watcher, root)
	}

	err = w.fs.Walk(ctx, m.Path(root), true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		return w.addPath(watcher, path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	return nil
}

func (w *LocalWatcher) addPath(watcher *fsnotify.Watcher, path string) error {
	if err := watcher.Add(path); err != nil {
		slog.Error("Failed to watch directory", "path", path, "error", err)
		return fmt.Errorf("watch %s: %w", path, err)
	}

	slog.Debug("Watching directory", "path", path)

	return nil
}

func isJavaEvent(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".java") {
		return false
	}

	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func underRecursiveRoot(path string, roots map[string]bool) bool {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if roots[dir] {
			return true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
	}
}
