// Package adapter contains the infrastructure adapters of the onelevel CLI:
// filesystem discovery, Java parsing, report persistence and file watching.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

// DefaultInclude matches every Java file below a root.
var DefaultInclude = []string{"**/*.java"}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get resolves path patterns into sources. A trailing "/..." scans
	// recursively, a plain directory scans only its own files, and a file path
	// is taken as is. include holds doublestar globs matched against the path
	// relative to the scanned root; exclude holds regular expressions matched
	// against the full path.
	Get(ctx context.Context, paths []m.Path, include []string, exclude []string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get discovers Java sources for the given path patterns, sorted by path.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, include []string, exclude []string) ([]m.Source, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	if len(include) == 0 {
		include = DefaultInclude
	}

	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern %q", pattern)
		}
	}

	excludeRegexps, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	for _, pattern := range paths {
		root, recursive := splitPattern(pattern)

		found, err := a.collect(ctx, root, recursive, include, excludeRegexps)
		if err != nil {
			return nil, err
		}

		for _, source := range found {
			key := string(source.Origin.FullPath)
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}
			sources = append(sources, source)
		}
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.FullPath < sources[j].Origin.FullPath
	})

	slog.Debug("Discovered sources", "patterns", len(paths), "count", len(sources))

	return sources, nil
}

func (a *LocalSourceFSAdapter) collect(ctx context.Context, root string, recursive bool, include []string, exclude []*regexp.Regexp) ([]m.Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		slog.Error("Failed to stat path", "path", root, "error", err)
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if isExcluded(root, exclude) {
			return nil, nil
		}

		source, err := a.newSource(ctx, root)
		if err != nil {
			return nil, err
		}

		return []m.Source{source}, nil
	}

	var sources []m.Source

	err = a.Walk(ctx, m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || isExcluded(path, exclude) || !matchesInclude(root, path, include) {
			return nil
		}

		source, err := a.newSource(ctx, path)
		if err != nil {
			return err
		}

		sources = append(sources, source)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return sources, nil
}

func (a *LocalSourceFSAdapter) newSource(ctx context.Context, path string) (m.Source, error) {
	hash, err := a.HashFile(ctx, m.Path(path))
	if err != nil {
		return m.Source{}, fmt.Errorf("hash %s: %w", path, err)
	}

	return m.Source{
		Origin: &m.File{
			FullPath:  m.Path(path),
			ShortPath: shortPath(path),
			Hash:      hash,
		},
	}, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr && (!recursive || skipDir(info.Name())) {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// splitPattern turns "dir/..." into (dir, true) and anything else into (path, false).
func splitPattern(pattern m.Path) (string, bool) {
	p := string(pattern)
	if p == "..." {
		return ".", true
	}

	if strings.HasSuffix(p, "/...") {
		root := strings.TrimSuffix(p, "/...")
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return p, false
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func isExcluded(path string, exclude []*regexp.Regexp) bool {
	for _, re := range exclude {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

func matchesInclude(root, path string, include []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

func skipDir(name string) bool {
	switch name {
	case ".git", "build", "target", "node_modules", ".gradle", ".idea":
		return true
	}

	return false
}

func shortPath(path string) m.Path {
	cwd, err := os.Getwd()
	if err != nil {
		return m.Path(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return m.Path(path)
	}

	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return m.Path(path)
	}

	return m.Path(rel)
}
