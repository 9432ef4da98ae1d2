// Package pkg holds generic helpers used by the onelevel pipelines.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSpillDir is used when NewFileSpill receives an empty directory.
var DefaultSpillDir = filepath.Join(os.TempDir(), "onelevel-spill")

// ErrSpillRemoved is returned by operations on a removed spill.
var ErrSpillRemoved = errors.New("filespill removed")

// FileSpill is an append-only, disk-backed log of items of type T.
// Appends are safe for concurrent use.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	// Close stops further appends. Stored items stay readable.
	Close() error
	// Remove closes the spill and deletes its backing file.
	Remove() error
}

type fileSpill[T any] struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *gob.Encoder
	length  uint64
	removed bool
}

// NewFileSpill creates a spill file for items of type T inside dir.
func NewFileSpill[T any](dir string) (FileSpill[T], error) {
	if dir == "" {
		dir = DefaultSpillDir
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("Failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		slog.Error("Failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("Created filespill", "path", file.Name())

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (f *fileSpill[T]) Path() string {
	return f.path
}

func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removed {
		return ErrSpillRemoved
	}

	if f.file == nil {
		return fmt.Errorf("append to closed filespill %s", f.path)
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("Failed to encode spill item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("encode item: %w", err)
	}

	f.length++

	return nil
}

func (f *fileSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileSpill[T]) Get(index uint64) (T, error) {
	var found T

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStopRange
		}

		return nil
	})
	if errors.Is(err, errStopRange) {
		return found, nil
	}

	if err != nil {
		return found, err
	}

	var zero T

	return zero, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
}

var errStopRange = errors.New("stop range")

func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removed {
		return ErrSpillRemoved
	}

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("Failed to open spill for reading", "path", f.path, "error", err)
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := gob.NewDecoder(file)

	for i := range f.length {
		// gob leaves zero-valued fields untouched, so every item decodes
		// into a fresh value.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("Failed to decode spill item", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closeLocked()
}

func (f *fileSpill[T]) closeLocked() error {
	if f.file == nil {
		return nil
	}

	err := f.file.Close()
	f.file = nil

	if err != nil {
		slog.Error("Failed to close spill", "path", f.path, "error", err)
		return fmt.Errorf("close spill: %w", err)
	}

	slog.Debug("Closed filespill", "path", f.path, "length", f.length)

	return nil
}

func (f *fileSpill[T]) Remove() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removed {
		return nil
	}

	closeErr := f.closeLocked()
	f.removed = true

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove spill: %w", err)
	}

	return closeErr
}
