package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// FileBackend keeps the blob in a single file
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend for the file at path.
// Nothing is touched on disk until the first Write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Read returns the file contents
func (f *FileBackend) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Write replaces the file atomically. The data is written to a temporary
// file in the same directory, synced, and renamed over the old file, so a
// crash leaves either the old or the new blob in place.
func (f *FileBackend) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), DirPermSecure); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

// Path returns the blob file path
func (f *FileBackend) Path() string {
	return f.path
}

// Close is a no-op; the file is only open during Read and Write
func (f *FileBackend) Close() error {
	return nil
}
