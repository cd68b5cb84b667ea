package storage

import (
	"errors"
	"fmt"
)

const (
	DirPermSecure  = 0700 // Directory: owner rwx only
	FilePermSecure = 0600 // File: owner rw only
)

var (
	ErrNotExist       = errors.New("blob does not exist")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Backend stores a single encrypted blob
type Backend interface {
	// Read returns the stored blob, or ErrNotExist if nothing was written yet
	Read() ([]byte, error)
	// Write replaces the stored blob atomically
	Write(data []byte) error
	// Path returns the location of the underlying file
	Path() string
	Close() error
}

// Backend kinds accepted by Open
const (
	KindFile = "file"
	KindBolt = "bolt"
)

// Open opens a backend of the given kind at path
func Open(kind, path string) (Backend, error) {
	switch kind {
	case KindFile, "":
		return NewFileBackend(path), nil
	case KindBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
