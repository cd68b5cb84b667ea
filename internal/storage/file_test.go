package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFileReadMissing(t *testing.T) {
	f := NewFileBackend(filepath.Join(t.TempDir(), "passwords.enc"))
	if _, err := f.Read(); !errors.Is(err, ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func TestFileWriteCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "passwords.enc")
	f := NewFileBackend(path)

	if err := f.Write([]byte("blob")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := f.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "blob" {
		t.Errorf("Blob mismatch: got %q", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm&0077 != 0 {
			t.Errorf("Blob should not be group/other accessible, got %o", perm)
		}
	}
}

func TestFileWriteReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passwords.enc")
	f := NewFileBackend(path)

	if err := f.Write([]byte("a much longer first blob")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := f.Write([]byte("short")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := f.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(data) != "short" {
		t.Errorf("Blob mismatch: got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the blob file, found %d entries", len(entries))
	}
}

func TestOpenKinds(t *testing.T) {
	dir := t.TempDir()

	fb, err := Open(KindFile, filepath.Join(dir, "passwords.enc"))
	if err != nil {
		t.Fatalf("Open file backend failed: %v", err)
	}
	if _, ok := fb.(*FileBackend); !ok {
		t.Errorf("Expected *FileBackend, got %T", fb)
	}

	bb, err := Open(KindBolt, filepath.Join(dir, "passwords.db"))
	if err != nil {
		t.Fatalf("Open bolt backend failed: %v", err)
	}
	defer bb.Close()
	if _, ok := bb.(*BoltBackend); !ok {
		t.Errorf("Expected *BoltBackend, got %T", bb)
	}

	if _, err := Open("sqlite", filepath.Join(dir, "x")); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Expected ErrUnknownBackend, got %v", err)
	}
}
