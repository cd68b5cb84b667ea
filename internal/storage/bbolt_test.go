package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestBoltOpenAndInitialize(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "passwords.db")

	db, err := OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	info, err := db.Info()
	if err != nil {
		t.Fatalf("Failed to read info: %v", err)
	}
	if info.Version != boltFormatVersion {
		t.Errorf("Version mismatch: got %q, want %q", info.Version, boltFormatVersion)
	}
	if info.Created.IsZero() {
		t.Error("Created time should be set")
	}
	if !info.Modified.IsZero() {
		t.Error("Modified time should be zero before the first write")
	}

	if db.Path() != dbPath {
		t.Errorf("Path mismatch: got %s, want %s", db.Path(), dbPath)
	}
}

func TestBoltReadBeforeWrite(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "passwords.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Read(); !errors.Is(err, ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func TestBoltWriteRead(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "passwords.db")

	db, err := OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.Write([]byte("first")); err != nil {
		t.Fatalf("Failed to write blob: %v", err)
	}
	if err := db.Write([]byte("second")); err != nil {
		t.Fatalf("Failed to write blob: %v", err)
	}

	info, err := db.Info()
	if err != nil {
		t.Fatalf("Failed to read info: %v", err)
	}
	if info.Modified.IsZero() {
		t.Error("Modified time should be set after a write")
	}
	created := info.Created

	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	// Reopen and check persistence
	db, err = OpenBolt(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	data, err := db.Read()
	if err != nil {
		t.Fatalf("Failed to read blob: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("Blob mismatch: got %q, want %q", data, "second")
	}

	info, err = db.Info()
	if err != nil {
		t.Fatalf("Failed to read info: %v", err)
	}
	if !info.Created.Equal(created) {
		t.Errorf("Created time changed on reopen: got %v, want %v", info.Created, created)
	}
}

func TestBoltCompact(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "passwords.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	payload := bytes.Repeat([]byte("x"), 64*1024)
	for i := 0; i < 10; i++ {
		if err := db.Write(payload); err != nil {
			t.Fatalf("Failed to write blob: %v", err)
		}
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	data, err := db.Read()
	if err != nil {
		t.Fatalf("Failed to read after compact: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("Blob changed after compaction")
	}

	// Database must remain writable after compaction
	if err := db.Write([]byte("after")); err != nil {
		t.Fatalf("Failed to write after compact: %v", err)
	}
}
