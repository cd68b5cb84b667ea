package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket = []byte("config") // Format version, timestamps - unencrypted
	BlobBucket   = []byte("blob")   // Encrypted database
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
)

// BlobKey is the key of the single value in BlobBucket
var BlobKey = []byte("database")

const boltFormatVersion = "1"

// openTimeout bounds how long Open waits for another process holding the file lock
const openTimeout = time.Second

// BoltBackend keeps the blob inside a BBolt database
type BoltBackend struct {
	db *bolt.DB
}

// Info describes a bolt-backed store
type Info struct {
	Version  string
	Created  time.Time
	Modified time.Time
}

// OpenBolt opens or creates a bolt-backed store at path
func OpenBolt(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), DirPermSecure); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(path, FilePermSecure, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	b := &BoltBackend{db: db}
	if err := b.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// initialize creates the bucket structure on first open
func (b *BoltBackend) initialize() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, BlobBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte(boltFormatVersion)); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		return config.Put(ConfigCreated, created)
	})
}

// Read returns the stored blob
func (b *BoltBackend) Read() ([]byte, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		blobs := tx.Bucket(BlobBucket)
		if blobs == nil {
			return ErrNotExist
		}
		v := blobs.Get(BlobKey)
		if v == nil {
			return ErrNotExist
		}
		// Make a copy since the slice is only valid during the transaction
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// Write replaces the stored blob and updates the modified timestamp in one transaction
func (b *BoltBackend) Write(data []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(BlobBucket).Put(BlobKey, data); err != nil {
			return fmt.Errorf("failed to store blob: %w", err)
		}
		modified, _ := time.Now().MarshalBinary()
		return tx.Bucket(ConfigBucket).Put(ConfigModified, modified)
	})
}

// Path returns the database file path
func (b *BoltBackend) Path() string {
	return b.db.Path()
}

// Close closes the database
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

// Info returns the format version and timestamps from the config bucket.
// Modified is zero until the first Write.
func (b *BoltBackend) Info() (Info, error) {
	var info Info
	err := b.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		info.Version = string(config.Get(ConfigVersion))
		if data := config.Get(ConfigCreated); data != nil {
			if err := info.Created.UnmarshalBinary(data); err != nil {
				return fmt.Errorf("invalid created time: %w", err)
			}
		}
		if data := config.Get(ConfigModified); data != nil {
			if err := info.Modified.UnmarshalBinary(data); err != nil {
				return fmt.Errorf("invalid modified time: %w", err)
			}
		}
		return nil
	})
	return info, err
}

// Compact creates a compacted copy of the database, removing unused space.
// Every blob write leaves free pages behind, so the file only grows until compacted.
func (b *BoltBackend) Compact() error {
	srcPath := b.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, FilePermSecure, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = b.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := b.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// rename(2) replaces the destination atomically
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Remove(tmpPath)
		if reopenErr := b.reopen(srcPath); reopenErr != nil {
			return fmt.Errorf("failed to replace database: %w (reopen: %v)", err, reopenErr)
		}
		return fmt.Errorf("failed to replace database: %w", err)
	}

	return b.reopen(srcPath)
}

func (b *BoltBackend) reopen(path string) error {
	db, err := bolt.Open(path, FilePermSecure, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	b.db = db
	return nil
}
