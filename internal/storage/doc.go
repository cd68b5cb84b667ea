// Package storage persists the encrypted credential blob.
//
// A Backend stores exactly one opaque value and replaces it as a whole on
// every write. Two implementations exist:
//   - FileBackend: a plain file replaced via temp file + fsync + rename
//   - BoltBackend: a BBolt database with two buckets
//
// BoltBackend bucket layout:
//   - config: format version, created/modified timestamps (unencrypted)
//   - blob: the encrypted database under a single key
//
// Neither backend interprets the bytes it stores. Both guarantee that a
// reader sees either the previous blob or the new one, never a partial write.
package storage
