// Package vault provides the credential store engine.
//
// A Store owns an in-memory database loaded through a codec. Every mutating
// operation re-encrypts and rewrites the whole blob before returning; reads
// never touch the disk.
//
// Lookups that omit the category scan categories in insertion order and use
// the first match. Callers must not rely on which category wins when a
// service name exists in several of them.
//
// A Store is not safe for concurrent use, and only one process may open a
// given blob at a time. Nothing enforces this for the file backend.
package vault
