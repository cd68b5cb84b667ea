// Package model defines the in-memory credential database.
//
// A Database is an ordered set of named categories; each Category is an
// ordered set of services mapped to a Record. Both levels iterate in
// insertion order, and overwriting an existing service keeps its position.
// That order is the contract behind first-match lookups, search result
// merging and CSV export.
//
// Values returned from accessors are copies; mutating them does not change
// the database.
package model
