// Package schema defines the category layout of a credential database and
// migrates databases written by the positional-category schema.
package schema

import (
	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/model"
)

// DefaultCategories is the category set every database contains, in order
var DefaultCategories = []string{
	"Internet",
	"Gaming",
	"Coding",
	"Shopping",
	"Social",
	"Computer",
	"World",
}

// LegacyCategories are the positional identifiers of the earlier schema.
// LegacyCategories[i] maps to DefaultCategories[i]; identifiers past the end
// of DefaultCategories have no counterpart.
var LegacyCategories = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

// EnsureDefaults appends every missing default category as empty.
// It reports whether the database changed.
func EnsureDefaults(db *model.Database) bool {
	changed := false
	for _, name := range DefaultCategories {
		if _, created := db.EnsureCategory(name); created {
			changed = true
		}
	}
	return changed
}

// Migrate folds legacy categories into their index-aligned default category
// and removes the legacy keys. Services already present in the target are
// overwritten. A legacy category with no default counterpart is dropped
// together with its services, and a warning is logged.
//
// Migrate is idempotent and reports whether the database changed.
func Migrate(db *model.Database, log *zap.Logger) bool {
	if log == nil {
		log = zap.NewNop()
	}

	changed := false
	for i, legacy := range LegacyCategories {
		src, ok := db.Category(legacy)
		if !ok {
			continue
		}
		changed = true

		if i >= len(DefaultCategories) {
			log.Warn("dropping legacy category with no current counterpart",
				zap.String("category", legacy),
				zap.Int("services_lost", src.Len()))
			db.RemoveCategory(legacy)
			continue
		}

		target := DefaultCategories[i]
		dst, _ := db.EnsureCategory(target)
		for _, e := range src.Entries() {
			dst.Put(e.Service, e.Record)
		}
		db.RemoveCategory(legacy)

		log.Info("migrated legacy category",
			zap.String("from", legacy),
			zap.String("to", target),
			zap.Int("services", src.Len()))
	}
	return changed
}
