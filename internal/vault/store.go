package vault

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/schema"
)

// DefaultCategory receives records added without an explicit category
const DefaultCategory = "Internet"

var ErrEmptyService = errors.New("service name is required")

// Codec persists the database. *codec.Codec implements it.
type Codec interface {
	DecryptDatabase() (*model.Database, error)
	EncryptDatabase(db *model.Database) error
}

// Store is the credential store engine
type Store struct {
	codec Codec
	db    *model.Database
	log   *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for migration and persistence events
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// Open loads the database through codec, adds missing default categories,
// migrates legacy categories and persists the result if anything changed.
// Decryption and parse failures are returned unchanged; Open never
// substitutes an empty database for an unreadable blob.
func Open(codec Codec, opts ...Option) (*Store, error) {
	s := &Store{codec: codec, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	db, err := codec.DecryptDatabase()
	if err != nil {
		return nil, err
	}
	s.db = db

	added := schema.EnsureDefaults(db)
	migrated := schema.Migrate(db, s.log)
	if added || migrated {
		if err := s.persist(); err != nil {
			return nil, err
		}
	}

	s.log.Debug("store opened",
		zap.Int("categories", len(db.Names())),
		zap.Bool("migrated", migrated))
	return s, nil
}

func (s *Store) persist() error {
	if err := s.codec.EncryptDatabase(s.db); err != nil {
		return fmt.Errorf("failed to save database: %w", err)
	}
	s.log.Debug("database saved")
	return nil
}

// commit saves the database, restoring prev in memory if the save fails
func (s *Store) commit(prev *model.Database) error {
	if err := s.persist(); err != nil {
		s.db = prev
		return err
	}
	return nil
}

// lookup finds service in category, or in the first category that has it
// when category is empty.
func (s *Store) lookup(service, category string) (*model.Category, bool) {
	if category != "" {
		c, ok := s.db.Category(category)
		if !ok {
			return nil, false
		}
		if _, ok := c.Get(service); !ok {
			return nil, false
		}
		return c, true
	}
	return lo.Find(s.db.Categories(), func(c *model.Category) bool {
		_, ok := c.Get(service)
		return ok
	})
}

// Add stores rec at (category, service), replacing any existing record.
// An empty category means DefaultCategory; a missing category is created.
// If the save fails the store is left as it was.
func (s *Store) Add(category, service string, rec model.Record) error {
	if service == "" {
		return ErrEmptyService
	}
	prev := s.db.Clone()
	s.put(category, service, rec, DefaultCategory)
	return s.commit(prev)
}

func (s *Store) put(category, service string, rec model.Record, fallback string) {
	if category == "" {
		category = fallback
	}
	c, _ := s.db.EnsureCategory(category)
	c.Put(service, rec)
}

// Get returns the record for service. An empty category searches all
// categories and returns the first match.
func (s *Store) Get(service, category string) (model.Record, bool) {
	c, ok := s.lookup(service, category)
	if !ok {
		return model.Record{}, false
	}
	return c.Get(service)
}

// UpdateRequest holds the new values for Update
type UpdateRequest struct {
	// Category restricts the lookup; empty means first match
	Category string
	Username string
	Password string
	// Tags replaces the tag list when non-nil, including with an empty slice.
	// A nil Tags keeps the existing tags.
	Tags []string
}

// Update replaces the credentials of an existing record. It reports false,
// without saving, when no record matches; it never creates one. A failed
// save leaves the old record in place.
func (s *Store) Update(service string, req UpdateRequest) (bool, error) {
	c, ok := s.lookup(service, req.Category)
	if !ok {
		return false, nil
	}

	prev := s.db.Clone()
	rec, _ := c.Get(service)
	rec.Username = req.Username
	rec.Password = req.Password
	if req.Tags != nil {
		rec.Tags = req.Tags
	}
	c.Put(service, rec)

	if err := s.commit(prev); err != nil {
		return true, err
	}
	return true, nil
}

// Delete removes the first record matching service. The category itself is kept.
func (s *Store) Delete(service, category string) (bool, error) {
	c, ok := s.lookup(service, category)
	if !ok {
		return false, nil
	}
	prev := s.db.Clone()
	c.Delete(service)

	if err := s.commit(prev); err != nil {
		return true, err
	}
	return true, nil
}

// Query filters Search results
type Query struct {
	// Keyword is matched case-insensitively as a substring of the service name
	Keyword string
	// Category restricts the search; empty means all categories
	Category string
	// Tag requires case-insensitive exact membership in the record's tags
	Tag string
}

// Search returns matching records keyed by service name. When the same
// service matches in several categories, the last one in category order
// wins.
func (s *Store) Search(q Query) map[string]model.Record {
	keyword := strings.ToLower(q.Keyword)
	results := make(map[string]model.Record)

	for _, c := range s.db.Categories() {
		if q.Category != "" && c.Name != q.Category {
			continue
		}
		for _, e := range c.Entries() {
			if !strings.Contains(strings.ToLower(e.Service), keyword) {
				continue
			}
			if q.Tag != "" && !e.Record.HasTag(q.Tag) {
				continue
			}
			results[e.Service] = e.Record
		}
	}
	return results
}

// ListCategories returns category names in insertion order
func (s *Store) ListCategories() []string {
	return s.db.Names()
}

// CategoryStats summarizes one category
type CategoryStats struct {
	Name     string
	Services int
}

// Stats returns the service count of every category in insertion order
func (s *Store) Stats() []CategoryStats {
	return lo.Map(s.db.Categories(), func(c *model.Category, _ int) CategoryStats {
		return CategoryStats{Name: c.Name, Services: c.Len()}
	})
}
