package model

import (
	"strings"

	"github.com/samber/lo"
)

// Record is a stored credential
type Record struct {
	Username string
	Password string
	Tags     []string
}

// Clone returns a deep copy of the record. Tags are never nil in the copy.
func (r Record) Clone() Record {
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	r.Tags = tags
	return r
}

// HasTag reports whether tag is in the record's tag list, ignoring case
func (r Record) HasTag(tag string) bool {
	return lo.ContainsBy(r.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// NormalizeTags trims tags, drops empty ones and removes case-insensitive
// duplicates, keeping the first spelling seen.
func NormalizeTags(tags []string) []string {
	trimmed := lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	})
	return lo.UniqBy(trimmed, strings.ToLower)
}

// Entry pairs a service name with its record
type Entry struct {
	Service string
	Record  Record
}

// Category is an ordered mapping of service name to record
type Category struct {
	Name    string
	entries []Entry
}

// NewCategory creates an empty category
func NewCategory(name string) *Category {
	return &Category{Name: name, entries: make([]Entry, 0)}
}

func (c *Category) find(service string) int {
	_, i, _ := lo.FindIndexOf(c.entries, func(e Entry) bool {
		return e.Service == service
	})
	return i
}

// Put adds or replaces the record for service.
// A replaced service keeps its position.
func (c *Category) Put(service string, rec Record) {
	rec = rec.Clone()
	if i := c.find(service); i >= 0 {
		c.entries[i].Record = rec
		return
	}
	c.entries = append(c.entries, Entry{Service: service, Record: rec})
}

// Get returns a copy of the record stored for service
func (c *Category) Get(service string) (Record, bool) {
	i := c.find(service)
	if i < 0 {
		return Record{}, false
	}
	return c.entries[i].Record.Clone(), true
}

// Delete removes service from the category
func (c *Category) Delete(service string) bool {
	i := c.find(service)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

// Entries returns copies of all entries in insertion order
func (c *Category) Entries() []Entry {
	return lo.Map(c.entries, func(e Entry, _ int) Entry {
		return Entry{Service: e.Service, Record: e.Record.Clone()}
	})
}

// Len returns the number of services in the category
func (c *Category) Len() int {
	return len(c.entries)
}

// Database is the root object: an ordered set of categories
type Database struct {
	categories []*Category
}

// NewDatabase creates a database with no categories
func NewDatabase() *Database {
	return &Database{categories: make([]*Category, 0)}
}

func (d *Database) find(name string) int {
	_, i, _ := lo.FindIndexOf(d.categories, func(c *Category) bool {
		return c.Name == name
	})
	return i
}

// Category returns the named category
func (d *Database) Category(name string) (*Category, bool) {
	i := d.find(name)
	if i < 0 {
		return nil, false
	}
	return d.categories[i], true
}

// EnsureCategory returns the named category, appending an empty one if it
// does not exist yet. The second result reports whether it was created.
func (d *Database) EnsureCategory(name string) (*Category, bool) {
	if c, ok := d.Category(name); ok {
		return c, false
	}
	c := NewCategory(name)
	d.categories = append(d.categories, c)
	return c, true
}

// RemoveCategory removes the named category and all of its services
func (d *Database) RemoveCategory(name string) bool {
	i := d.find(name)
	if i < 0 {
		return false
	}
	d.categories = append(d.categories[:i], d.categories[i+1:]...)
	return true
}

// Categories returns the categories in insertion order.
// The slice is a copy; the categories are not.
func (d *Database) Categories() []*Category {
	return append([]*Category(nil), d.categories...)
}

// Names returns category names in insertion order
func (d *Database) Names() []string {
	return lo.Map(d.categories, func(c *Category, _ int) string {
		return c.Name
	})
}

// Clone returns a deep copy of the database
func (d *Database) Clone() *Database {
	clone := NewDatabase()
	for _, c := range d.categories {
		cc, _ := clone.EnsureCategory(c.Name)
		for _, e := range c.entries {
			cc.Put(e.Service, e.Record)
		}
	}
	return clone
}
