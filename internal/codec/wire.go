package codec

import (
	"encoding/json"
	"fmt"

	"github.com/illarion/credvault/internal/model"
)

const formatVersion = 1

type wireDatabase struct {
	Version    int            `json:"version"`
	Categories []wireCategory `json:"categories"`
}

type wireCategory struct {
	Name     string        `json:"name"`
	Services []wireService `json:"services"`
}

type wireService struct {
	Service  string   `json:"service"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	Tags     []string `json:"tags,omitempty"`
}

// Marshal encodes db in the wire format, preserving category and service order
func Marshal(db *model.Database) ([]byte, error) {
	w := wireDatabase{
		Version:    formatVersion,
		Categories: make([]wireCategory, 0),
	}
	for _, c := range db.Categories() {
		wc := wireCategory{Name: c.Name, Services: make([]wireService, 0, c.Len())}
		for _, e := range c.Entries() {
			wc.Services = append(wc.Services, wireService{
				Service:  e.Service,
				Username: e.Record.Username,
				Password: e.Record.Password,
				Tags:     e.Record.Tags,
			})
		}
		w.Categories = append(w.Categories, wc)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal database: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates the wire format. Every structural problem
// is reported as ErrParse.
func Unmarshal(data []byte) (*model.Database, error) {
	var w wireDatabase
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if w.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrParse, w.Version)
	}

	db := model.NewDatabase()
	for i, wc := range w.Categories {
		if wc.Name == "" {
			return nil, fmt.Errorf("%w: category %d has no name", ErrParse, i)
		}
		c, created := db.EnsureCategory(wc.Name)
		if !created {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrParse, wc.Name)
		}
		for j, ws := range wc.Services {
			if ws.Service == "" {
				return nil, fmt.Errorf("%w: service %d in category %q has no name", ErrParse, j, wc.Name)
			}
			if _, exists := c.Get(ws.Service); exists {
				return nil, fmt.Errorf("%w: duplicate service %q in category %q", ErrParse, ws.Service, wc.Name)
			}
			c.Put(ws.Service, model.Record{
				Username: ws.Username,
				Password: ws.Password,
				Tags:     ws.Tags,
			})
		}
	}
	return db, nil
}
