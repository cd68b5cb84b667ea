package vault

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/model"
)

// LegacyImportCategory receives imported rows that name no category.
// It differs from DefaultCategory for compatibility with earlier exports;
// the next Open migrates it into its current counterpart.
const LegacyImportCategory = "1"

var ErrImport = errors.New("import failed")

// ImportRow is one credential read from an import file
type ImportRow struct {
	Service  string
	Username string
	Password string
	// Category is optional; empty means LegacyImportCategory
	Category string
}

// ExportRow is one credential written to an export file
type ExportRow struct {
	Category string
	Service  string
	Username string
	Password string
}

// ImportCSV upserts every row in order and returns the number of rows saved.
// The first invalid row aborts the import with ErrImport; rows applied before
// it stay applied and are saved. If the save fails nothing is kept and the
// count is zero.
func (s *Store) ImportCSV(rows []ImportRow) (int, error) {
	prev := s.db.Clone()
	applied, rowErr := applyRows(s, rows)

	if applied > 0 {
		if err := s.commit(prev); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrImport, err)
		}
	}
	if rowErr != nil {
		s.log.Warn("import aborted", zap.Int("applied", applied), zap.Int("total", len(rows)))
		return applied, rowErr
	}

	s.log.Info("import complete", zap.Int("rows", applied))
	return applied, nil
}

func applyRows(s *Store, rows []ImportRow) (int, error) {
	for i, row := range rows {
		if row.Service == "" {
			// Row numbers are 1-based and exclude the header line
			return i, fmt.Errorf("%w: row %d: %v", ErrImport, i+1, ErrEmptyService)
		}
		s.put(row.Category, row.Service, model.Record{
			Username: row.Username,
			Password: row.Password,
		}, LegacyImportCategory)
	}
	return len(rows), nil
}

// PreviewImport returns the export before and after applying rows, without
// changing the store.
func (s *Store) PreviewImport(rows []ImportRow) (before, after []ExportRow, err error) {
	preview := &Store{codec: s.codec, db: s.db.Clone(), log: s.log}
	if _, err := applyRows(preview, rows); err != nil {
		return nil, nil, err
	}
	return s.ExportCSV(), preview.ExportCSV(), nil
}

// ExportCSV returns one row per record, grouped by category in insertion
// order. Tags are not exported.
func (s *Store) ExportCSV() []ExportRow {
	rows := make([]ExportRow, 0)
	for _, c := range s.db.Categories() {
		for _, e := range c.Entries() {
			rows = append(rows, ExportRow{
				Category: c.Name,
				Service:  e.Service,
				Username: e.Record.Username,
				Password: e.Record.Password,
			})
		}
	}
	return rows
}
