// Package csvio maps CSV files to vault import and export rows.
//
// Import header: service,username,password[,category]. Columns are matched
// by name, case-sensitively, in any order; unknown columns are ignored.
// Export header: category,service,username,password.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/illarion/credvault/internal/vault"
)

const (
	FieldService  = "service"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldCategory = "category"
)

var requiredFields = []string{FieldService, FieldUsername, FieldPassword}

// ExportHeader is the header row written by WriteExport
var ExportHeader = []string{FieldCategory, FieldService, FieldUsername, FieldPassword}

// ReadImport parses an import file. Errors wrap vault.ErrImport.
func ReadImport(r io.Reader) ([]vault.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", vault.ErrImport)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vault.ErrImport, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", vault.ErrImport, field)
		}
	}
	categoryCol, hasCategory := columns[FieldCategory]

	rows := make([]vault.ImportRow, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", vault.ErrImport, err)
		}

		field := func(col int) (string, error) {
			if col >= len(record) {
				return "", fmt.Errorf("%w: line %d: expected %d fields, got %d", vault.ErrImport, line, len(header), len(record))
			}
			return record[col], nil
		}

		var row vault.ImportRow
		if row.Service, err = field(columns[FieldService]); err != nil {
			return nil, err
		}
		if row.Username, err = field(columns[FieldUsername]); err != nil {
			return nil, err
		}
		if row.Password, err = field(columns[FieldPassword]); err != nil {
			return nil, err
		}
		if hasCategory && categoryCol < len(record) {
			row.Category = record[categoryCol]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteExport writes rows with the export header
func WriteExport(w io.Writer, rows []vault.ExportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Category, row.Service, row.Username, row.Password}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
