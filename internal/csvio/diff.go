package csvio

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/illarion/credvault/internal/vault"
)

const (
	maskedPassword  = "********"
	changedPassword = "******** (changed)"
)

// Diff renders a line diff between two exports. Passwords never appear in
// the output; a password that differs between before and after for the
// same category and service is marked as changed. Returns an empty string
// when the exports are identical.
func Diff(before, after []vault.ExportRow) string {
	previous := make(map[[2]string]string, len(before))
	for _, row := range before {
		previous[[2]string{row.Category, row.Service}] = row.Password
	}

	beforeText := render(before, func(vault.ExportRow) string { return maskedPassword })
	afterText := render(after, func(row vault.ExportRow) string {
		if old, ok := previous[[2]string{row.Category, row.Service}]; ok && old != row.Password {
			return changedPassword
		}
		return maskedPassword
	})
	if beforeText == afterText {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	a, b, lineArray := dmp.DiffLinesToChars(beforeText, afterText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String()
}

func render(rows []vault.ExportRow, password func(vault.ExportRow) string) string {
	masked := make([]vault.ExportRow, len(rows))
	for i, row := range rows {
		row.Password = password(row)
		masked[i] = row
	}
	var buf bytes.Buffer
	// Writing to a bytes.Buffer cannot fail
	_ = WriteExport(&buf, masked)
	return buf.String()
}
