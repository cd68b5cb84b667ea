package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illarion/credvault/internal/vault"
)

func TestReadImport(t *testing.T) {
	input := "service,username,password,category\n" +
		"mail,alice,s3cr3t,Internet\n" +
		"\"a,b\",bob,\"p\"\"w\",\n"

	rows, err := ReadImport(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []vault.ImportRow{
		{Service: "mail", Username: "alice", Password: "s3cr3t", Category: "Internet"},
		{Service: "a,b", Username: "bob", Password: "p\"w", Category: ""},
	}, rows)
}

func TestReadImportWithoutCategoryColumn(t *testing.T) {
	rows, err := ReadImport(strings.NewReader("password,service,username,notes\npw,mail,alice,ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, []vault.ImportRow{{Service: "mail", Username: "alice", Password: "pw"}}, rows)
}

func TestReadImportStripsBOM(t *testing.T) {
	rows, err := ReadImport(strings.NewReader("\ufeffservice,username,password\nmail,alice,pw\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "mail", rows[0].Service)
}

func TestReadImportShortCategoryRow(t *testing.T) {
	rows, err := ReadImport(strings.NewReader("service,username,password,category\nmail,alice,pw\n"))
	require.NoError(t, err)
	assert.Equal(t, "", rows[0].Category)
}

func TestReadImportErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "service,username\nmail,alice\n",
		"header case":    "Service,Username,Password\nmail,alice,pw\n",
		"short row":      "service,username,password\nmail,alice\n",
		"bad quoting":    "service,username,password\n\"mail,alice,pw\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadImport(strings.NewReader(input))
			require.ErrorIs(t, err, vault.ErrImport)
		})
	}
}

func TestWriteExport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteExport(&buf, []vault.ExportRow{
		{Category: "Internet", Service: "mail", Username: "alice", Password: "s3,cr3t"},
	})
	require.NoError(t, err)
	assert.Equal(t, "category,service,username,password\nInternet,mail,alice,\"s3,cr3t\"\n", buf.String())
}

func TestWriteExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExport(&buf, nil))
	assert.Equal(t, "category,service,username,password\n", buf.String())
}

func TestDiffIdentical(t *testing.T) {
	rows := []vault.ExportRow{{Category: "Internet", Service: "mail", Username: "a", Password: "p"}}
	assert.Equal(t, "", Diff(rows, rows))
}

func TestDiffMasksPasswords(t *testing.T) {
	before := []vault.ExportRow{
		{Category: "Internet", Service: "mail", Username: "alice", Password: "old-secret"},
		{Category: "Internet", Service: "news", Username: "bob", Password: "same-secret"},
	}
	after := []vault.ExportRow{
		{Category: "Internet", Service: "mail", Username: "alice", Password: "new-secret"},
		{Category: "Internet", Service: "news", Username: "bob", Password: "same-secret"},
		{Category: "1", Service: "shop", Username: "carol", Password: "shop-secret"},
	}

	out := Diff(before, after)

	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "- Internet,mail,alice,********\n")
	assert.Contains(t, out, "+ Internet,mail,alice,******** (changed)\n")
	assert.Contains(t, out, "  Internet,news,bob,********\n")
	assert.Contains(t, out, "+ 1,shop,carol,********\n")
}
