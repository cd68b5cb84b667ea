package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/csvio"
	"github.com/illarion/credvault/internal/storage"
	"github.com/illarion/credvault/internal/vault"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

func resetExportState() {
	exportOutput = ""
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all credentials as plaintext CSV",
	Long: `Writes every record as category,service,username,password. The output
is NOT encrypted. Files written with --output get mode 0600.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows []vault.ExportRow
		if err := withStore(func(s *vault.Store) error {
			rows = s.ExportCSV()
			return nil
		}); err != nil {
			return err
		}

		if exportOutput == "" {
			return csvio.WriteExport(cmd.OutOrStdout(), rows)
		}

		var buf bytes.Buffer
		if err := csvio.WriteExport(&buf, rows); err != nil {
			return err
		}
		if err := atomic.WriteFile(exportOutput, &buf); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		if err := os.Chmod(exportOutput, storage.FilePermSecure); err != nil {
			printWarning(cmd.ErrOrStderr(), "Could not restrict permissions on %s", exportOutput)
		}
		printSuccess(cmd.ErrOrStderr(), "Exported %d rows to %s", len(rows), exportOutput)
		return nil
	},
}
