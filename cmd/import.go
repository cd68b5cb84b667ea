package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/csvio"
	"github.com/illarion/credvault/internal/vault"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "show the changes without saving")
}

func resetImportState() {
	importDryRun = false
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import credentials from CSV",
	Long: `Imports rows from a CSV file with the header
service,username,password[,category]. Rows without a category go to the
legacy category "` + vault.LegacyImportCategory + `", which is migrated on the next open.

Existing records for the same service and category are replaced. A bad row
stops the import; rows before it are kept. Use --dry-run to preview the result with passwords
masked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		rows, err := csvio.ReadImport(f)
		if err != nil {
			return err
		}
		logger.Info("read import file", zap.String("file", args[0]), zap.Int("rows", len(rows)))

		out := cmd.OutOrStdout()
		return withStore(func(s *vault.Store) error {
			if importDryRun {
				before, after, err := s.PreviewImport(rows)
				if err != nil {
					return err
				}
				diff := csvio.Diff(before, after)
				if diff == "" {
					printWarning(out, "Import would change nothing")
					return nil
				}
				fmt.Fprint(out, diff)
				printWarning(out, "Dry run: %d rows not saved", len(rows))
				return nil
			}

			imported, err := s.ImportCSV(rows)
			if err != nil {
				if imported > 0 {
					printWarning(cmd.ErrOrStderr(), "Imported %d of %d rows before the failing row", imported, len(rows))
				}
				return err
			}
			printSuccess(out, "Imported %d rows", imported)
			return nil
		})
	},
}
