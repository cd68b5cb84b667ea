package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the key and the encrypted store",
	Long: `Creates the master key if missing, then opens the store. Opening seeds
the default categories and migrates legacy category names.

Running init again is safe: an existing key and store are reused.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("starting init")

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		logger.Debug("store opened", zap.String("blob", s.backend.Path()))

		out := cmd.OutOrStdout()
		if s.keyCreated {
			printSuccess(out, "Created key: %s", s.keys.Location())
			printWarning(out, "Back up the key; the store cannot be opened without it")
		} else {
			printSuccess(out, "Using existing key: %s", s.keys.Location())
		}
		printSuccess(out, "Store: %s", s.backend.Path())
		printSuccess(out, "Categories: %d", len(s.store.ListCategories()))
		return nil
	},
}
