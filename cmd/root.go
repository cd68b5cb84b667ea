package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/config"
	"github.com/illarion/credvault/internal/logging"
)

var (
	configPath string
	verbose    bool
	debug      bool

	cfg    *config.Config
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:   "credvault",
		Short: "Encrypted, categorized credential store",
		Long: `credvault keeps service credentials in a single encrypted file.

Records are grouped into categories and stored as username, password and
tags per service. The file is sealed with AES-256-GCM under a locally
generated key.

Run 'credvault init' to create the key and the store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			switch {
			case debug:
				loaded.Log.Level = "debug"
			case verbose:
				loaded.Log.Level = "info"
			}
			cfg = loaded
			logger = logging.New(cfg.Log)
			logger.Debug("configuration loaded",
				zap.String("dir", cfg.Storage.Dir),
				zap.String("backend", cfg.Storage.Backend),
				zap.String("key_source", cfg.Key.Source))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $CREDVAULT_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(compactCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the command tree
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// GetRootCmd returns the root command for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// ResetGlobalState resets flag-bound globals between test runs.
func ResetGlobalState() {
	configPath = ""
	verbose = false
	debug = false
	cfg = nil
	logger = zap.NewNop()
	resetAddState()
	resetGetState()
	resetUpdateState()
	resetRmState()
	resetSearchState()
	resetImportState()
	resetExportState()
	resetGenerateState()
	resetConfigInitState()
}
