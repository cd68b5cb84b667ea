package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/config"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func resetConfigInitState() {
	configInitForce = false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// The file may not exist yet, so it is not loaded here.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Default()
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = config.DefaultConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.Write(path, config.Default()); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
		return nil
	},
}
