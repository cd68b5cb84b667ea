package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/vault"
)

var rmCategory string

func init() {
	rmCmd.Flags().StringVarP(&rmCategory, "category", "c", "", "category to look in (default: first match)")
}

func resetRmState() {
	rmCategory = ""
}

var rmCmd = &cobra.Command{
	Use:     "rm <service>",
	Aliases: []string{"delete"},
	Short:   "Remove a credential",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var deleted bool
		if err := withStore(func(s *vault.Store) error {
			var err error
			deleted, err = s.Delete(args[0], rmCategory)
			return err
		}); err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: %s", errNotFound, args[0])
		}
		printSuccess(cmd.OutOrStdout(), "Removed %s", args[0])
		return nil
	},
}
