package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/vault"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and their service counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var stats []vault.CategoryStats
		if err := withStore(func(s *vault.Store) error {
			stats = s.Stats()
			return nil
		}); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tSERVICES")
		for _, st := range stats {
			fmt.Fprintf(tw, "%s\t%d\n", st.Name, st.Services)
		}
		return tw.Flush()
	},
}
