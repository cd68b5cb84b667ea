package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/vault"
)

var (
	searchCategory string
	searchTag      string
)

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "restrict to one category")
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "require this tag")
}

func resetSearchState() {
	searchCategory = ""
	searchTag = ""
}

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find services by name",
	Long: `Lists services whose name contains the keyword, ignoring case. Usernames,
passwords and tags are not searched; use --tag to filter by tag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("keyword must not be empty")
		}

		var results map[string]model.Record
		if err := withStore(func(s *vault.Store) error {
			results = s.Search(vault.Query{Keyword: args[0], Category: searchCategory, Tag: searchTag})
			return nil
		}); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			printWarning(out, "No services match %q", args[0])
			return nil
		}

		services := lo.Keys(results)
		sort.Strings(services)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SERVICE\tUSERNAME\tTAGS")
		for _, service := range services {
			rec := results[service]
			fmt.Fprintf(tw, "%s\t%s\t%s\n", service, rec.Username, strings.Join(rec.Tags, ","))
		}
		return tw.Flush()
	},
}
