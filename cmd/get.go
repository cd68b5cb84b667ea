package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/vault"
)

var (
	getCategory string
	getShow     bool
)

func init() {
	getCmd.Flags().StringVarP(&getCategory, "category", "c", "", "category to look in (default: first match)")
	getCmd.Flags().BoolVarP(&getShow, "show", "s", false, "print the password")
}

func resetGetState() {
	getCategory = ""
	getShow = false
}

var getCmd = &cobra.Command{
	Use:   "get <service>",
	Short: "Show a credential",
	Long: `Shows the record stored for a service. Without --category the first
category containing the service wins. The password is masked unless --show
is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rec model.Record
		var found bool
		if err := withStore(func(s *vault.Store) error {
			rec, found = s.Get(args[0], getCategory)
			return nil
		}); err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", errNotFound, args[0])
		}

		printRecord(cmd, args[0], rec, getShow)
		return nil
	},
}

func printRecord(cmd *cobra.Command, service string, rec model.Record, show bool) {
	out := cmd.OutOrStdout()
	pw := maskedPassword
	if show {
		pw = rec.Password
	}
	fmt.Fprintf(out, "Service:  %s\n", service)
	fmt.Fprintf(out, "Username: %s\n", rec.Username)
	fmt.Fprintf(out, "Password: %s\n", pw)
	if len(rec.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(rec.Tags, ", "))
	}
}

const maskedPassword = "********"
