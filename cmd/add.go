package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/password"
	"github.com/illarion/credvault/internal/vault"
)

var (
	addCategory string
	addUsername string
	addTags     []string
	addGenerate bool
	addLength   int
)

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category (default \""+vault.DefaultCategory+"\")")
	addCmd.Flags().StringVarP(&addUsername, "username", "u", "", "username (prompted when omitted)")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "tag, repeatable or comma separated")
	addCmd.Flags().BoolVarP(&addGenerate, "generate", "g", false, "generate a random password")
	addCmd.Flags().IntVarP(&addLength, "length", "l", password.DefaultLength, "generated password length")
}

func resetAddState() {
	addCategory = ""
	addUsername = ""
	addTags = nil
	addGenerate = false
	addLength = password.DefaultLength
}

var addCmd = &cobra.Command{
	Use:   "add <service>",
	Short: "Add or replace a credential",
	Long: `Stores a username and password for a service. An existing record for
the same service in the same category is replaced.

The password is read from the terminal without echo, from $CREDVAULT_PASSWORD,
or generated with --generate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := args[0]

		username := addUsername
		if username == "" {
			var err error
			if username, err = promptInput("Username: "); err != nil {
				return err
			}
		}

		pw, err := obtainPassword(addGenerate, addLength)
		if err != nil {
			return err
		}

		rec := model.Record{Username: username, Password: pw, Tags: model.NormalizeTags(addTags)}
		if err := withStore(func(s *vault.Store) error {
			return s.Add(addCategory, service, rec)
		}); err != nil {
			return err
		}

		category := addCategory
		if category == "" {
			category = vault.DefaultCategory
		}
		printSuccess(cmd.OutOrStdout(), "Saved %s in %s", service, category)
		if addGenerate {
			fmt.Fprintln(cmd.OutOrStdout(), pw)
		}
		return nil
	},
}

// obtainPassword generates a password or reads one from the user
func obtainPassword(generate bool, length int) (string, error) {
	if generate {
		return password.Generate(clampLength(length))
	}
	return readPasswordConfirm()
}

func clampLength(n int) int {
	if n < password.MinLength {
		return password.MinLength
	}
	if n > password.MaxLength {
		return password.MaxLength
	}
	return n
}
