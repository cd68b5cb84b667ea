package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/model"
	"github.com/illarion/credvault/internal/password"
	"github.com/illarion/credvault/internal/vault"
)

var (
	updateCategory string
	updateUsername string
	updateTags     []string
	updateGenerate bool
	updateLength   int
)

func init() {
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "category to look in (default: first match)")
	updateCmd.Flags().StringVarP(&updateUsername, "username", "u", "", "new username (prompted when omitted)")
	updateCmd.Flags().StringSliceVarP(&updateTags, "tag", "t", nil, "replace tags; pass --tag= to clear them")
	updateCmd.Flags().BoolVarP(&updateGenerate, "generate", "g", false, "generate a random password")
	updateCmd.Flags().IntVarP(&updateLength, "length", "l", password.DefaultLength, "generated password length")
}

func resetUpdateState() {
	updateCategory = ""
	updateUsername = ""
	updateTags = nil
	updateGenerate = false
	updateLength = password.DefaultLength
}

var updateCmd = &cobra.Command{
	Use:   "update <service>",
	Short: "Change an existing credential",
	Long: `Replaces the username and password of an existing record. Tags are kept
unless --tag is given. Update never creates a record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := args[0]

		username := updateUsername
		if username == "" {
			var err error
			if username, err = promptInput("Username: "); err != nil {
				return err
			}
		}

		pw, err := obtainPassword(updateGenerate, updateLength)
		if err != nil {
			return err
		}

		req := vault.UpdateRequest{Category: updateCategory, Username: username, Password: pw}
		if cmd.Flags().Changed("tag") {
			req.Tags = model.NormalizeTags(updateTags)
		}

		var updated bool
		if err := withStore(func(s *vault.Store) error {
			updated, err = s.Update(service, req)
			return err
		}); err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("%w: %s", errNotFound, service)
		}

		printSuccess(cmd.OutOrStdout(), "Updated %s", service)
		if updateGenerate {
			fmt.Fprintln(cmd.OutOrStdout(), pw)
		}
		return nil
	},
}
