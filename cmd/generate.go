package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/password"
)

var generateLength int

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", password.DefaultLength,
		fmt.Sprintf("password length, clamped to [%d, %d]", password.MinLength, password.MaxLength))
}

func resetGenerateState() {
	generateLength = password.DefaultLength
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a random password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		length := clampLength(generateLength)
		if length != generateLength {
			printWarning(cmd.ErrOrStderr(), "Length %d out of range, using %d", generateLength, length)
		}
		pw, err := password.Generate(length)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), pw)
		return nil
	},
}
