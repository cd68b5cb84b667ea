package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/password"
)

var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Rate the strength of a password",
	Long: `Scores a password from 0 to 6 and lists suggestions. The password is read
without echo when not given as an argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pw string
		if len(args) == 1 {
			pw = args[0]
		} else {
			raw, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			pw = string(raw)
		}

		st := password.Score(pw)
		out := cmd.OutOrStdout()
		mark := successMark
		if st.Tier < password.Strong {
			mark = warnMark
		}
		fmt.Fprintf(out, "Strength: %s (%d/6)\n", mark(st.Tier.String()), st.Score)
		for _, f := range st.Feedback {
			fmt.Fprintf(out, "  - %s\n", f)
		}
		return nil
	},
}
