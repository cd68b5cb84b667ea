package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/illarion/credvault/internal/git"
	"github.com/illarion/credvault/internal/keys"
	"github.com/illarion/credvault/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store locations, counts and git exposure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Key:      %s\n", s.keys.Location())
		fmt.Fprintf(out, "Store:    %s\n", s.backend.Path())
		fmt.Fprintf(out, "Backend:  %s\n", backendName(cfg.Storage.Backend))

		if bolt, ok := s.backend.(*storage.BoltBackend); ok {
			info, err := bolt.Info()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Format:   %s\n", info.Version)
			fmt.Fprintf(out, "Created:  %s\n", info.Created.Format(time.RFC3339))
			fmt.Fprintf(out, "Modified: %s\n", info.Modified.Format(time.RFC3339))
		}

		total := 0
		fmt.Fprintln(out, "\nCategories:")
		for _, st := range s.store.Stats() {
			fmt.Fprintf(out, "   %-12s %d\n", st.Name, st.Services)
			total += st.Services
		}
		fmt.Fprintf(out, "   %-12s %d\n", "total", total)

		statuses := []git.FileStatus{git.Check("blob", s.backend.Path())}
		if cfg.Key.Source != keys.SourceKeyring {
			statuses = append(statuses, git.Check("key", cfg.KeyPath()))
		}
		fmt.Fprint(out, git.FormatStatus(statuses))
		return nil
	},
}

func backendName(kind string) string {
	if kind == "" {
		return storage.KindFile
	}
	return kind
}
