package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/illarion/credvault/internal/storage"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Reclaim free space in a bolt store",
	Long:  `Rewrites the bolt database into a fresh file. Has no effect on the file backend.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		bolt, ok := s.backend.(*storage.BoltBackend)
		if !ok {
			printWarning(cmd.OutOrStdout(), "Backend %q does not need compaction", backendName(cfg.Storage.Backend))
			return nil
		}
		if err := bolt.Compact(); err != nil {
			logger.Warn("compaction failed", zap.String("path", bolt.Path()), zap.Error(err))
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Compacted %s", bolt.Path())
		return nil
	},
}
