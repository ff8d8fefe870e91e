package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Create the configuration directory and config.yaml, then create the database schema.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			wrote, err := writeConfigIfMissing(a.configDir, dataDir)
			if err != nil {
				return err
			}
			if err := a.withStore(func(*sqlite.Backend) error { return nil }); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wrote {
				fmt.Fprintf(out, "Wrote %s\n", filepath.Join(a.configDir, configFileExt))
			}
			fmt.Fprintf(out, "Initialized %s\n", filepath.Join(dataDir, sqlite.DatabaseFile))
			return nil
		},
	}
}
