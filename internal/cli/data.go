package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func (a *app) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample dataset into an empty store",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				seeded, err := b.SeedSampleData()
				if err != nil {
					return err
				}
				if seeded {
					fmt.Fprintln(cmd.OutOrStdout(), "Sample data loaded.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Store already has data; nothing seeded.")
				}
				return nil
			})
		},
	}
}

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every table to <dir>/<table>.jsonl",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				counts, err := b.ExportJSONL(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, counts)
				}
				for _, table := range types.StandardTableNames {
					fmt.Fprintf(out, "%-18s %d\n", table, counts[table])
				}
				return nil
			})
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load <dir>/<table>.jsonl files written by export into an empty store",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				counts, err := b.ImportJSONL(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, counts)
				}
				for _, table := range types.StandardTableNames {
					fmt.Fprintf(out, "%-18s %d\n", table, counts[table])
				}
				return nil
			})
		},
	}
}
