package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the smartfarm release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/smartfarm"

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the smartfarm version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": Version, "module": modulePath})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "smartfarm v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
