package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var cooperativeColumns = []column[types.Cooperative]{
	{"ID", func(c *types.Cooperative) string { return fmtInt(c.ID) }},
	{"NAME", func(c *types.Cooperative) string { return c.Name }},
	{"DESCRIPTION", func(c *types.Cooperative) string { return orDash(c.Description) }},
}

func (a *app) newCooperativeCmd() *cobra.Command {
	return group("cooperative", "Manage cooperatives",
		a.newCooperativeCreateCmd(),
		a.newCooperativeListCmd(),
		a.newCooperativeShowCmd(),
		a.newCooperativeDeleteCmd(),
	)
}

func (a *app) newCooperativeCreateCmd() *cobra.Command {
	var c types.Cooperative
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a cooperative",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Cooperatives().Create(&c); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &c, [][2]string{
					{"Created cooperative", fmtInt(c.ID)},
					{"Name", c.Name},
				})
			})
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "cooperative name (unique)")
	cmd.Flags().StringVar(&c.Description, "description", "", "description")
	return cmd
}

func (a *app) newCooperativeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cooperatives",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				rows, err := b.Cooperatives().GetAll()
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, cooperativeColumns)
			})
		},
	}
}

// cooperativeDetail is the --json shape of "cooperative show".
type cooperativeDetail struct {
	*types.Cooperative
	Members []*types.Membership `json:"members"`
}

func (a *app) newCooperativeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a cooperative with its members",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cooperative", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				c, err := b.Cooperatives().FindByID(id)
				if err != nil {
					return err
				}
				if c == nil {
					return notFound("cooperative", id)
				}
				members, err := b.Memberships().ListForCooperative(id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, cooperativeDetail{Cooperative: c, Members: members})
				}
				if err := renderOne(a, out, c, [][2]string{
					{"ID", fmtInt(c.ID)},
					{"Name", c.Name},
					{"Description", orDash(c.Description)},
				}); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nMembers:")
				return render(a, out, members, membershipColumns)
			})
		},
	}
}

func (a *app) newCooperativeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cooperative and its memberships",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cooperative", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete cooperative %d and all of its memberships?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Cooperatives().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted cooperative %d\n", id)
				return nil
			})
		},
	}
}
