package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var membershipColumns = []column[types.Membership]{
	{"COOPERATIVE", func(m *types.Membership) string { return fmtInt(m.CooperativeID) }},
	{"FARMER", func(m *types.Membership) string { return fmtInt(m.FarmerID) }},
	{"ROLE", func(m *types.Membership) string { return m.Role }},
	{"JOINED", func(m *types.Membership) string { return fmtDate(m.JoinedOn) }},
	{"APPROVED BY", func(m *types.Membership) string { return orDash(m.ApprovedBy) }},
}

func (a *app) newMembershipCmd() *cobra.Command {
	return group("membership", "Manage cooperative memberships",
		a.newMembershipListCmd(),
		a.newMembershipLinkCmd(),
		a.newMembershipRemoveCmd(),
	)
}

func (a *app) newMembershipListCmd() *cobra.Command {
	var coopID, farmerID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memberships by cooperative, then farmer",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if changedCount(cmd, "cooperative", "farmer") > 1 {
				return usageError{errors.New("use at most one of --cooperative, --farmer")}
			}
			return a.withStore(func(b *sqlite.Backend) error {
				var rows []*types.Membership
				var err error
				switch {
				case coopID != 0:
					rows, err = b.Memberships().ListForCooperative(coopID)
				case farmerID != 0:
					rows, err = b.Memberships().ListForFarmer(farmerID)
				default:
					rows, err = b.Memberships().GetAll()
				}
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, membershipColumns)
			})
		},
	}
	cmd.Flags().Int64Var(&coopID, "cooperative", 0, "only members of this cooperative")
	cmd.Flags().Int64Var(&farmerID, "farmer", 0, "only memberships of this farmer")
	return cmd
}

// membershipResult is the --json shape of "membership link".
type membershipResult struct {
	*types.Membership
	Created bool `json:"created"`
}

func (a *app) newMembershipLinkCmd() *cobra.Command {
	var farmerID, coopID int64
	var role string
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Make a farmer a member of a cooperative (no-op if already a member)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				m, created, err := b.Memberships().Ensure(farmerID, coopID, role)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, membershipResult{Membership: m, Created: created})
				}
				if created {
					fmt.Fprintf(out, "Farmer %d joined cooperative %d as %s\n", m.FarmerID, m.CooperativeID, m.Role)
				} else {
					fmt.Fprintf(out, "Farmer %d is already a member of cooperative %d (%s)\n", m.FarmerID, m.CooperativeID, m.Role)
				}
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&farmerID, "farmer", 0, "farmer ID")
	f.Int64Var(&coopID, "cooperative", 0, "cooperative ID")
	f.StringVar(&role, "role", types.DefaultMemberRole, "member role")
	return cmd
}

func (a *app) newMembershipRemoveCmd() *cobra.Command {
	var farmerID, coopID int64
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a farmer from a cooperative",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := a.confirm(cmd, fmt.Sprintf("Remove farmer %d from cooperative %d?", farmerID, coopID))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Memberships().Delete(coopID, farmerID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed farmer %d from cooperative %d\n", farmerID, coopID)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&farmerID, "farmer", 0, "farmer ID")
	cmd.Flags().Int64Var(&coopID, "cooperative", 0, "cooperative ID")
	return cmd
}
