package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var farmerActivityColumns = []column[types.FarmerActivity]{
	{"ID", func(fa *types.FarmerActivity) string { return fmtInt(fa.ID) }},
	{"FARMER", func(fa *types.FarmerActivity) string { return fmtInt(fa.FarmerID) }},
	{"ACTIVITY", func(fa *types.FarmerActivity) string { return fmtInt(fa.ActivityID) }},
	{"ROLE", func(fa *types.FarmerActivity) string { return fa.Role }},
	{"JOINED", func(fa *types.FarmerActivity) string { return fmtDate(fa.JoinedOn) }},
	{"PROGRESS", func(fa *types.FarmerActivity) string {
		return strconv.FormatFloat(fa.ProgressPercent, 'f', 1, 64) + "%"
	}},
	{"NOTES", func(fa *types.FarmerActivity) string { return orDash(fa.Notes) }},
}

// The dashboard tracks farmers' participation and progress in activities.
func (a *app) newDashboardCmd() *cobra.Command {
	return group("dashboard", "Track farmer participation in activities",
		a.newDashboardListCmd(),
		a.newDashboardLinkCmd(),
		a.newDashboardUnlinkCmd(),
		a.newDashboardProgressCmd(),
	)
}

func (a *app) newDashboardListCmd() *cobra.Command {
	var farmerID, activityID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List farmer-activity links",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if changedCount(cmd, "farmer", "activity") > 1 {
				return usageError{errors.New("use at most one of --farmer, --activity")}
			}
			return a.withStore(func(b *sqlite.Backend) error {
				var rows []*types.FarmerActivity
				var err error
				switch {
				case farmerID != 0:
					rows, err = b.FarmerActivities().ListForFarmer(farmerID)
				case activityID != 0:
					rows, err = b.FarmerActivities().ListForActivity(activityID)
				default:
					rows, err = b.FarmerActivities().GetAll()
				}
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, farmerActivityColumns)
			})
		},
	}
	cmd.Flags().Int64Var(&farmerID, "farmer", 0, "only links of this farmer")
	cmd.Flags().Int64Var(&activityID, "activity", 0, "only links to this activity")
	return cmd
}

func (a *app) newDashboardLinkCmd() *cobra.Command {
	var fa types.FarmerActivity
	var joined string
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a farmer to an activity",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if fa.JoinedOn, err = dateFlag(joined); err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.FarmerActivities().Create(&fa); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &fa, [][2]string{
					{"Created link", fmtInt(fa.ID)},
					{"Role", fa.Role},
				})
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&fa.FarmerID, "farmer", 0, "farmer ID")
	f.Int64Var(&fa.ActivityID, "activity", 0, "activity ID")
	f.StringVar(&fa.Role, "role", "", "role in the activity (default "+types.DefaultParticipantRole+")")
	f.Float64Var(&fa.ProgressPercent, "progress", 0, "initial progress percent (0-100)")
	f.StringVar(&fa.Notes, "notes", "", "notes")
	f.StringVar(&joined, "joined", "", "date joined (YYYY-MM-DD, default today)")
	return cmd
}

func (a *app) newDashboardUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <link-id>",
		Short: "Remove a farmer-activity link",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("link", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Remove link %d?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.FarmerActivities().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed link %d\n", id)
				return nil
			})
		},
	}
}

func (a *app) newDashboardProgressCmd() *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "progress <link-id> <percent>",
		Short: "Record progress on a farmer-activity link",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("link", args[0])
			if err != nil {
				return err
			}
			percent, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return &types.ValidationError{Entity: "farmer activity", Field: "progress_percent", Reason: "must be a number"}
			}
			var notesArg *string
			if cmd.Flags().Changed("notes") {
				notesArg = &notes
			}
			return a.withStore(func(b *sqlite.Backend) error {
				fa, err := b.FarmerActivities().UpdateProgress(id, percent, notesArg)
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), []*types.FarmerActivity{fa}, farmerActivityColumns)
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "replace the link's notes")
	return cmd
}
