package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var activityColumns = []column[types.Activity]{
	{"ID", func(a *types.Activity) string { return fmtInt(a.ID) }},
	{"NAME", func(a *types.Activity) string { return a.Name }},
	{"START", func(a *types.Activity) string { return fmtDatePtr(a.StartDate) }},
	{"END", func(a *types.Activity) string { return fmtDatePtr(a.EndDate) }},
	{"DESCRIPTION", func(a *types.Activity) string { return orDash(a.Description) }},
}

func (a *app) newActivityCmd() *cobra.Command {
	return group("activity", "Manage farming activities",
		a.newActivityCreateCmd(),
		a.newActivityListCmd(),
		a.newActivityShowCmd(),
		a.newActivityDeleteCmd(),
	)
}

func (a *app) newActivityCreateCmd() *cobra.Command {
	var act types.Activity
	var start, end string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an activity",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if act.StartDate, err = types.ParseDate(start); err != nil {
				return err
			}
			if act.EndDate, err = types.ParseDate(end); err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Activities().Create(&act); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &act, [][2]string{
					{"Created activity", fmtInt(act.ID)},
					{"Name", act.Name},
				})
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&act.Name, "name", "", "activity name (unique)")
	f.StringVar(&act.Description, "description", "", "description")
	f.StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	f.StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	return cmd
}

func (a *app) newActivityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				rows, err := b.Activities().GetAll()
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, activityColumns)
			})
		},
	}
}

// activityDetail is the --json shape of "activity show".
type activityDetail struct {
	*types.Activity
	Farmers      []*types.Farmer         `json:"farmers"`
	Participants []*types.FarmerActivity `json:"participants"`
}

func (a *app) newActivityShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an activity with its farmers and participants",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activity", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				act, err := b.Activities().FindByID(id)
				if err != nil {
					return err
				}
				if act == nil {
					return notFound("activity", id)
				}
				farmers, err := b.Farmers().ListForActivity(id)
				if err != nil {
					return err
				}
				links, err := b.FarmerActivities().ListForActivity(id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, activityDetail{Activity: act, Farmers: farmers, Participants: links})
				}
				if err := renderOne(a, out, act, [][2]string{
					{"ID", fmtInt(act.ID)},
					{"Name", act.Name},
					{"Description", orDash(act.Description)},
					{"Start", fmtDatePtr(act.StartDate)},
					{"End", fmtDatePtr(act.EndDate)},
				}); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nRegistered farmers:")
				if err := render(a, out, farmers, farmerColumns); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nParticipants:")
				return render(a, out, links, farmerActivityColumns)
			})
		},
	}
}

func (a *app) newActivityDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity, its registered farmers and their records",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activity", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete activity %d and every farmer registered under it?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Activities().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %d\n", id)
				return nil
			})
		},
	}
}
