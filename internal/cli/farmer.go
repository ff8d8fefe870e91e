package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var farmerColumns = []column[types.Farmer]{
	{"ID", func(f *types.Farmer) string { return fmtInt(f.ID) }},
	{"NAME", func(f *types.Farmer) string { return f.Name }},
	{"NATIONAL ID", func(f *types.Farmer) string { return f.NationalID }},
	{"FARM", func(f *types.Farmer) string { return orDash(f.FarmName) }},
	{"ADDRESS", func(f *types.Farmer) string { return orDash(f.Address) }},
	{"ACTIVITY", func(f *types.Farmer) string { return fmtID(f.ActivityID) }},
	{"REGISTERED", func(f *types.Farmer) string { return fmtDate(f.RegistrationDate) }},
}

func (a *app) newFarmerCmd() *cobra.Command {
	return group("farmer", "Manage farmers",
		a.newFarmerCreateCmd(),
		a.newFarmerListCmd(),
		a.newFarmerFindCmd(),
		a.newFarmerShowCmd(),
		a.newFarmerDeleteCmd(),
	)
}

func (a *app) newFarmerCreateCmd() *cobra.Command {
	var f types.Farmer
	var activityID int64
	var registered string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a farmer",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if f.RegistrationDate, err = dateFlag(registered); err != nil {
				return err
			}
			f.ActivityID = optionalID(activityID)
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Farmers().Create(&f); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &f, [][2]string{
					{"Created farmer", fmtInt(f.ID)},
					{"Name", f.Name},
					{"Registered", fmtDate(f.RegistrationDate)},
				})
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.Name, "name", "", "full name")
	fl.StringVar(&f.NationalID, "national-id", "", "national ID (unique)")
	fl.StringVar(&f.FarmName, "farm-name", "", "farm name")
	fl.StringVar(&f.Phone, "phone", "", "phone number")
	fl.StringVar(&f.Email, "email", "", "email address")
	fl.StringVar(&f.Address, "address", "", "address")
	fl.Int64Var(&activityID, "activity", 0, "ID of the activity the farmer is registered under")
	fl.StringVar(&registered, "registered", "", "registration date (YYYY-MM-DD, default today)")
	return cmd
}

func (a *app) newFarmerListCmd() *cobra.Command {
	var activityID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List farmers",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				var rows []*types.Farmer
				var err error
				if activityID != 0 {
					rows, err = b.Farmers().ListForActivity(activityID)
				} else {
					rows, err = b.Farmers().GetAll()
				}
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, farmerColumns)
			})
		},
	}
	cmd.Flags().Int64Var(&activityID, "activity", 0, "only farmers registered under this activity")
	return cmd
}

func (a *app) newFarmerFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <name>",
		Short: "Find farmers whose name contains the text, ignoring case",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				rows, err := b.Farmers().FindByName(args[0])
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, farmerColumns)
			})
		},
	}
}

// farmerDetail is the --json shape of "farmer show".
type farmerDetail struct {
	*types.Farmer
	Sales       []*types.Sale           `json:"sales"`
	Activities  []*types.FarmerActivity `json:"activities"`
	Memberships []*types.Membership     `json:"memberships"`
}

func (a *app) newFarmerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a farmer with sales, activities and memberships",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("farmer", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				f, err := b.Farmers().FindByID(id)
				if err != nil {
					return err
				}
				if f == nil {
					return notFound("farmer", id)
				}
				detail := farmerDetail{Farmer: f}
				if detail.Sales, err = b.Sales().ListForFarmer(id); err != nil {
					return err
				}
				if detail.Activities, err = b.FarmerActivities().ListForFarmer(id); err != nil {
					return err
				}
				if detail.Memberships, err = b.Memberships().ListForFarmer(id); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, detail)
				}
				if err := renderOne(a, out, f, [][2]string{
					{"ID", fmtInt(f.ID)},
					{"Name", f.Name},
					{"National ID", f.NationalID},
					{"Farm", orDash(f.FarmName)},
					{"Phone", orDash(f.Phone)},
					{"Email", orDash(f.Email)},
					{"Address", orDash(f.Address)},
					{"Activity", fmtID(f.ActivityID)},
					{"Registered", fmtDate(f.RegistrationDate)},
				}); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nSales:")
				if err := render(a, out, detail.Sales, saleColumns); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nActivities:")
				if err := render(a, out, detail.Activities, farmerActivityColumns); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nMemberships:")
				return render(a, out, detail.Memberships, membershipColumns)
			})
		},
	}
}

func (a *app) newFarmerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a farmer with its sales, activity links and memberships",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("farmer", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete farmer %d and all of their sales?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Farmers().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted farmer %d\n", id)
				return nil
			})
		},
	}
}
