package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var buyerColumns = []column[types.Buyer]{
	{"ID", func(b *types.Buyer) string { return fmtInt(b.ID) }},
	{"NAME", func(b *types.Buyer) string { return b.Name }},
	{"ORGANIZATION", func(b *types.Buyer) string { return orDash(b.Organization) }},
	{"PHONE", func(b *types.Buyer) string { return orDash(b.ContactPhone) }},
	{"EMAIL", func(b *types.Buyer) string { return orDash(b.ContactEmail) }},
	{"PAYMENT", func(b *types.Buyer) string { return orDash(b.PreferredPaymentMethod) }},
}

func (a *app) newBuyerCmd() *cobra.Command {
	return group("buyer", "Manage buyers",
		a.newBuyerCreateCmd(),
		a.newBuyerListCmd(),
		a.newBuyerShowCmd(),
		a.newBuyerDeleteCmd(),
	)
}

func (a *app) newBuyerCreateCmd() *cobra.Command {
	var by types.Buyer
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a buyer",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Buyers().Create(&by); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &by, [][2]string{
					{"Created buyer", fmtInt(by.ID)},
					{"Name", by.Name},
				})
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&by.Name, "name", "", "buyer name")
	f.StringVar(&by.Organization, "organization", "", "organization")
	f.StringVar(&by.ContactPhone, "phone", "", "contact phone")
	f.StringVar(&by.ContactEmail, "email", "", "contact email")
	f.StringVar(&by.Address, "address", "", "address")
	f.StringVar(&by.PreferredPaymentMethod, "payment", "", "preferred payment method")
	return cmd
}

func (a *app) newBuyerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List buyers",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				rows, err := b.Buyers().GetAll()
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, buyerColumns)
			})
		},
	}
}

// buyerDetail is the --json shape of "buyer show".
type buyerDetail struct {
	*types.Buyer
	Sales []*types.Sale `json:"sales"`
}

func (a *app) newBuyerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a buyer with its purchases",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("buyer", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				by, err := b.Buyers().FindByID(id)
				if err != nil {
					return err
				}
				if by == nil {
					return notFound("buyer", id)
				}
				sales, err := b.Sales().ListForBuyer(id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, buyerDetail{Buyer: by, Sales: sales})
				}
				if err := renderOne(a, out, by, [][2]string{
					{"ID", fmtInt(by.ID)},
					{"Name", by.Name},
					{"Organization", orDash(by.Organization)},
					{"Phone", orDash(by.ContactPhone)},
					{"Email", orDash(by.ContactEmail)},
					{"Address", orDash(by.Address)},
					{"Payment", orDash(by.PreferredPaymentMethod)},
				}); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nPurchases:")
				return render(a, out, sales, saleColumns)
			})
		},
	}
}

func (a *app) newBuyerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a buyer and its purchases",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("buyer", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete buyer %d and all of its purchases?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Buyers().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted buyer %d\n", id)
				return nil
			})
		},
	}
}
