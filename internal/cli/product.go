package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var productTypeColumns = []column[types.ProductType]{
	{"ID", func(p *types.ProductType) string { return fmtInt(p.ID) }},
	{"NAME", func(p *types.ProductType) string { return p.Name }},
	{"CATEGORY", func(p *types.ProductType) string { return orDash(p.Category) }},
	{"UNIT", func(p *types.ProductType) string { return orDash(p.TypicalUnit) }},
	{"DESCRIPTION", func(p *types.ProductType) string { return orDash(p.Description) }},
}

func (a *app) newProductCmd() *cobra.Command {
	return group("product", "Manage product types",
		a.newProductCreateCmd(),
		a.newProductListCmd(),
		a.newProductShowCmd(),
		a.newProductDeleteCmd(),
	)
}

func (a *app) newProductCreateCmd() *cobra.Command {
	var p types.ProductType
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product type",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.ProductTypes().Create(&p); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &p, [][2]string{
					{"Created product type", fmtInt(p.ID)},
					{"Name", p.Name},
				})
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "product name")
	f.StringVar(&p.Category, "category", "", "category, e.g. Cereal")
	f.StringVar(&p.TypicalUnit, "unit", "", "typical unit, e.g. KG")
	f.StringVar(&p.Description, "description", "", "description")
	return cmd
}

func (a *app) newProductListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List product types",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(b *sqlite.Backend) error {
				rows, err := b.ProductTypes().GetAll()
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, productTypeColumns)
			})
		},
	}
}

// productTypeDetail is the --json shape of "product show".
type productTypeDetail struct {
	*types.ProductType
	Sales []*types.Sale `json:"sales"`
}

func (a *app) newProductShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product type with its sales",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product type", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				p, err := b.ProductTypes().FindByID(id)
				if err != nil {
					return err
				}
				if p == nil {
					return notFound("product type", id)
				}
				sales, err := b.Sales().ListForProductType(id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if a.jsonMode {
					return printJSON(out, productTypeDetail{ProductType: p, Sales: sales})
				}
				if err := renderOne(a, out, p, [][2]string{
					{"ID", fmtInt(p.ID)},
					{"Name", p.Name},
					{"Category", orDash(p.Category)},
					{"Unit", orDash(p.TypicalUnit)},
					{"Description", orDash(p.Description)},
				}); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nSales:")
				return render(a, out, sales, saleColumns)
			})
		},
	}
}

func (a *app) newProductDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product type; its sales are kept without a product",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product type", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete product type %d?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.ProductTypes().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted product type %d\n", id)
				return nil
			})
		},
	}
}
