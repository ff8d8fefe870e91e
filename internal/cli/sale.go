package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/smartfarm/internal/sqlite"
	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var saleColumns = []column[types.Sale]{
	{"ID", func(s *types.Sale) string { return fmtInt(s.ID) }},
	{"DATE", func(s *types.Sale) string { return fmtDate(s.CreatedAt) }},
	{"FARMER", func(s *types.Sale) string { return fmtInt(s.FarmerID) }},
	{"BUYER", func(s *types.Sale) string { return fmtInt(s.BuyerID) }},
	{"PRODUCT", func(s *types.Sale) string { return fmtID(s.ProductTypeID) }},
	{"QUANTITY", func(s *types.Sale) string { return fmtAmount(s.Quantity) }},
	{"PRICE", func(s *types.Sale) string { return fmtAmount(s.Price) }},
	{"TOTAL", func(s *types.Sale) string { return fmtAmount(s.Total()) }},
}

func (a *app) newSaleCmd() *cobra.Command {
	return group("sale", "Record and review sales",
		a.newSaleCreateCmd(),
		a.newSaleListCmd(),
		a.newSaleShowCmd(),
		a.newSaleDeleteCmd(),
	)
}

func (a *app) newSaleCreateCmd() *cobra.Command {
	var s types.Sale
	var productID int64
	var date string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a sale from a farmer to a buyer",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if s.CreatedAt, err = dateFlag(date); err != nil {
				return err
			}
			s.ProductTypeID = optionalID(productID)
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Sales().Create(&s); err != nil {
					return err
				}
				return renderOne(a, cmd.OutOrStdout(), &s, [][2]string{
					{"Created sale", fmtInt(s.ID)},
					{"Total", fmtAmount(s.Total())},
				})
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&s.FarmerID, "farmer", 0, "farmer ID")
	f.Int64Var(&s.BuyerID, "buyer", 0, "buyer ID")
	f.Int64Var(&productID, "product", 0, "product type ID")
	f.Float64Var(&s.Quantity, "quantity", 0, "quantity sold")
	f.Float64Var(&s.Price, "price", 0, "unit price")
	f.StringVar(&date, "date", "", "sale date (YYYY-MM-DD, default today)")
	return cmd
}

func (a *app) newSaleListCmd() *cobra.Command {
	var farmerID, buyerID, productID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales, optionally for one farmer, buyer or product type",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if changedCount(cmd, "farmer", "buyer", "product") > 1 {
				return usageError{errors.New("use at most one of --farmer, --buyer, --product")}
			}
			return a.withStore(func(b *sqlite.Backend) error {
				var rows []*types.Sale
				var err error
				switch {
				case farmerID != 0:
					rows, err = b.Sales().ListForFarmer(farmerID)
				case buyerID != 0:
					rows, err = b.Sales().ListForBuyer(buyerID)
				case productID != 0:
					rows, err = b.Sales().ListForProductType(productID)
				default:
					rows, err = b.Sales().GetAll()
				}
				if err != nil {
					return err
				}
				return render(a, cmd.OutOrStdout(), rows, saleColumns)
			})
		},
	}
	f := cmd.Flags()
	f.Int64Var(&farmerID, "farmer", 0, "only sales by this farmer")
	f.Int64Var(&buyerID, "buyer", 0, "only sales to this buyer")
	f.Int64Var(&productID, "product", 0, "only sales of this product type")
	return cmd
}

func (a *app) newSaleShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a sale",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("sale", args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				s, err := b.Sales().FindByID(id)
				if err != nil {
					return err
				}
				if s == nil {
					return notFound("sale", id)
				}
				return renderOne(a, cmd.OutOrStdout(), s, [][2]string{
					{"ID", fmtInt(s.ID)},
					{"Date", fmtDate(s.CreatedAt)},
					{"Farmer", fmtInt(s.FarmerID)},
					{"Buyer", fmtInt(s.BuyerID)},
					{"Product type", fmtID(s.ProductTypeID)},
					{"Quantity", fmtAmount(s.Quantity)},
					{"Price", fmtAmount(s.Price)},
					{"Total", fmtAmount(s.Total())},
				})
			})
		},
	}
}

func (a *app) newSaleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sale",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("sale", args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(cmd, fmt.Sprintf("Delete sale %d?", id))
			if err != nil || !ok {
				return err
			}
			return a.withStore(func(b *sqlite.Backend) error {
				if err := b.Sales().Delete(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted sale %d\n", id)
				return nil
			})
		},
	}
}
