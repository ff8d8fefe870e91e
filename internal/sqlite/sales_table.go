package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.SaleTable = (*salesTable)(nil)

type salesTable struct {
	backend *Backend
}

const selectSale = "SELECT id, farmer_id, buyer_id, product_type_id, quantity, price, created_at FROM sales"

func hydrateSale(s scanner) (*types.Sale, error) {
	var sale types.Sale
	var productTypeID sql.NullInt64
	var created string
	err := s.Scan(&sale.ID, &sale.FarmerID, &sale.BuyerID, &productTypeID,
		&sale.Quantity, &sale.Price, &created)
	if err != nil {
		return nil, fmt.Errorf("scanning sale: %w", err)
	}
	sale.ProductTypeID = int64Ptr(productTypeID)
	if sale.CreatedAt, err = parseDate("sale created_at", created); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Create resolves the farmer, buyer and optional product type, then inserts
// the sale. CreatedAt defaults to today.
func (st *salesTable) Create(s *types.Sale) error {
	if s == nil {
		return types.ErrInvalidData
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = st.backend.today()
	}
	return st.backend.withTx("create sale", func(tx *sql.Tx) error {
		if err := requireRow(tx, "sale", "farmer_id", types.FarmersTable, s.FarmerID); err != nil {
			return err
		}
		if err := requireRow(tx, "sale", "buyer_id", types.BuyersTable, s.BuyerID); err != nil {
			return err
		}
		if s.ProductTypeID != nil {
			if err := requireRow(tx, "sale", "product_type_id", types.ProductTypesTable, *s.ProductTypeID); err != nil {
				return err
			}
		}
		res, err := tx.Exec(
			`INSERT INTO sales (farmer_id, buyer_id, product_type_id, quantity, price, created_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			s.FarmerID, s.BuyerID, nullInt64(s.ProductTypeID), s.Quantity, s.Price, formatDate(s.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting sale: %w", err)
		}
		s.ID, err = res.LastInsertId()
		return err
	})
}

func (st *salesTable) GetAll() ([]*types.Sale, error) {
	return st.list(selectSale + " ORDER BY id")
}

func (st *salesTable) FindByID(id int64) (*types.Sale, error) {
	db, err := st.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateSale, selectSale+" WHERE id = ?", id)
}

func (st *salesTable) ListForFarmer(farmerID int64) ([]*types.Sale, error) {
	return st.list(selectSale+" WHERE farmer_id = ? ORDER BY id", farmerID)
}

func (st *salesTable) ListForBuyer(buyerID int64) ([]*types.Sale, error) {
	return st.list(selectSale+" WHERE buyer_id = ? ORDER BY id", buyerID)
}

func (st *salesTable) ListForProductType(productTypeID int64) ([]*types.Sale, error) {
	return st.list(selectSale+" WHERE product_type_id = ? ORDER BY id", productTypeID)
}

func (st *salesTable) Delete(id int64) error {
	return st.backend.withTx("delete sale", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM sales WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting sale: %w", err)
		}
		return requireAffected(res)
	})
}

func (st *salesTable) list(query string, args ...any) ([]*types.Sale, error) {
	db, err := st.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateSale, query, args...)
}
