package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.ProductTypeTable = (*productTypesTable)(nil)

type productTypesTable struct {
	backend *Backend
}

const selectProductType = "SELECT id, name, category, typical_unit, description FROM product_types"

func hydrateProductType(s scanner) (*types.ProductType, error) {
	var p types.ProductType
	var category, unit, desc sql.NullString
	if err := s.Scan(&p.ID, &p.Name, &category, &unit, &desc); err != nil {
		return nil, fmt.Errorf("scanning product type: %w", err)
	}
	p.Category = category.String
	p.TypicalUnit = unit.String
	p.Description = desc.String
	return &p, nil
}

func (pt *productTypesTable) Create(p *types.ProductType) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return pt.backend.withTx("create product type", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO product_types (name, category, typical_unit, description) VALUES (?, ?, ?, ?)",
			p.Name, nullString(p.Category), nullString(p.TypicalUnit), nullString(p.Description),
		)
		if err != nil {
			return fmt.Errorf("inserting product type: %w", err)
		}
		p.ID, err = res.LastInsertId()
		return err
	})
}

func (pt *productTypesTable) Update(p *types.ProductType) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if p.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return pt.backend.withTx("update product type", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE product_types SET name = ?, category = ?, typical_unit = ?, description = ? WHERE id = ?",
			p.Name, nullString(p.Category), nullString(p.TypicalUnit), nullString(p.Description), p.ID,
		)
		if err != nil {
			return fmt.Errorf("updating product type: %w", err)
		}
		return requireAffected(res)
	})
}

func (pt *productTypesTable) GetAll() ([]*types.ProductType, error) {
	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateProductType, selectProductType+" ORDER BY id")
}

func (pt *productTypesTable) FindByID(id int64) (*types.ProductType, error) {
	db, err := pt.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateProductType, selectProductType+" WHERE id = ?", id)
}

// Delete removes the product type. Its sales are kept with a null product
// reference.
func (pt *productTypesTable) Delete(id int64) error {
	return pt.backend.withTx("delete product type", func(tx *sql.Tx) error {
		orphaned, err := tx.Exec("UPDATE sales SET product_type_id = NULL WHERE product_type_id = ?", id)
		if err != nil {
			return fmt.Errorf("detaching product type sales: %w", err)
		}
		res, err := tx.Exec("DELETE FROM product_types WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting product type: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		n, err := orphaned.RowsAffected()
		if err != nil {
			return fmt.Errorf("counting detached sales: %w", err)
		}
		pt.backend.log.Info("product type deleted",
			zap.Int64("product_type_id", id), zap.Int64("sales_detached", n))
		return nil
	})
}
