package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.CooperativeTable = (*cooperativesTable)(nil)

type cooperativesTable struct {
	backend *Backend
}

const selectCooperative = "SELECT id, name, description FROM cooperatives"

func hydrateCooperative(s scanner) (*types.Cooperative, error) {
	var c types.Cooperative
	var desc sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &desc); err != nil {
		return nil, fmt.Errorf("scanning cooperative: %w", err)
	}
	c.Description = desc.String
	return &c, nil
}

func cooperativeNameTaken(c *types.Cooperative, err error) error {
	if isUniqueViolation(err) {
		return &types.UniquenessError{Entity: "cooperative", Field: "name", Value: c.Name}
	}
	return err
}

func (ct *cooperativesTable) Create(c *types.Cooperative) error {
	if c == nil {
		return types.ErrInvalidData
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return ct.backend.withTx("create cooperative", func(tx *sql.Tx) error {
		if err := checkUnique(tx, "cooperative", types.CooperativesTable, "name", c.Name, 0); err != nil {
			return err
		}
		res, err := tx.Exec("INSERT INTO cooperatives (name, description) VALUES (?, ?)",
			c.Name, nullString(c.Description))
		if err != nil {
			return fmt.Errorf("inserting cooperative: %w", cooperativeNameTaken(c, err))
		}
		c.ID, err = res.LastInsertId()
		return err
	})
}

func (ct *cooperativesTable) Update(c *types.Cooperative) error {
	if c == nil {
		return types.ErrInvalidData
	}
	if c.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return ct.backend.withTx("update cooperative", func(tx *sql.Tx) error {
		if err := checkUnique(tx, "cooperative", types.CooperativesTable, "name", c.Name, c.ID); err != nil {
			return err
		}
		res, err := tx.Exec("UPDATE cooperatives SET name = ?, description = ? WHERE id = ?",
			c.Name, nullString(c.Description), c.ID)
		if err != nil {
			return fmt.Errorf("updating cooperative: %w", cooperativeNameTaken(c, err))
		}
		return requireAffected(res)
	})
}

func (ct *cooperativesTable) GetAll() ([]*types.Cooperative, error) {
	db, err := ct.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateCooperative, selectCooperative+" ORDER BY id")
}

func (ct *cooperativesTable) FindByID(id int64) (*types.Cooperative, error) {
	db, err := ct.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateCooperative, selectCooperative+" WHERE id = ?", id)
}

// Delete removes the cooperative and its memberships.
func (ct *cooperativesTable) Delete(id int64) error {
	return ct.backend.withTx("delete cooperative", func(tx *sql.Tx) error {
		members, err := tx.Exec("DELETE FROM memberships WHERE cooperative_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting cooperative memberships: %w", err)
		}
		res, err := tx.Exec("DELETE FROM cooperatives WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting cooperative: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		n, err := members.RowsAffected()
		if err != nil {
			return fmt.Errorf("counting deleted memberships: %w", err)
		}
		ct.backend.log.Info("cooperative deleted",
			zap.Int64("cooperative_id", id), zap.Int64("memberships_deleted", n))
		return nil
	})
}
