package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.BuyerTable = (*buyersTable)(nil)

type buyersTable struct {
	backend *Backend
}

const selectBuyer = `SELECT id, name, organization, contact_phone, contact_email, address,
    preferred_payment_method FROM buyers`

func hydrateBuyer(s scanner) (*types.Buyer, error) {
	var b types.Buyer
	var org, phone, email, address, payment sql.NullString
	if err := s.Scan(&b.ID, &b.Name, &org, &phone, &email, &address, &payment); err != nil {
		return nil, fmt.Errorf("scanning buyer: %w", err)
	}
	b.Organization = org.String
	b.ContactPhone = phone.String
	b.ContactEmail = email.String
	b.Address = address.String
	b.PreferredPaymentMethod = payment.String
	return &b, nil
}

func (bt *buyersTable) Create(b *types.Buyer) error {
	if b == nil {
		return types.ErrInvalidData
	}
	if err := b.Validate(); err != nil {
		return err
	}
	return bt.backend.withTx("create buyer", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO buyers (name, organization, contact_phone, contact_email, address, preferred_payment_method)
             VALUES (?, ?, ?, ?, ?, ?)`,
			b.Name, nullString(b.Organization), nullString(b.ContactPhone), nullString(b.ContactEmail),
			nullString(b.Address), nullString(b.PreferredPaymentMethod),
		)
		if err != nil {
			return fmt.Errorf("inserting buyer: %w", err)
		}
		b.ID, err = res.LastInsertId()
		return err
	})
}

func (bt *buyersTable) Update(b *types.Buyer) error {
	if b == nil {
		return types.ErrInvalidData
	}
	if b.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := b.Validate(); err != nil {
		return err
	}
	return bt.backend.withTx("update buyer", func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE buyers SET name = ?, organization = ?, contact_phone = ?, contact_email = ?,
             address = ?, preferred_payment_method = ? WHERE id = ?`,
			b.Name, nullString(b.Organization), nullString(b.ContactPhone), nullString(b.ContactEmail),
			nullString(b.Address), nullString(b.PreferredPaymentMethod), b.ID,
		)
		if err != nil {
			return fmt.Errorf("updating buyer: %w", err)
		}
		return requireAffected(res)
	})
}

func (bt *buyersTable) GetAll() ([]*types.Buyer, error) {
	db, err := bt.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateBuyer, selectBuyer+" ORDER BY id")
}

func (bt *buyersTable) FindByID(id int64) (*types.Buyer, error) {
	db, err := bt.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateBuyer, selectBuyer+" WHERE id = ?", id)
}

// Delete removes the buyer and its sales.
func (bt *buyersTable) Delete(id int64) error {
	return bt.backend.withTx("delete buyer", func(tx *sql.Tx) error {
		sales, err := tx.Exec("DELETE FROM sales WHERE buyer_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting buyer sales: %w", err)
		}
		res, err := tx.Exec("DELETE FROM buyers WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting buyer: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		n, err := sales.RowsAffected()
		if err != nil {
			return fmt.Errorf("counting deleted sales: %w", err)
		}
		bt.backend.log.Info("buyer deleted", zap.Int64("buyer_id", id), zap.Int64("sales_deleted", n))
		return nil
	})
}

// requireAffected returns ErrNotFound when a statement touched no rows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
