package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.MembershipTable = (*membershipsTable)(nil)

type membershipsTable struct {
	backend *Backend
}

const selectMembership = `SELECT cooperative_id, farmer_id, joined_on, role, approved_by, notes,
    last_updated FROM memberships`

const membershipOrder = " ORDER BY cooperative_id, farmer_id"

func hydrateMembership(s scanner) (*types.Membership, error) {
	var m types.Membership
	var joined, updated string
	var approvedBy, notes sql.NullString
	err := s.Scan(&m.CooperativeID, &m.FarmerID, &joined, &m.Role, &approvedBy, &notes, &updated)
	if err != nil {
		return nil, fmt.Errorf("scanning membership: %w", err)
	}
	m.ApprovedBy = approvedBy.String
	m.Notes = notes.String
	if m.JoinedOn, err = parseDate("membership joined_on", joined); err != nil {
		return nil, err
	}
	if m.LastUpdated, err = parseTimestamp("membership last_updated", updated); err != nil {
		return nil, err
	}
	return &m, nil
}

func membershipExists(m *types.Membership) error {
	return &types.UniquenessError{Entity: "membership", Field: "cooperative_id/farmer_id", Value: m.Key()}
}

// Create inserts a membership for an existing farmer and cooperative.
// JoinedOn defaults to today and Role to "member". A second membership for
// the same pair fails with a UniquenessError.
func (mt *membershipsTable) Create(m *types.Membership) error {
	if m == nil {
		return types.ErrInvalidData
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m.JoinedOn.IsZero() {
		m.JoinedOn = mt.backend.today()
	}
	m.LastUpdated = mt.backend.stamp()
	return mt.backend.withTx("create membership", func(tx *sql.Tx) error {
		if err := requireRow(tx, "membership", "cooperative_id", types.CooperativesTable, m.CooperativeID); err != nil {
			return err
		}
		if err := requireRow(tx, "membership", "farmer_id", types.FarmersTable, m.FarmerID); err != nil {
			return err
		}
		existing, err := findOne(tx, hydrateMembership,
			selectMembership+" WHERE cooperative_id = ? AND farmer_id = ?", m.CooperativeID, m.FarmerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return membershipExists(m)
		}
		_, err = tx.Exec(
			`INSERT INTO memberships (cooperative_id, farmer_id, joined_on, role, approved_by, notes, last_updated)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.CooperativeID, m.FarmerID, formatDate(m.JoinedOn), m.Role,
			nullString(m.ApprovedBy), nullString(m.Notes), formatTimestamp(m.LastUpdated),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return membershipExists(m)
			}
			return fmt.Errorf("inserting membership: %w", err)
		}
		return nil
	})
}

// Ensure returns the farmer's membership in the cooperative, creating it
// with role when there is none. An existing membership is returned as is.
func (mt *membershipsTable) Ensure(farmerID, cooperativeID int64, role string) (*types.Membership, bool, error) {
	existing, err := mt.Find(cooperativeID, farmerID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	return mt.createOrLoad(&types.Membership{
		CooperativeID: cooperativeID,
		FarmerID:      farmerID,
		Role:          role,
		JoinedOn:      mt.backend.today(),
	})
}

// createOrLoad inserts m. If the pair was taken since the caller looked, the
// winning row is loaded and returned with created=false.
func (mt *membershipsTable) createOrLoad(m *types.Membership) (*types.Membership, bool, error) {
	err := mt.Create(m)
	if err == nil {
		return m, true, nil
	}
	if !errors.Is(err, types.ErrUniqueness) {
		return nil, false, err
	}

	existing, findErr := mt.Find(m.CooperativeID, m.FarmerID)
	if findErr != nil {
		return nil, false, findErr
	}
	if existing == nil {
		return nil, false, fmt.Errorf("membership %s reported as duplicate but not found: %w", m.Key(), err)
	}
	mt.backend.log.Info("membership already existed",
		zap.Int64("cooperative_id", m.CooperativeID), zap.Int64("farmer_id", m.FarmerID))
	return existing, false, nil
}

func (mt *membershipsTable) Find(cooperativeID, farmerID int64) (*types.Membership, error) {
	db, err := mt.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateMembership,
		selectMembership+" WHERE cooperative_id = ? AND farmer_id = ?", cooperativeID, farmerID)
}

func (mt *membershipsTable) GetAll() ([]*types.Membership, error) {
	return mt.list(selectMembership + membershipOrder)
}

func (mt *membershipsTable) ListForCooperative(cooperativeID int64) ([]*types.Membership, error) {
	return mt.list(selectMembership+" WHERE cooperative_id = ?"+membershipOrder, cooperativeID)
}

func (mt *membershipsTable) ListForFarmer(farmerID int64) ([]*types.Membership, error) {
	return mt.list(selectMembership+" WHERE farmer_id = ?"+membershipOrder, farmerID)
}

func (mt *membershipsTable) Delete(cooperativeID, farmerID int64) error {
	return mt.backend.withTx("delete membership", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM memberships WHERE cooperative_id = ? AND farmer_id = ?",
			cooperativeID, farmerID)
		if err != nil {
			return fmt.Errorf("deleting membership: %w", err)
		}
		return requireAffected(res)
	})
}

func (mt *membershipsTable) list(query string, args ...any) ([]*types.Membership, error) {
	db, err := mt.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateMembership, query, args...)
}
