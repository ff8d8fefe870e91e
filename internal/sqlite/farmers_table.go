package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.FarmerTable = (*farmersTable)(nil)

type farmersTable struct {
	backend *Backend
}

const selectFarmer = `SELECT id, name, farm_name, national_id, phone, email, address,
    activity_id, registration_date FROM farmers`

func hydrateFarmer(s scanner) (*types.Farmer, error) {
	var f types.Farmer
	var farmName, phone, email, address sql.NullString
	var activityID sql.NullInt64
	var registered string
	err := s.Scan(&f.ID, &f.Name, &farmName, &f.NationalID, &phone, &email, &address,
		&activityID, &registered)
	if err != nil {
		return nil, fmt.Errorf("scanning farmer: %w", err)
	}
	f.FarmName = farmName.String
	f.Phone = phone.String
	f.Email = email.String
	f.Address = address.String
	f.ActivityID = int64Ptr(activityID)
	if f.RegistrationDate, err = parseDate("farmer registration_date", registered); err != nil {
		return nil, err
	}
	return &f, nil
}

// nationalIDTaken maps a constraint failure on insert/update to the
// uniqueness error callers expect.
func nationalIDTaken(f *types.Farmer, err error) error {
	if isUniqueViolation(err) {
		return &types.UniquenessError{Entity: "farmer", Field: "national_id", Value: f.NationalID}
	}
	return err
}

// Create validates f, resolves its optional activity, checks that the
// national ID is free and inserts it. RegistrationDate defaults to today.
func (ft *farmersTable) Create(f *types.Farmer) error {
	if f == nil {
		return types.ErrInvalidData
	}
	if err := f.Validate(); err != nil {
		return err
	}
	if f.RegistrationDate.IsZero() {
		f.RegistrationDate = ft.backend.today()
	}
	return ft.backend.withTx("create farmer", func(tx *sql.Tx) error {
		if f.ActivityID != nil {
			if err := requireRow(tx, "farmer", "activity_id", types.ActivitiesTable, *f.ActivityID); err != nil {
				return err
			}
		}
		if err := checkUnique(tx, "farmer", types.FarmersTable, "national_id", f.NationalID, 0); err != nil {
			return err
		}
		res, err := tx.Exec(
			`INSERT INTO farmers (name, farm_name, national_id, phone, email, address, activity_id, registration_date)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.Name, nullString(f.FarmName), f.NationalID, nullString(f.Phone), nullString(f.Email),
			nullString(f.Address), nullInt64(f.ActivityID), formatDate(f.RegistrationDate),
		)
		if err != nil {
			return fmt.Errorf("inserting farmer: %w", nationalIDTaken(f, err))
		}
		f.ID, err = res.LastInsertId()
		return err
	})
}

func (ft *farmersTable) Update(f *types.Farmer) error {
	if f == nil {
		return types.ErrInvalidData
	}
	if f.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := f.Validate(); err != nil {
		return err
	}
	return ft.backend.withTx("update farmer", func(tx *sql.Tx) error {
		current, err := findOne(tx, hydrateFarmer, selectFarmer+" WHERE id = ?", f.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return types.ErrNotFound
		}
		if f.RegistrationDate.IsZero() {
			f.RegistrationDate = current.RegistrationDate
		}
		if f.ActivityID != nil {
			if err := requireRow(tx, "farmer", "activity_id", types.ActivitiesTable, *f.ActivityID); err != nil {
				return err
			}
		}
		if err := checkUnique(tx, "farmer", types.FarmersTable, "national_id", f.NationalID, f.ID); err != nil {
			return err
		}
		_, err = tx.Exec(
			`UPDATE farmers SET name = ?, farm_name = ?, national_id = ?, phone = ?, email = ?,
             address = ?, activity_id = ?, registration_date = ? WHERE id = ?`,
			f.Name, nullString(f.FarmName), f.NationalID, nullString(f.Phone), nullString(f.Email),
			nullString(f.Address), nullInt64(f.ActivityID), formatDate(f.RegistrationDate), f.ID,
		)
		if err != nil {
			return fmt.Errorf("updating farmer: %w", nationalIDTaken(f, err))
		}
		return nil
	})
}

func (ft *farmersTable) GetAll() ([]*types.Farmer, error) {
	db, err := ft.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateFarmer, selectFarmer+" ORDER BY id")
}

func (ft *farmersTable) FindByID(id int64) (*types.Farmer, error) {
	db, err := ft.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateFarmer, selectFarmer+" WHERE id = ?", id)
}

// FindByName returns farmers whose name contains query, ignoring case.
// A blank query matches every farmer.
func (ft *farmersTable) FindByName(query string) ([]*types.Farmer, error) {
	db, err := ft.backend.handle()
	if err != nil {
		return nil, err
	}
	all, err := collect(db, hydrateFarmer, selectFarmer+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	// SQLite's lower() folds ASCII only, so names are matched here.
	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]*types.Farmer, 0, len(all))
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Name), needle) {
			matches = append(matches, f)
		}
	}
	return matches, nil
}

func (ft *farmersTable) ListForActivity(activityID int64) ([]*types.Farmer, error) {
	db, err := ft.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateFarmer, selectFarmer+" WHERE activity_id = ? ORDER BY id", activityID)
}

// Delete removes the farmer with its sales, activity links and memberships.
func (ft *farmersTable) Delete(id int64) error {
	return ft.backend.withTx("delete farmer", func(tx *sql.Tx) error {
		n, err := deleteFarmersWhere(tx, "id = ?", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return types.ErrNotFound
		}
		ft.backend.log.Info("farmer deleted", zap.Int64("farmer_id", id))
		return nil
	})
}

// deleteFarmersWhere deletes the farmers matching where, together with the
// sales, farmer-activity links and memberships they own, and returns the
// number of farmers removed. Dependents go first so foreign keys hold at
// every step.
func deleteFarmersWhere(tx *sql.Tx, where string, args ...any) (int64, error) {
	owned := "SELECT id FROM farmers WHERE " + where
	dependents := []struct{ table, stmt string }{
		{types.SalesTable, "DELETE FROM sales WHERE farmer_id IN (" + owned + ")"},
		{types.FarmerActivitiesTable, "DELETE FROM farmer_activities WHERE farmer_id IN (" + owned + ")"},
		{types.MembershipsTable, "DELETE FROM memberships WHERE farmer_id IN (" + owned + ")"},
	}
	for _, d := range dependents {
		if _, err := tx.Exec(d.stmt, args...); err != nil {
			return 0, fmt.Errorf("deleting farmer %s: %w", d.table, err)
		}
	}
	res, err := tx.Exec("DELETE FROM farmers WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting farmers: %w", err)
	}
	return res.RowsAffected()
}
