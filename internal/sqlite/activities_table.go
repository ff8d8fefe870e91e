package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.ActivityTable = (*activitiesTable)(nil)

type activitiesTable struct {
	backend *Backend
}

const selectActivity = "SELECT id, name, description, start_date, end_date FROM activities"

func hydrateActivity(s scanner) (*types.Activity, error) {
	var a types.Activity
	var desc, start, end sql.NullString
	if err := s.Scan(&a.ID, &a.Name, &desc, &start, &end); err != nil {
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.Description = desc.String
	var err error
	if a.StartDate, err = parseNullDate("activity start_date", start); err != nil {
		return nil, err
	}
	if a.EndDate, err = parseNullDate("activity end_date", end); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create validates a, checks that its name is free and inserts it.
func (at *activitiesTable) Create(a *types.Activity) error {
	if a == nil {
		return types.ErrInvalidData
	}
	if err := a.Validate(); err != nil {
		return err
	}
	return at.backend.withTx("create activity", func(tx *sql.Tx) error {
		if err := checkUnique(tx, "activity", types.ActivitiesTable, "name", a.Name, 0); err != nil {
			return err
		}
		res, err := tx.Exec(
			"INSERT INTO activities (name, description, start_date, end_date) VALUES (?, ?, ?, ?)",
			a.Name, nullString(a.Description), nullDate(a.StartDate), nullDate(a.EndDate),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return &types.UniquenessError{Entity: "activity", Field: "name", Value: a.Name}
			}
			return fmt.Errorf("inserting activity: %w", err)
		}
		a.ID, err = res.LastInsertId()
		return err
	})
}

// Update rewrites every column of an existing activity.
func (at *activitiesTable) Update(a *types.Activity) error {
	if a == nil {
		return types.ErrInvalidData
	}
	if a.ID <= 0 {
		return types.ErrInvalidID
	}
	if err := a.Validate(); err != nil {
		return err
	}
	return at.backend.withTx("update activity", func(tx *sql.Tx) error {
		ok, err := rowExists(tx, types.ActivitiesTable, a.ID)
		if err != nil {
			return err
		}
		if !ok {
			return types.ErrNotFound
		}
		if err := checkUnique(tx, "activity", types.ActivitiesTable, "name", a.Name, a.ID); err != nil {
			return err
		}
		_, err = tx.Exec(
			"UPDATE activities SET name = ?, description = ?, start_date = ?, end_date = ? WHERE id = ?",
			a.Name, nullString(a.Description), nullDate(a.StartDate), nullDate(a.EndDate), a.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return &types.UniquenessError{Entity: "activity", Field: "name", Value: a.Name}
			}
			return fmt.Errorf("updating activity: %w", err)
		}
		return nil
	})
}

func (at *activitiesTable) GetAll() ([]*types.Activity, error) {
	db, err := at.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateActivity, selectActivity+" ORDER BY id")
}

func (at *activitiesTable) FindByID(id int64) (*types.Activity, error) {
	db, err := at.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateActivity, selectActivity+" WHERE id = ?", id)
}

// Delete removes the activity, the farmers registered under it (with all
// rows they own) and the activity's farmer links.
func (at *activitiesTable) Delete(id int64) error {
	return at.backend.withTx("delete activity", func(tx *sql.Tx) error {
		ok, err := rowExists(tx, types.ActivitiesTable, id)
		if err != nil {
			return err
		}
		if !ok {
			return types.ErrNotFound
		}

		farmers, err := deleteFarmersWhere(tx, "activity_id = ?", id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec("DELETE FROM farmer_activities WHERE activity_id = ?", id); err != nil {
			return fmt.Errorf("deleting activity links: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM activities WHERE id = ?", id); err != nil {
			return fmt.Errorf("deleting activity: %w", err)
		}

		at.backend.log.Info("activity deleted",
			zap.Int64("activity_id", id), zap.Int64("farmers_deleted", farmers))
		return nil
	})
}
