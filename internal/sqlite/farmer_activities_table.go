package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

var _ types.FarmerActivityTable = (*farmerActivitiesTable)(nil)

type farmerActivitiesTable struct {
	backend *Backend
}

const selectFarmerActivity = `SELECT id, farmer_id, activity_id, joined_on, role, progress_percent,
    notes, last_updated FROM farmer_activities`

func hydrateFarmerActivity(s scanner) (*types.FarmerActivity, error) {
	var fa types.FarmerActivity
	var joined, updated string
	var notes sql.NullString
	err := s.Scan(&fa.ID, &fa.FarmerID, &fa.ActivityID, &joined, &fa.Role,
		&fa.ProgressPercent, &notes, &updated)
	if err != nil {
		return nil, fmt.Errorf("scanning farmer activity: %w", err)
	}
	fa.Notes = notes.String
	if fa.JoinedOn, err = parseDate("farmer activity joined_on", joined); err != nil {
		return nil, err
	}
	if fa.LastUpdated, err = parseTimestamp("farmer activity last_updated", updated); err != nil {
		return nil, err
	}
	return &fa, nil
}

// Create links an existing farmer to an existing activity. JoinedOn defaults
// to today and Role to "participant".
func (ft *farmerActivitiesTable) Create(fa *types.FarmerActivity) error {
	if fa == nil {
		return types.ErrInvalidData
	}
	if err := fa.Validate(); err != nil {
		return err
	}
	if fa.JoinedOn.IsZero() {
		fa.JoinedOn = ft.backend.today()
	}
	fa.LastUpdated = ft.backend.stamp()
	return ft.backend.withTx("create farmer activity", func(tx *sql.Tx) error {
		if err := requireRow(tx, "farmer activity", "farmer_id", types.FarmersTable, fa.FarmerID); err != nil {
			return err
		}
		if err := requireRow(tx, "farmer activity", "activity_id", types.ActivitiesTable, fa.ActivityID); err != nil {
			return err
		}
		res, err := tx.Exec(
			`INSERT INTO farmer_activities (farmer_id, activity_id, joined_on, role, progress_percent, notes, last_updated)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			fa.FarmerID, fa.ActivityID, formatDate(fa.JoinedOn), fa.Role, fa.ProgressPercent,
			nullString(fa.Notes), formatTimestamp(fa.LastUpdated),
		)
		if err != nil {
			return fmt.Errorf("inserting farmer activity: %w", err)
		}
		fa.ID, err = res.LastInsertId()
		return err
	})
}

func (ft *farmerActivitiesTable) GetAll() ([]*types.FarmerActivity, error) {
	return ft.list(selectFarmerActivity + " ORDER BY id")
}

func (ft *farmerActivitiesTable) FindByID(id int64) (*types.FarmerActivity, error) {
	db, err := ft.backend.handle()
	if err != nil {
		return nil, err
	}
	return findOne(db, hydrateFarmerActivity, selectFarmerActivity+" WHERE id = ?", id)
}

func (ft *farmerActivitiesTable) ListForFarmer(farmerID int64) ([]*types.FarmerActivity, error) {
	return ft.list(selectFarmerActivity+" WHERE farmer_id = ? ORDER BY id", farmerID)
}

func (ft *farmerActivitiesTable) ListForActivity(activityID int64) ([]*types.FarmerActivity, error) {
	return ft.list(selectFarmerActivity+" WHERE activity_id = ? ORDER BY id", activityID)
}

func (ft *farmerActivitiesTable) UpdateProgress(id int64, percent float64, notes *string) (*types.FarmerActivity, error) {
	if err := types.CheckProgress(percent); err != nil {
		return nil, err
	}
	var updated *types.FarmerActivity
	err := ft.backend.withTx("update farmer activity progress", func(tx *sql.Tx) error {
		fa, err := findOne(tx, hydrateFarmerActivity, selectFarmerActivity+" WHERE id = ?", id)
		if err != nil {
			return err
		}
		if fa == nil {
			return types.ErrNotFound
		}
		fa.ProgressPercent = percent
		if notes != nil {
			fa.Notes = *notes
		}
		fa.LastUpdated = ft.backend.stamp()
		_, err = tx.Exec(
			"UPDATE farmer_activities SET progress_percent = ?, notes = ?, last_updated = ? WHERE id = ?",
			fa.ProgressPercent, nullString(fa.Notes), formatTimestamp(fa.LastUpdated), id,
		)
		if err != nil {
			return fmt.Errorf("updating farmer activity: %w", err)
		}
		updated = fa
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ft *farmerActivitiesTable) Delete(id int64) error {
	return ft.backend.withTx("delete farmer activity", func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM farmer_activities WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting farmer activity: %w", err)
		}
		return requireAffected(res)
	})
}

func (ft *farmerActivitiesTable) list(query string, args ...any) ([]*types.FarmerActivity, error) {
	db, err := ft.backend.handle()
	if err != nil {
		return nil, err
	}
	return collect(db, hydrateFarmerActivity, query, args...)
}
