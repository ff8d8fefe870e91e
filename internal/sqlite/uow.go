package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// querier is satisfied by *sql.DB and *sql.Tx so lookups can run inside or
// outside a unit of work.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// withTx runs fn as one unit of work: begin, fn, commit. If fn returns an
// error or panics, or the commit fails, the transaction is rolled back before
// the error (or panic) propagates. The borrowed connection is released on
// every path.
func (b *Backend) withTx(op string, fn func(tx *sql.Tx) error) (err error) {
	db, err := b.handle()
	if err != nil {
		return err
	}

	log := b.log.With(zap.String("op", op), zap.String("uow_id", newUnitID()))

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("rollback failed", zap.Error(rbErr))
		}
		if p := recover(); p != nil {
			log.Error("unit of work panicked; rolled back", zap.Any("panic", p))
			panic(p)
		}
		log.Warn("unit of work rolled back", zap.Error(err))
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", op, err)
	}
	committed = true
	log.Debug("unit of work committed")
	return nil
}

// newUnitID returns a correlation id for one unit of work.
func newUnitID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *moderncsqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

// checkUnique returns a UniquenessError when a row other than excludeID
// already holds value in column. Pass excludeID 0 on create.
func checkUnique(q querier, entity, table, column, value string, excludeID int64) error {
	var id int64
	err := q.QueryRow(
		fmt.Sprintf("SELECT id FROM %s WHERE %s = ? AND id != ? LIMIT 1", table, column),
		value, excludeID,
	).Scan(&id)
	if err == nil {
		return &types.UniquenessError{Entity: entity, Field: column, Value: value}
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking %s %s uniqueness: %w", entity, column, err)
	}
	return nil
}

// rowExists reports whether table has a row with the given id.
func rowExists(q querier, table string, id int64) (bool, error) {
	var one int
	err := q.QueryRow(fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table), id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s existence: %w", table, err)
	}
	return true, nil
}

// requireRow returns a ReferenceError when id does not resolve to a row.
func requireRow(q querier, entity, field, table string, id int64) error {
	ok, err := rowExists(q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return &types.ReferenceError{Entity: entity, Field: field, ID: id}
	}
	return nil
}
