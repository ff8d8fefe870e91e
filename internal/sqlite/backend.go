// Package sqlite implements the SQLite storage backend for the cooperative
// ledger. A Backend is the storage handle; each entity has a table accessor
// whose mutating operations run in a single unit of work (see withTx).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// DatabaseFile is the name of the SQLite file inside the data directory.
const DatabaseFile = "smartfarm.db"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on a local SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	log *zap.Logger
	now func() time.Time // clock for defaults and last_updated stamps
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for unit-of-work and lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(b *Backend) {
		if log != nil {
			b.log = log
		}
	}
}

// WithClock overrides the clock used for default dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach opens <DataDir>/smartfarm.db, creating DataDir if needed, enables
// foreign keys and creates any missing tables. Existing data is kept, so
// attaching again after Detach is safe.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection: every unit of work runs to completion before the next
	// begins, and connection-scoped pragmas stay in force.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.attached = true

	b.log.Debug("store attached", zap.String("path", dbPath))
	return nil
}

// Detach closes the database. After Detach, all table operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}
	b.attached = false

	b.log.Debug("store detached")
	return nil
}

// DataDir returns the data directory of the attached store.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// handle returns the open database, or ErrStoreDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// today returns the backend clock's calendar date.
func (b *Backend) today() time.Time {
	return types.DateOf(b.now())
}

// stamp returns the backend clock's time at second precision, matching what
// RFC 3339 columns store.
func (b *Backend) stamp() time.Time {
	return b.now().UTC().Truncate(time.Second)
}

// Table accessors.

func (b *Backend) Activities() types.ActivityTable      { return &activitiesTable{backend: b} }
func (b *Backend) Farmers() types.FarmerTable           { return &farmersTable{backend: b} }
func (b *Backend) Buyers() types.BuyerTable             { return &buyersTable{backend: b} }
func (b *Backend) ProductTypes() types.ProductTypeTable { return &productTypesTable{backend: b} }
func (b *Backend) Sales() types.SaleTable               { return &salesTable{backend: b} }
func (b *Backend) FarmerActivities() types.FarmerActivityTable {
	return &farmerActivitiesTable{backend: b}
}
func (b *Backend) Cooperatives() types.CooperativeTable { return &cooperativesTable{backend: b} }
func (b *Backend) Memberships() types.MembershipTable   { return &membershipsTable{backend: b} }

// dsn builds a modernc.org/sqlite connection string with foreign key
// enforcement and a busy timeout.
func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
