package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// fixedNow is the clock every test backend runs on.
var fixedNow = time.Date(2024, 5, 10, 14, 30, 15, 500, time.UTC)

// newTestBackend attaches a backend to a fresh temp directory and detaches
// it when the test ends.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// newObservedBackend is newTestBackend with its info logs captured.
func newObservedBackend(t *testing.T) (*Backend, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	b := NewBackend(WithLogger(zap.New(core)), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b, logs
}

func mustActivity(t *testing.T, b *Backend, name string) *types.Activity {
	t.Helper()
	a := &types.Activity{Name: name}
	require.NoError(t, b.Activities().Create(a))
	return a
}

func mustFarmer(t *testing.T, b *Backend, name, nationalID string, activityID *int64) *types.Farmer {
	t.Helper()
	f := &types.Farmer{Name: name, NationalID: nationalID, ActivityID: activityID}
	require.NoError(t, b.Farmers().Create(f))
	return f
}

func mustBuyer(t *testing.T, b *Backend, name string) *types.Buyer {
	t.Helper()
	by := &types.Buyer{Name: name}
	require.NoError(t, b.Buyers().Create(by))
	return by
}

func mustProductType(t *testing.T, b *Backend, name string) *types.ProductType {
	t.Helper()
	p := &types.ProductType{Name: name}
	require.NoError(t, b.ProductTypes().Create(p))
	return p
}

func mustSale(t *testing.T, b *Backend, farmerID, buyerID int64, productTypeID *int64) *types.Sale {
	t.Helper()
	s := &types.Sale{FarmerID: farmerID, BuyerID: buyerID, ProductTypeID: productTypeID, Quantity: 10, Price: 100}
	require.NoError(t, b.Sales().Create(s))
	return s
}

func mustCooperative(t *testing.T, b *Backend, name string) *types.Cooperative {
	t.Helper()
	c := &types.Cooperative{Name: name}
	require.NoError(t, b.Cooperatives().Create(c))
	return c
}

func countRows(t *testing.T, b *Backend, table string) int {
	t.Helper()
	db, err := b.handle()
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func idPtr(id int64) *int64 { return &id }
