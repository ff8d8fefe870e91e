package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// exportSeeded seeds a store whose IDs do not start at 1 and exports it.
func exportSeeded(t *testing.T) (*Backend, string) {
	t.Helper()
	src := newTestBackend(t)
	tmp := mustActivity(t, src, "Placeholder")
	require.NoError(t, src.Activities().Delete(tmp.ID))
	seeded, err := src.SeedSampleData()
	require.NoError(t, err)
	require.True(t, seeded)

	dir := filepath.Join(t.TempDir(), "export")
	_, err = src.ExportJSONL(dir)
	require.NoError(t, err)
	return src, dir
}

func TestImportJSONLRoundTrip(t *testing.T) {
	src, dir := exportSeeded(t)
	dst := newTestBackend(t)

	counts, err := dst.ImportJSONL(dir)
	require.NoError(t, err)
	for _, table := range types.StandardTableNames {
		assert.Equal(t, countRows(t, src, table), counts[table], table)
		assert.Equal(t, counts[table], countRows(t, dst, table), table)
	}

	srcFarmers, err := src.Farmers().GetAll()
	require.NoError(t, err)
	for _, want := range srcFarmers {
		found, err := dst.Farmers().FindByName(want.Name)
		require.NoError(t, err)
		require.Len(t, found, 1, want.Name)
		got := found[0]
		assert.Equal(t, want.NationalID, got.NationalID)
		assert.Equal(t, want.RegistrationDate, got.RegistrationDate)

		require.NotNil(t, want.ActivityID)
		require.NotNil(t, got.ActivityID)
		assert.NotEqual(t, *want.ActivityID, *got.ActivityID, "activity IDs are reassigned")
		wantActivity, err := src.Activities().FindByID(*want.ActivityID)
		require.NoError(t, err)
		gotActivity, err := dst.Activities().FindByID(*got.ActivityID)
		require.NoError(t, err)
		assert.Equal(t, wantActivity.Name, gotActivity.Name)

		wantSales, err := src.Sales().ListForFarmer(want.ID)
		require.NoError(t, err)
		gotSales, err := dst.Sales().ListForFarmer(got.ID)
		require.NoError(t, err)
		require.Len(t, gotSales, len(wantSales))
		for i := range wantSales {
			assert.Equal(t, wantSales[i].Total(), gotSales[i].Total())
			assert.Equal(t, wantSales[i].CreatedAt, gotSales[i].CreatedAt)
		}

		wantMembers, err := src.Memberships().ListForFarmer(want.ID)
		require.NoError(t, err)
		gotMembers, err := dst.Memberships().ListForFarmer(got.ID)
		require.NoError(t, err)
		require.Len(t, gotMembers, len(wantMembers))
		for i := range wantMembers {
			assert.Equal(t, wantMembers[i].Role, gotMembers[i].Role)
		}

		links, err := dst.FarmerActivities().ListForFarmer(got.ID)
		require.NoError(t, err)
		for _, l := range links {
			a, err := dst.Activities().FindByID(l.ActivityID)
			require.NoError(t, err)
			assert.NotNil(t, a)
		}
	}
}

func TestImportJSONLRequiresEmptyStore(t *testing.T) {
	_, dir := exportSeeded(t)
	dst := newTestBackend(t)
	mustCooperative(t, dst, "Existing Coop")

	_, err := dst.ImportJSONL(dir)
	assert.ErrorIs(t, err, types.ErrStoreNotEmpty)
	assert.Equal(t, 1, countRows(t, dst, types.CooperativesTable))
	assert.Zero(t, countRows(t, dst, types.FarmersTable))
}

func TestImportJSONLErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "farmer references a missing activity",
			files:   map[string]string{types.FarmersTable: `{"id":3,"name":"John Doe","national_id":"1","activity_id":9}`},
			wantErr: types.ErrReference,
		},
		{
			name: "sale references a missing buyer",
			files: map[string]string{
				types.FarmersTable: `{"id":3,"name":"John Doe","national_id":"1"}`,
				types.SalesTable:   `{"id":1,"farmer_id":3,"buyer_id":4,"quantity":1,"price":1}`,
			},
			wantErr: types.ErrReference,
		},
		{
			name:    "malformed line",
			files:   map[string]string{types.BuyersTable: "{\"id\":1,\"name\":\"FreshMart\"}\n{oops"},
			wantErr: types.ErrInvalidData,
		},
		{
			name:    "wrong field type",
			files:   map[string]string{types.BuyersTable: `{"id":"one","name":"FreshMart"}`},
			wantErr: types.ErrInvalidData,
		},
		{
			name:    "invalid row",
			files:   map[string]string{types.ActivitiesTable: `{"id":1,"name":"  "}`},
			wantErr: types.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for table, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, table+".jsonl"), []byte(content+"\n"), 0o644))
			}
			b := newTestBackend(t)

			_, err := b.ImportJSONL(dir)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImportJSONLEmptyDirectory(t *testing.T) {
	b := newTestBackend(t)

	counts, err := b.ImportJSONL(t.TempDir())
	require.NoError(t, err)
	for _, table := range types.StandardTableNames {
		assert.Zero(t, counts[table], table)
	}
}

func TestImportJSONLDetached(t *testing.T) {
	b := NewBackend()
	_, err := b.ImportJSONL(t.TempDir())
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}
