package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func TestCooperativesNameIsUnique(t *testing.T) {
	tests := []struct {
		name string
		run  func(b *Backend) error
	}{
		{
			name: "create",
			run: func(b *Backend) error {
				return b.Cooperatives().Create(&types.Cooperative{Name: "Sunrise Farmers Coop"})
			},
		},
		{
			name: "create with surrounding spaces",
			run: func(b *Backend) error {
				return b.Cooperatives().Create(&types.Cooperative{Name: "  Sunrise Farmers Coop "})
			},
		},
		{
			name: "rename onto existing",
			run: func(b *Backend) error {
				other := &types.Cooperative{Name: "Green Valley Cooperative"}
				if err := b.Cooperatives().Create(other); err != nil {
					return err
				}
				other.Name = "Sunrise Farmers Coop"
				return b.Cooperatives().Update(other)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t)
			mustCooperative(t, b, "Sunrise Farmers Coop")

			var ue *types.UniquenessError
			require.ErrorAs(t, tt.run(b), &ue)
			assert.Equal(t, "cooperative", ue.Entity)

			all, err := b.Cooperatives().GetAll()
			require.NoError(t, err)
			n := 0
			for _, c := range all {
				if c.Name == "Sunrise Farmers Coop" {
					n++
				}
			}
			assert.Equal(t, 1, n)
		})
	}
}

func TestCooperativesUpdate(t *testing.T) {
	b := newTestBackend(t)
	c := mustCooperative(t, b, "Sunrise Farmers Coop")

	c.Description = "Nyeri county"
	require.NoError(t, b.Cooperatives().Update(c), "keeping its own name is not a clash")
	got, err := b.Cooperatives().FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nyeri county", got.Description)

	assert.ErrorIs(t, b.Cooperatives().Update(&types.Cooperative{ID: 77, Name: "Ghost"}), types.ErrNotFound)
}

func TestCooperativesDeleteRemovesMemberships(t *testing.T) {
	b := newTestBackend(t)
	sunrise := mustCooperative(t, b, "Sunrise Farmers Coop")
	valley := mustCooperative(t, b, "Green Valley Cooperative")
	john := mustFarmer(t, b, "John Doe", "1", nil)
	mary := mustFarmer(t, b, "Mary Wanjiku", "2", nil)

	for _, f := range []*types.Farmer{john, mary} {
		_, _, err := b.Memberships().Ensure(f.ID, sunrise.ID, "")
		require.NoError(t, err)
	}
	_, _, err := b.Memberships().Ensure(mary.ID, valley.ID, "")
	require.NoError(t, err)

	require.NoError(t, b.Cooperatives().Delete(sunrise.ID))

	remaining, err := b.Memberships().GetAll()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, valley.ID, remaining[0].CooperativeID)
	assert.Equal(t, 2, countRows(t, b, types.FarmersTable), "farmers are not owned by the cooperative")

	assert.ErrorIs(t, b.Cooperatives().Delete(sunrise.ID), types.ErrNotFound)
}
