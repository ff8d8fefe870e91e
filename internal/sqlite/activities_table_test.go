package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func TestActivitiesCreate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   *types.Activity
		wantErr error
		check   func(t *testing.T, b *Backend, a *types.Activity)
	}{
		{
			name:  "stores all fields",
			input: &types.Activity{Name: " Maize Farming ", Description: "Seasonal", StartDate: &start, EndDate: &end},
			check: func(t *testing.T, b *Backend, a *types.Activity) {
				got, err := b.Activities().FindByID(a.ID)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, "Maize Farming", got.Name)
				assert.Equal(t, "Seasonal", got.Description)
				require.NotNil(t, got.StartDate)
				require.NotNil(t, got.EndDate)
				assert.True(t, start.Equal(*got.StartDate))
				assert.True(t, end.Equal(*got.EndDate))
			},
		},
		{
			name:  "optional fields stay empty",
			input: &types.Activity{Name: "Dairy Production"},
			check: func(t *testing.T, b *Backend, a *types.Activity) {
				got, err := b.Activities().FindByID(a.ID)
				require.NoError(t, err)
				assert.Empty(t, got.Description)
				assert.Nil(t, got.StartDate)
				assert.Nil(t, got.EndDate)
			},
		},
		{name: "blank name", input: &types.Activity{Name: ""}, wantErr: types.ErrValidation},
		{name: "end before start", input: &types.Activity{Name: "X", StartDate: &end, EndDate: &start}, wantErr: types.ErrValidation},
		{name: "nil activity", input: nil, wantErr: types.ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t)
			err := b.Activities().Create(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, countRows(t, b, types.ActivitiesTable))
				return
			}
			require.NoError(t, err)
			assert.Positive(t, tt.input.ID)
			tt.check(t, b, tt.input)
		})
	}
}

func TestActivitiesNameIsUnique(t *testing.T) {
	b := newTestBackend(t)
	mustActivity(t, b, "Maize Farming")

	err := b.Activities().Create(&types.Activity{Name: "Maize Farming"})
	var ue *types.UniquenessError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "activity", ue.Entity)
	assert.Equal(t, "name", ue.Field)
	assert.Equal(t, 1, countRows(t, b, types.ActivitiesTable))
}

func TestActivitiesUpdate(t *testing.T) {
	b := newTestBackend(t)
	maize := mustActivity(t, b, "Maize Farming")
	mustActivity(t, b, "Dairy Production")

	maize.Description = "Long rains"
	require.NoError(t, b.Activities().Update(maize))
	got, err := b.Activities().FindByID(maize.ID)
	require.NoError(t, err)
	assert.Equal(t, "Long rains", got.Description)

	taken := &types.Activity{ID: maize.ID, Name: "Dairy Production"}
	assert.ErrorIs(t, b.Activities().Update(taken), types.ErrUniqueness)

	assert.ErrorIs(t, b.Activities().Update(&types.Activity{ID: 999, Name: "Ghost"}), types.ErrNotFound)
	assert.ErrorIs(t, b.Activities().Update(&types.Activity{Name: "No ID"}), types.ErrInvalidID)
}

func TestActivitiesFindByIDMissing(t *testing.T) {
	b := newTestBackend(t)
	got, err := b.Activities().FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestActivitiesGetAllOrdering(t *testing.T) {
	b := newTestBackend(t)
	first := mustActivity(t, b, "Maize Farming")
	second := mustActivity(t, b, "Dairy Production")

	require.NoError(t, b.Activities().Delete(first.ID))
	reinserted := mustActivity(t, b, "Maize Farming")
	assert.Greater(t, reinserted.ID, second.ID, "identifiers are never reused")

	all, err := b.Activities().GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []int64{second.ID, reinserted.ID}, []int64{all[0].ID, all[1].ID})
}

func TestActivitiesDeleteCascades(t *testing.T) {
	b := newTestBackend(t)
	maize := mustActivity(t, b, "Maize Farming")
	dairy := mustActivity(t, b, "Dairy Production")
	buyer := mustBuyer(t, b, "FreshMart")
	coop := mustCooperative(t, b, "Sunrise Farmers Coop")

	owned := []*types.Farmer{
		mustFarmer(t, b, "John Doe", "1", &maize.ID),
		mustFarmer(t, b, "Jane Doe", "2", &maize.ID),
		mustFarmer(t, b, "Jim Doe", "3", &maize.ID),
	}
	other := mustFarmer(t, b, "Mary Wanjiku", "4", &dairy.ID)

	for _, f := range owned {
		mustSale(t, b, f.ID, buyer.ID, nil)
		_, _, err := b.Memberships().Ensure(f.ID, coop.ID, "")
		require.NoError(t, err)
	}
	otherSale := mustSale(t, b, other.ID, buyer.ID, nil)
	require.NoError(t, b.FarmerActivities().Create(&types.FarmerActivity{FarmerID: other.ID, ActivityID: maize.ID}))
	require.NoError(t, b.FarmerActivities().Create(&types.FarmerActivity{FarmerID: other.ID, ActivityID: dairy.ID}))

	require.NoError(t, b.Activities().Delete(maize.ID))

	farmers, err := b.Farmers().GetAll()
	require.NoError(t, err)
	require.Len(t, farmers, 1)
	assert.Equal(t, other.ID, farmers[0].ID)

	sales, err := b.Sales().GetAll()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, otherSale.ID, sales[0].ID)

	memberships, err := b.Memberships().GetAll()
	require.NoError(t, err)
	assert.Empty(t, memberships)

	links, err := b.FarmerActivities().GetAll()
	require.NoError(t, err)
	require.Len(t, links, 1, "only the link to the remaining activity survives")
	assert.Equal(t, dairy.ID, links[0].ActivityID)

	assert.ErrorIs(t, b.Activities().Delete(maize.ID), types.ErrNotFound)
}
