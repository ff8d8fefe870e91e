package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func TestFarmersCreate(t *testing.T) {
	b := newTestBackend(t)
	activity := mustActivity(t, b, "Maize Farming")

	f := &types.Farmer{
		Name:       "John Doe",
		FarmName:   "Green Valley Farm",
		NationalID: "12345678",
		Phone:      "0712345678",
		Address:    "Nakuru",
		ActivityID: &activity.ID,
	}
	require.NoError(t, b.Farmers().Create(f))
	assert.Equal(t, types.DateOf(fixedNow), f.RegistrationDate, "registration date defaults to today")

	got, err := b.Farmers().FindByID(f.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f, got)
}

func TestFarmersCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		farmer  func(t *testing.T, b *Backend) *types.Farmer
		wantErr error
	}{
		{
			name:    "missing national id",
			farmer:  func(*testing.T, *Backend) *types.Farmer { return &types.Farmer{Name: "John"} },
			wantErr: types.ErrValidation,
		},
		{
			name: "unknown activity",
			farmer: func(*testing.T, *Backend) *types.Farmer {
				return &types.Farmer{Name: "John", NationalID: "1", ActivityID: idPtr(77)}
			},
			wantErr: types.ErrReference,
		},
		{
			name: "duplicate national id",
			farmer: func(t *testing.T, b *Backend) *types.Farmer {
				require.NoError(t, b.Farmers().Create(&types.Farmer{Name: "First", NationalID: "12345678"}))
				return &types.Farmer{Name: "Second", NationalID: "12345678"}
			},
			wantErr: types.ErrUniqueness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBackend(t)
			before := countRows(t, b, types.FarmersTable)
			err := b.Farmers().Create(tt.farmer(t, b))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, countRows(t, b, types.FarmersTable))
		})
	}
}

func TestFarmersUpdate(t *testing.T) {
	b := newTestBackend(t)
	john := mustFarmer(t, b, "John Doe", "12345678", nil)
	mustFarmer(t, b, "Mary Wanjiku", "87654321", nil)
	activity := mustActivity(t, b, "Dairy Production")

	update := &types.Farmer{ID: john.ID, Name: "John D.", NationalID: "12345678", ActivityID: &activity.ID}
	require.NoError(t, b.Farmers().Update(update))
	assert.Equal(t, john.RegistrationDate, update.RegistrationDate, "zero registration date keeps the stored one")

	got, err := b.Farmers().FindByID(john.ID)
	require.NoError(t, err)
	assert.Equal(t, "John D.", got.Name)
	require.NotNil(t, got.ActivityID)
	assert.Equal(t, activity.ID, *got.ActivityID)

	clash := &types.Farmer{ID: john.ID, Name: "John", NationalID: "87654321"}
	var ue *types.UniquenessError
	require.ErrorAs(t, b.Farmers().Update(clash), &ue)
	assert.Equal(t, "national_id", ue.Field)

	assert.ErrorIs(t, b.Farmers().Update(&types.Farmer{ID: 500, Name: "X", NationalID: "9"}), types.ErrNotFound)
}

func TestFarmersFindByName(t *testing.T) {
	b := newTestBackend(t)
	john := mustFarmer(t, b, "John Doe", "1", nil)
	mary := mustFarmer(t, b, "Mary Wanjiku", "2", nil)
	johnny := mustFarmer(t, b, "Johnny Kamau", "3", nil)
	emile := mustFarmer(t, b, "Émile Ochieng", "4", nil)

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "john", want: []int64{john.ID, johnny.ID}},
		{query: "JOHN DOE", want: []int64{john.ID}},
		{query: "wanj", want: []int64{mary.ID}},
		{query: "XYZ", want: []int64{}},
		{query: "Émile", want: []int64{emile.ID}},
		{query: "émile", want: []int64{emile.ID}},
		{query: "ÉMILE OCH", want: []int64{emile.ID}},
		{query: "ochieng", want: []int64{emile.ID}},
		{query: "  ", want: []int64{john.ID, mary.ID, johnny.ID, emile.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := b.Farmers().FindByName(tt.query)
			require.NoError(t, err)
			require.NotNil(t, got, "no match is an empty slice")
			ids := []int64{}
			for _, f := range got {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFarmersListForActivity(t *testing.T) {
	b := newTestBackend(t)
	maize := mustActivity(t, b, "Maize Farming")
	dairy := mustActivity(t, b, "Dairy Production")
	john := mustFarmer(t, b, "John Doe", "1", &maize.ID)
	mustFarmer(t, b, "Mary Wanjiku", "2", &dairy.ID)
	mustFarmer(t, b, "Unassigned", "3", nil)

	got, err := b.Farmers().ListForActivity(maize.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, john.ID, got[0].ID)
}

func TestFarmersDeleteCascades(t *testing.T) {
	b := newTestBackend(t)
	activity := mustActivity(t, b, "Maize Farming")
	buyer := mustBuyer(t, b, "FreshMart")
	coop := mustCooperative(t, b, "Sunrise Farmers Coop")
	john := mustFarmer(t, b, "John Doe", "1", &activity.ID)
	mary := mustFarmer(t, b, "Mary Wanjiku", "2", nil)

	mustSale(t, b, john.ID, buyer.ID, nil)
	marySale := mustSale(t, b, mary.ID, buyer.ID, nil)
	require.NoError(t, b.FarmerActivities().Create(&types.FarmerActivity{FarmerID: john.ID, ActivityID: activity.ID}))
	_, _, err := b.Memberships().Ensure(john.ID, coop.ID, "")
	require.NoError(t, err)

	require.NoError(t, b.Farmers().Delete(john.ID))

	got, err := b.Farmers().FindByID(john.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	sales, err := b.Sales().GetAll()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, marySale.ID, sales[0].ID)

	assert.Equal(t, 0, countRows(t, b, types.FarmerActivitiesTable))
	assert.Equal(t, 0, countRows(t, b, types.MembershipsTable))
	assert.Equal(t, 1, countRows(t, b, types.ActivitiesTable), "the activity is not owned by the farmer")

	assert.ErrorIs(t, b.Farmers().Delete(john.ID), types.ErrNotFound)
}

func TestFarmersKeepExplicitRegistrationDate(t *testing.T) {
	b := newTestBackend(t)
	reg := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	f := &types.Farmer{Name: "John Doe", NationalID: "1", RegistrationDate: reg}
	require.NoError(t, b.Farmers().Create(f))

	got, err := b.Farmers().FindByID(f.ID)
	require.NoError(t, err)
	assert.Equal(t, reg, got.RegistrationDate)
}
