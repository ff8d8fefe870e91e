package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func TestProductTypesCRUD(t *testing.T) {
	b := newTestBackend(t)

	p := &types.ProductType{Name: "Maize Grain", Category: "Cereal", TypicalUnit: "KG"}
	require.NoError(t, b.ProductTypes().Create(p))

	p.Description = "Harvested maize grain"
	require.NoError(t, b.ProductTypes().Update(p))

	got, err := b.ProductTypes().FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	missing, err := b.ProductTypes().FindByID(p.ID + 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductTypesDeleteKeepsSales(t *testing.T) {
	b := newTestBackend(t)
	farmer := mustFarmer(t, b, "John Doe", "1", nil)
	buyer := mustBuyer(t, b, "FreshMart")
	maize := mustProductType(t, b, "Maize Grain")
	s1 := mustSale(t, b, farmer.ID, buyer.ID, &maize.ID)
	s2 := mustSale(t, b, farmer.ID, buyer.ID, &maize.ID)

	require.NoError(t, b.ProductTypes().Delete(maize.ID))

	for _, id := range []int64{s1.ID, s2.ID} {
		got, err := b.Sales().FindByID(id)
		require.NoError(t, err)
		require.NotNil(t, got, "sale %d should survive", id)
		assert.Nil(t, got.ProductTypeID)
	}
	assert.ErrorIs(t, b.ProductTypes().Delete(maize.ID), types.ErrNotFound)
}
