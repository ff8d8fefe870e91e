package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// TestSaleLifecycle registers a farmer under an activity, records a sale and
// removes everything again by deleting the activity.
func TestSaleLifecycle(t *testing.T) {
	b := newTestBackend(t)

	activity := mustActivity(t, b, "Maize Farming")
	farmer := mustFarmer(t, b, "John Doe", "12345678", &activity.ID)
	buyer := mustBuyer(t, b, "FreshMart")
	product := mustProductType(t, b, "Maize Grain")

	sale := &types.Sale{FarmerID: farmer.ID, BuyerID: buyer.ID, ProductTypeID: &product.ID, Quantity: 200, Price: 45000}
	require.NoError(t, b.Sales().Create(sale))
	assert.Positive(t, sale.ID)

	farmerSales, err := b.Sales().ListForFarmer(farmer.ID)
	require.NoError(t, err)
	require.Len(t, farmerSales, 1)
	assert.Equal(t, sale.ID, farmerSales[0].ID)

	buyerSales, err := b.Sales().ListForBuyer(buyer.ID)
	require.NoError(t, err)
	require.Len(t, buyerSales, 1)
	assert.Equal(t, sale.ID, buyerSales[0].ID)

	require.NoError(t, b.Activities().Delete(activity.ID))

	gotFarmer, err := b.Farmers().FindByID(farmer.ID)
	require.NoError(t, err)
	assert.Nil(t, gotFarmer)

	gotSale, err := b.Sales().FindByID(sale.ID)
	require.NoError(t, err)
	assert.Nil(t, gotSale)

	gotBuyer, err := b.Buyers().FindByID(buyer.ID)
	require.NoError(t, err)
	assert.NotNil(t, gotBuyer, "buyers outlive the activity")
}
