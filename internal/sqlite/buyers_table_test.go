package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func TestBuyersCRUD(t *testing.T) {
	b := newTestBackend(t)

	by := &types.Buyer{Name: "FreshMart", Organization: "FreshMart Ltd", PreferredPaymentMethod: "M-Pesa"}
	require.NoError(t, b.Buyers().Create(by))

	got, err := b.Buyers().FindByID(by.ID)
	require.NoError(t, err)
	assert.Equal(t, by, got)

	by.ContactEmail = "buy@freshmart.co.ke"
	require.NoError(t, b.Buyers().Update(by))
	got, err = b.Buyers().FindByID(by.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy@freshmart.co.ke", got.ContactEmail)

	assert.ErrorIs(t, b.Buyers().Update(&types.Buyer{ID: 404, Name: "Ghost"}), types.ErrNotFound)
	assert.ErrorIs(t, b.Buyers().Create(&types.Buyer{Name: " "}), types.ErrValidation)

	// Buyer names are not unique.
	mustBuyer(t, b, "FreshMart")
	all, err := b.Buyers().GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBuyersDeleteRemovesSales(t *testing.T) {
	b := newTestBackend(t)
	farmer := mustFarmer(t, b, "John Doe", "1", nil)
	freshMart := mustBuyer(t, b, "FreshMart")
	agroBuy := mustBuyer(t, b, "AgroBuy")
	mustSale(t, b, farmer.ID, freshMart.ID, nil)
	mustSale(t, b, farmer.ID, freshMart.ID, nil)
	kept := mustSale(t, b, farmer.ID, agroBuy.ID, nil)

	require.NoError(t, b.Buyers().Delete(freshMart.ID))

	sales, err := b.Sales().GetAll()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, kept.ID, sales[0].ID)
	assert.Equal(t, 1, countRows(t, b, types.FarmersTable))

	assert.ErrorIs(t, b.Buyers().Delete(freshMart.ID), types.ErrNotFound)
}
