package service

import (
	"testing"

	"sales-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateMerchandise(t *testing.T) {
	db := newTestDB(t)

	merch, err := CreateMerchandise(db, MerchandiseInput{
		Name:        "Widget",
		Description: "A widget",
		Quantity:    10,
		Price:       99.5,
	})
	require.NoError(t, err)
	assert.NotZero(t, merch.ID)
	assert.False(t, merch.CreatedAt.IsZero())
	assert.False(t, merch.UpdatedAt.IsZero())
}

func TestCreateMerchandiseValidation(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name  string
		input MerchandiseInput
	}{
		{"missing name", MerchandiseInput{Name: "", Quantity: 1, Price: 10}},
		{"blank name", MerchandiseInput{Name: "   ", Quantity: 1, Price: 10}},
		{"negative quantity", MerchandiseInput{Name: "Widget", Quantity: -1, Price: 10}},
		{"zero price", MerchandiseInput{Name: "Widget", Quantity: 1, Price: 0}},
		{"negative price", MerchandiseInput{Name: "Widget", Quantity: 1, Price: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateMerchandise(db, tt.input)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestUpdateMerchandise(t *testing.T) {
	db := newTestDB(t)
	merch := seedMerchandise(t, db, "Widget", 10, 100)

	updated, err := UpdateMerchandise(db, merch.ID, MerchandiseInput{
		Name:        "Gadget",
		Description: "renamed",
		Quantity:    25,
		Price:       120,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, 25, updated.Quantity)
	assert.Equal(t, 120.0, updated.Price)

	_, err = UpdateMerchandise(db, 9999, MerchandiseInput{Name: "X", Quantity: 1, Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMerchandiseGuard(t *testing.T) {
	db := newTestDB(t)
	merch := seedMerchandise(t, db, "Widget", 10, 100)
	consumer := seedConsumer(t, db, "Alice")

	sale, err := RecordSale(db, RecordSaleInput{
		MerchandiseID: merch.ID, ConsumerID: consumer.ID, QuantitySold: 1,
	})
	require.NoError(t, err)

	// Blocked while a sale references the item.
	assert.ErrorIs(t, DeleteMerchandise(db, merch.ID), ErrConflict)

	require.NoError(t, ReverseSale(db, sale.ID))
	require.NoError(t, DeleteMerchandise(db, merch.ID))

	var count int64
	require.NoError(t, db.Model(&model.Merchandise{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, DeleteMerchandise(db, merch.ID), ErrNotFound)
}

func TestDeleteMerchandiseGuardHoldsAgainstConcurrentSale(t *testing.T) {
	db, other := newTestDBPair(t)
	merch := seedMerchandise(t, db, "Widget", 10, 100)
	consumer := seedConsumer(t, db, "Alice")

	// Slip a sale in through a second connection right before the delete
	// statement runs, after the guard has already counted zero references.
	var saleErr error
	fired := false
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test_concurrent_sale", func(d *gorm.DB) {
		if fired || d.Statement.Table != "merchandise" {
			return
		}
		fired = true
		_, saleErr = RecordSale(other, RecordSaleInput{
			MerchandiseID: merch.ID, ConsumerID: consumer.ID, QuantitySold: 1,
		})
	}))

	require.NoError(t, DeleteMerchandise(db, merch.ID))
	require.True(t, fired)

	// The competing sale loses to the delete transaction; committing it
	// would leave a sale referencing merchandise that no longer exists.
	assert.Error(t, saleErr)
	var sales int64
	require.NoError(t, db.Model(&model.Sale{}).Where("merchandise_id = ?", merch.ID).Count(&sales).Error)
	assert.Zero(t, sales)
}

func TestListMerchandiseOrderedByName(t *testing.T) {
	db := newTestDB(t)
	seedMerchandise(t, db, "Zebra", 1, 10)
	seedMerchandise(t, db, "Apple", 1, 10)
	seedMerchandise(t, db, "Mango", 1, 10)

	items, err := ListMerchandise(db)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Apple", items[0].Name)
	assert.Equal(t, "Mango", items[1].Name)
	assert.Equal(t, "Zebra", items[2].Name)
}
