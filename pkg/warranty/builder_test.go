package warranty

import (
	"testing"
	"time"

	"warranty-hub-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildItem_BackfillsDuration(t *testing.T) {
	input, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:  "Washing machine",
		PurchaseDate: "2024-01-01",
		ExpiryDate:   "2025-01-01",
	})
	require.NoError(t, err)

	require.NotNil(t, input.DurationDays)
	assert.Equal(t, 366, *input.DurationDays) // 2024 is a leap year
	require.NotNil(t, input.DurationMonths)
	assert.Equal(t, 12, *input.DurationMonths)
}

func TestBuildItem_DerivesExpiryFromMonths(t *testing.T) {
	input, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:    "Blender",
		PurchaseDate:   "2024-03-15",
		DurationMonths: 6,
	})
	require.NoError(t, err)

	require.NotNil(t, input.ExpiryDate)
	assert.Equal(t, time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC), *input.ExpiryDate)
	require.NotNil(t, input.DurationMonths)
	assert.Equal(t, 6, *input.DurationMonths)
	require.NotNil(t, input.DurationDays)
	assert.Equal(t, 184, *input.DurationDays)
}

func TestBuildItem_ExplicitExpiryWinsOverMonths(t *testing.T) {
	input, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:    "Fridge",
		PurchaseDate:   "2024-01-01",
		ExpiryDate:     "2024-02-01",
		DurationMonths: 24,
	})
	require.NoError(t, err)

	require.NotNil(t, input.ExpiryDate)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *input.ExpiryDate)
	// the explicitly supplied months are kept, not recomputed
	require.NotNil(t, input.DurationMonths)
	assert.Equal(t, 24, *input.DurationMonths)
}

func TestBuildItem_NoExpiryWithoutDuration(t *testing.T) {
	input, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:  "Kettle",
		PurchaseDate: "2024-01-01",
	})
	require.NoError(t, err)

	assert.Nil(t, input.ExpiryDate)
	assert.Nil(t, input.DurationDays)
	assert.Nil(t, input.DurationMonths)
}

func TestBuildItem_MissingPurchaseDateFails(t *testing.T) {
	_, err := BuildItem(domain.WarrantyItemRequest{ProductName: "TV"})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseDate)

	_, err = BuildItem(domain.WarrantyItemRequest{ProductName: "TV", PurchaseDate: "01/02/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseDate)
}

func TestBuildItem_UnparseableExpiryRejected(t *testing.T) {
	_, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:  "TV",
		PurchaseDate: "2024-01-01",
		ExpiryDate:   "not a date",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)

	_, err = BuildItem(domain.WarrantyItemRequest{
		ProductName:  "TV",
		PurchaseDate: "2024-01-01",
		ExpiryDate:   "01/02/2025",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
}

func TestBuildItem_ExpiryBeforePurchaseFloorsDaysAtZero(t *testing.T) {
	input, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:  "Heater",
		PurchaseDate: "2024-06-01",
		ExpiryDate:   "2024-01-01",
	})
	require.NoError(t, err)

	require.NotNil(t, input.DurationDays)
	assert.Equal(t, 0, *input.DurationDays)
	require.NotNil(t, input.DurationMonths)
	assert.Equal(t, 1, *input.DurationMonths)
}

func TestBuildItem_NormalizesOptionalFields(t *testing.T) {
	input, err := BuildItem(domain.WarrantyItemRequest{
		ProductName:  "  Microwave  ",
		Serial:       "  SN-9  ",
		PurchaseDate: "2024-01-01",
		Coverage:     "   ",
		Note:         " handle with care ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Microwave", input.ProductName)
	assert.Equal(t, "SN-9", input.Serial)
	assert.Nil(t, input.Coverage)
	require.NotNil(t, input.Note)
	assert.Equal(t, "handle with care", *input.Note)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestCollectItems_BatchShapeWins(t *testing.T) {
	req := domain.CreateWarrantyRequest{
		ProductName:  "ignored",
		PurchaseDate: "2024-01-01",
		Items: []domain.WarrantyItemRequest{
			{ProductName: "A", PurchaseDate: "2024-01-01"},
			{ProductName: "B", PurchaseDate: "2024-01-02"},
		},
	}

	items := CollectItems(req)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ProductName)
	assert.Equal(t, "B", items[1].ProductName)
}

func TestCollectItems_LegacyShape(t *testing.T) {
	req := domain.CreateWarrantyRequest{
		ProductName:    "Single product",
		Serial:         "SN123",
		PurchaseDate:   "2024-01-01",
		DurationMonths: 12,
		Coverage:       "parts only",
	}

	items := CollectItems(req)
	require.Len(t, items, 1)
	assert.Equal(t, "Single product", items[0].ProductName)
	assert.Equal(t, "SN123", items[0].Serial)
	assert.Equal(t, 12, items[0].DurationMonths)
	assert.Equal(t, "parts only", items[0].Coverage)
}
