package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"warranty-hub-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExpiryScanner struct {
	itemsFn func(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error)
}

func (s *stubExpiryScanner) GetItemsEnteringNotifyWindow(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error) {
	return s.itemsFn(ctx, day)
}

func reminderItem() *entities.WarrantyItem {
	expiry := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return &entities.WarrantyItem{
		ID:          uuid.New(),
		Serial:      "SN001",
		ProductName: "Vacuum",
		ExpiryDate:  &expiry,
		Warranty: &entities.Warranty{
			ID:            uuid.New(),
			Code:          "WR001",
			CustomerName:  "Jane Doe",
			CustomerEmail: "jane@example.com",
		},
	}
}

func TestSendItemReminder_Guards(t *testing.T) {
	service := NewReminderService(&stubExpiryScanner{})

	t.Run("complete item is sent", func(t *testing.T) {
		assert.True(t, service.sendItemReminder(reminderItem()))
	})

	t.Run("no parent warranty", func(t *testing.T) {
		item := reminderItem()
		item.Warranty = nil
		assert.False(t, service.sendItemReminder(item))
	})

	t.Run("no customer email", func(t *testing.T) {
		item := reminderItem()
		item.Warranty.CustomerEmail = ""
		assert.False(t, service.sendItemReminder(item))
	})

	t.Run("no expiry date", func(t *testing.T) {
		item := reminderItem()
		item.ExpiryDate = nil
		assert.False(t, service.sendItemReminder(item))
	})
}

func TestSendDailyReminders_ScansAtMidnight(t *testing.T) {
	var scannedDay time.Time
	scanner := &stubExpiryScanner{
		itemsFn: func(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error) {
			scannedDay = day
			return []*entities.WarrantyItem{reminderItem()}, nil
		},
	}

	NewReminderService(scanner).SendDailyReminders()

	require.False(t, scannedDay.IsZero())
	assert.Equal(t, 0, scannedDay.Hour())
	assert.Equal(t, 0, scannedDay.Minute())
	assert.Equal(t, 0, scannedDay.Second())

	now := time.Now()
	assert.Equal(t, now.Year(), scannedDay.Year())
	assert.Equal(t, now.YearDay(), scannedDay.YearDay())
}

func TestSendDailyReminders_ScanFailureIsLoggedOnly(t *testing.T) {
	scanner := &stubExpiryScanner{
		itemsFn: func(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error) {
			return nil, errors.New("connection refused")
		},
	}

	assert.NotPanics(t, func() {
		NewReminderService(scanner).SendDailyReminders()
	})
}
