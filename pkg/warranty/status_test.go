package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatusAt_Boundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		daysLeft int
		want     string
	}{
		{"at threshold is nearing", 14, StatusNearing},
		{"one past threshold is active", 15, StatusActive},
		{"one day overdue is expired", -1, StatusExpired},
		{"expiring today is nearing", 0, StatusNearing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiry := now.Add(time.Duration(tt.daysLeft) * 24 * time.Hour)
			status := DeriveStatusAt(&expiry, 14, now)
			assert.Equal(t, tt.want, status.Code)
			require.NotNil(t, status.DaysLeft)
			assert.Equal(t, tt.daysLeft, *status.DaysLeft)
		})
	}
}

func TestDeriveStatusAt_NilExpiryIsUnknown(t *testing.T) {
	status := DeriveStatusAt(nil, 14, time.Now())
	assert.Equal(t, StatusUnknown, status.Code)
	assert.Nil(t, status.DaysLeft)
	assert.Equal(t, "Unknown", status.Label)
}

func TestDeriveStatusAt_PartialDayRoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(13*24*time.Hour + 12*time.Hour)

	status := DeriveStatusAt(&expiry, 14, now)
	require.NotNil(t, status.DaysLeft)
	assert.Equal(t, 14, *status.DaysLeft)
	assert.Equal(t, StatusNearing, status.Code)
}

func TestDeriveStatusAt_Presentation(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	active := now.Add(100 * 24 * time.Hour)
	status := DeriveStatusAt(&active, 14, now)
	assert.Equal(t, "Active", status.Label)
	assert.Equal(t, "green", status.Color)

	expired := now.Add(-50 * 24 * time.Hour)
	status = DeriveStatusAt(&expired, 14, now)
	assert.Equal(t, "Expired", status.Label)
	assert.Equal(t, "red", status.Color)
}

func TestDeriveStatusAt_ThresholdIsPerCaller(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expiry := now.Add(20 * 24 * time.Hour)

	assert.Equal(t, StatusActive, DeriveStatusAt(&expiry, 14, now).Code)
	assert.Equal(t, StatusNearing, DeriveStatusAt(&expiry, 30, now).Code)
}
