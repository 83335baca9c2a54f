package warranty

import (
	"math"
	"time"

	"warranty-hub-backend/domain"
)

const (
	StatusActive  = "active"
	StatusNearing = "nearing_expiration"
	StatusExpired = "expired"
	StatusUnknown = "unknown"
)

var statusPresentation = map[string]struct {
	Label string
	Color string
}{
	StatusActive:  {"Active", "green"},
	StatusNearing: {"Nearing expiration", "amber"},
	StatusExpired: {"Expired", "red"},
	StatusUnknown: {"Unknown", "gray"},
}

// DeriveStatusAt maps an expiry date and a notify threshold to the lifecycle
// triple. A day is a fixed 24-hour window counted from now; days_left equal to
// the threshold classifies as nearing_expiration.
func DeriveStatusAt(expiryDate *time.Time, notifyDays int, now time.Time) domain.StatusInfo {
	if expiryDate == nil || expiryDate.IsZero() {
		p := statusPresentation[StatusUnknown]
		return domain.StatusInfo{Code: StatusUnknown, DaysLeft: nil, Label: p.Label, Color: p.Color}
	}

	daysLeft := int(math.Ceil(expiryDate.Sub(now).Hours() / 24))

	code := StatusActive
	switch {
	case daysLeft < 0:
		code = StatusExpired
	case daysLeft <= notifyDays:
		code = StatusNearing
	}

	p := statusPresentation[code]
	return domain.StatusInfo{Code: code, DaysLeft: &daysLeft, Label: p.Label, Color: p.Color}
}

// DeriveStatus samples the wall clock.
func DeriveStatus(expiryDate *time.Time, notifyDays int) domain.StatusInfo {
	return DeriveStatusAt(expiryDate, notifyDays, time.Now())
}
