package warranty

import (
	"math"
	"strings"
	"time"

	"warranty-hub-backend/domain"
)

const dateLayout = "2006-01-02"

// ItemInput is the canonical per-item record the persistence layer consumes,
// normalized from either payload shape.
type ItemInput struct {
	ProductName    string
	Serial         string
	PurchaseDate   time.Time
	ExpiryDate     *time.Time
	DurationMonths *int
	DurationDays   *int
	Coverage       *string
	Note           *string
}

// CollectItems flattens the dual create payload into one item list: the batch
// form wins when present, otherwise the legacy top-level fields describe a
// single item.
func CollectItems(req domain.CreateWarrantyRequest) []domain.WarrantyItemRequest {
	if len(req.Items) > 0 {
		return req.Items
	}
	return []domain.WarrantyItemRequest{{
		ProductName:    req.ProductName,
		Serial:         req.Serial,
		PurchaseDate:   req.PurchaseDate,
		ExpiryDate:     req.ExpiryDate,
		DurationMonths: req.DurationMonths,
		Coverage:       req.Coverage,
		Note:           req.Note,
	}}
}

// BuildItem normalizes one item payload. Purchase date is required and a
// supplied expiry must parse; an absent expiry falls back to purchase +
// durationMonths when a positive duration is given, else nil. DurationDays is
// derived from the two dates and DurationMonths is back-filled from it when
// absent.
func BuildItem(req domain.WarrantyItemRequest) (ItemInput, error) {
	purchaseDate, err := time.Parse(dateLayout, strings.TrimSpace(req.PurchaseDate))
	if err != nil {
		return ItemInput{}, domain.ErrInvalidPurchaseDate
	}

	var expiryDate *time.Time
	if s := strings.TrimSpace(req.ExpiryDate); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			return ItemInput{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = &parsed
	}
	if expiryDate == nil && req.DurationMonths > 0 {
		derived := purchaseDate.AddDate(0, req.DurationMonths, 0)
		expiryDate = &derived
	}

	var durationDays *int
	if expiryDate != nil {
		days := int(math.Ceil(expiryDate.Sub(purchaseDate).Hours() / 24))
		if days < 0 {
			days = 0
		}
		durationDays = &days
	}

	var durationMonths *int
	if req.DurationMonths > 0 {
		months := req.DurationMonths
		durationMonths = &months
	} else if durationDays != nil {
		months := int(math.Round(float64(*durationDays) / 30))
		if months < 1 {
			months = 1
		}
		durationMonths = &months
	}

	return ItemInput{
		ProductName:    strings.TrimSpace(req.ProductName),
		Serial:         strings.TrimSpace(req.Serial),
		PurchaseDate:   purchaseDate,
		ExpiryDate:     expiryDate,
		DurationMonths: durationMonths,
		DurationDays:   durationDays,
		Coverage:       optionalString(req.Coverage),
		Note:           optionalString(req.Note),
	}, nil
}

// NormalizeEmail lower-cases and trims a customer email so it matches
// existing customer accounts consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optionalString maps blank input to nil so optional columns stay NULL.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
