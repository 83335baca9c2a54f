package warranty

import (
	"encoding/json"
	"fmt"
	"time"

	"warranty-hub-backend/domain"
	"warranty-hub-backend/entities"
)

// DecodeImages deserializes the stored attachment list. Both a JSON array and
// a JSON-encoded string of one are accepted; parse failures default to an
// empty list.
func DecodeImages(raw string) []domain.ImageAttachment {
	if raw == "" {
		return []domain.ImageAttachment{}
	}

	var images []domain.ImageAttachment
	if err := json.Unmarshal([]byte(raw), &images); err == nil {
		return images
	}

	var nested string
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &images); err == nil {
			return images
		}
	}
	return []domain.ImageAttachment{}
}

// EncodeImages serializes the attachment list for the text column.
func EncodeImages(images []domain.ImageAttachment) string {
	if images == nil {
		images = []domain.ImageAttachment{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func isoDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// MapItemAt projects one persisted item to the wire shape with the status
// derived at the given instant.
func MapItemAt(item *entities.WarrantyItem, notifyDays int, now time.Time) domain.WarrantyItemResponse {
	res := domain.WarrantyItemResponse{
		ID:             item.ID.String(),
		ProductName:    item.ProductName,
		Serial:         item.Serial,
		PurchaseDate:   isoDate(item.PurchaseDate),
		DurationMonths: item.DurationMonths,
		DurationDays:   item.DurationDays,
		Images:         DecodeImages(item.Images),
		Status:         DeriveStatusAt(item.ExpiryDate, notifyDays, now),
	}
	if item.ExpiryDate != nil {
		res.ExpiryDate = isoDate(*item.ExpiryDate)
	}
	if item.Coverage != nil {
		res.Coverage = *item.Coverage
	}
	if item.Note != nil {
		res.Note = *item.Note
	}
	if item.CustomerNote != nil {
		res.CustomerNote = *item.CustomerNote
	}
	return res
}

// MapWarrantyAt projects a persisted warranty with its items, attaching the
// stable PDF download path.
func MapWarrantyAt(w *entities.Warranty, notifyDays int, now time.Time) domain.WarrantyResponse {
	res := domain.WarrantyResponse{
		ID:            w.ID.String(),
		Code:          w.Code,
		CustomerName:  w.CustomerName,
		CustomerEmail: w.CustomerEmail,
		CustomerPhone: w.CustomerPhone,
		PDFPath:       fmt.Sprintf("/api/v1/warranties/%s/pdf", w.ID.String()),
		CreatedAt:     isoDate(w.CreatedAt),
		Items:         make([]domain.WarrantyItemResponse, 0, len(w.Items)),
	}
	if w.Store != nil && w.Store.StoreProfile != nil {
		res.StoreName = w.Store.StoreProfile.StoreName
	}
	for _, item := range w.Items {
		res.Items = append(res.Items, MapItemAt(item, notifyDays, now))
	}
	return res
}

// MapWarranty samples the wall clock.
func MapWarranty(w *entities.Warranty, notifyDays int) domain.WarrantyResponse {
	return MapWarrantyAt(w, notifyDays, time.Now())
}
