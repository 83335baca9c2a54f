package entities

import (
	"time"

	"github.com/google/uuid"
)

type Warranty struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	StoreID       uuid.UUID  `gorm:"uniqueIndex:idx_warranties_store_code" json:"store_id"`
	Code          string     `gorm:"uniqueIndex:idx_warranties_store_code" json:"code"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	CustomerPhone string     `json:"customer_phone,omitempty"`

	Store    *User           `gorm:"foreignKey:StoreID"`
	Customer *User           `gorm:"foreignKey:CustomerID"`
	Items    []*WarrantyItem `gorm:"foreignKey:WarrantyID"`
	Timestamp
}

type WarrantyItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	WarrantyID     uuid.UUID  `gorm:"uniqueIndex:idx_warranty_items_warranty_serial" json:"warranty_id"`
	Serial         string     `gorm:"uniqueIndex:idx_warranty_items_warranty_serial" json:"serial"`
	ProductName    string     `json:"product_name"`
	PurchaseDate   time.Time  `json:"purchase_date"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	DurationMonths *int       `json:"duration_months,omitempty"`
	DurationDays   *int       `json:"duration_days,omitempty"`
	Coverage       *string    `json:"coverage,omitempty"`
	Note           *string    `json:"note,omitempty"`
	CustomerNote   *string    `json:"customer_note,omitempty"`
	Images         string     `gorm:"type:text" json:"images"` // JSON-encoded []ImageAttachment

	Warranty *Warranty `gorm:"foreignKey:WarrantyID"`
	Timestamp
}
