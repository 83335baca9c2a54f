package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Name     string    `json:"name"`
	Role     string    `json:"role"` // "STORE" or "CUSTOMER"

	StoreProfile *StoreProfile `gorm:"foreignKey:UserID"`
	Timestamp
}

type StoreProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	StoreName           string    `json:"store_name"`
	Address             string    `json:"address"`
	ContactNumber       string    `json:"contact_number"`
	LogoURL             string    `json:"logo_url,omitempty"`
	NotifyDaysInAdvance int       `json:"notify_days_in_advance"` // defaults to 14 on creation

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
