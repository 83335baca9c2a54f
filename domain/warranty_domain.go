package domain

import (
	"errors"
	"mime/multipart"
)

const (
	// DefaultNotifyDays is the store-side notify threshold assigned to new
	// store profiles. Customer-side reads fall back to CustomerNotifyDays when
	// no profile row exists; both defaults are preserved per call site.
	DefaultNotifyDays  = 14
	CustomerNotifyDays = 30
)

var (
	MessageSuccessCreateWarranty     = "warranty created successfully"
	MessageSuccessGetWarranties      = "warranties retrieved successfully"
	MessageSuccessUpdateWarranty     = "warranty updated successfully"
	MessageSuccessDeleteWarranty     = "warranty deleted successfully"
	MessageSuccessAddWarrantyItem    = "warranty item added successfully"
	MessageSuccessUpdateWarrantyItem = "warranty item updated successfully"
	MessageSuccessDeleteWarrantyItem = "warranty item deleted successfully"
	MessageSuccessUploadItemImage    = "item image uploaded successfully"
	MessageSuccessDeleteItemImage    = "item image deleted successfully"
	MessageSuccessUpdateCustomerNote = "customer note updated successfully"
	MessageSuccessGetDashboardStats  = "dashboard statistics retrieved successfully"

	MessageFailedCreateWarranty     = "failed to create warranty"
	MessageFailedGetWarranties      = "failed to retrieve warranties"
	MessageFailedUpdateWarranty     = "failed to update warranty"
	MessageFailedDeleteWarranty     = "failed to delete warranty"
	MessageFailedAddWarrantyItem    = "failed to add warranty item"
	MessageFailedUpdateWarrantyItem = "failed to update warranty item"
	MessageFailedDeleteWarrantyItem = "failed to delete warranty item"
	MessageFailedUploadItemImage    = "failed to upload item image"
	MessageFailedDeleteItemImage    = "failed to delete item image"
	MessageFailedUpdateCustomerNote = "failed to update customer note"
	MessageFailedGetDashboardStats  = "failed to retrieve dashboard statistics"
	MessageFailedRenderPDF          = "failed to render warranty certificate"

	ErrWarrantyNotFound     = errors.New("warranty not found")
	ErrWarrantyItemNotFound = errors.New("warranty item not found")
	ErrImageNotFound        = errors.New("item image not found")
	ErrInvalidPurchaseDate  = errors.New("purchase date is missing or invalid")
	ErrInvalidExpiryDate    = errors.New("expiry date is invalid")
	ErrEmptyWarranty        = errors.New("warranty must contain at least one item")
	ErrCodeTaken            = errors.New("warranty code already taken")
	ErrSerialConflict       = errors.New("serial already used within this warranty")
	ErrCodeAllocationFailed = errors.New("failed to allocate warranty code")
	ErrNoLinkedCustomer     = errors.New("warranty is not linked to this customer")
)

type (
	// WarrantyItemRequest is one covered product line. The same shape is used
	// for the legacy single-item payload and for entries of the batch payload.
	WarrantyItemRequest struct {
		ProductName    string `json:"product_name" validate:"required"`
		Serial         string `json:"serial" validate:"omitempty"`
		PurchaseDate   string `json:"purchase_date" validate:"required"`
		ExpiryDate     string `json:"expiry_date" validate:"omitempty"`
		DurationMonths int    `json:"duration_months" validate:"omitempty,min=0"`
		Coverage       string `json:"coverage" validate:"omitempty"`
		Note           string `json:"note" validate:"omitempty"`
	}

	// CreateWarrantyRequest accepts both payload shapes: the legacy form embeds
	// a single item's fields at the top level, the batch form sends Items.
	CreateWarrantyRequest struct {
		CustomerName  string `json:"customer_name" validate:"required"`
		CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
		CustomerPhone string `json:"customer_phone" validate:"omitempty"`

		// legacy single-item fields
		ProductName    string `json:"product_name" validate:"omitempty"`
		Serial         string `json:"serial" validate:"omitempty"`
		PurchaseDate   string `json:"purchase_date" validate:"omitempty"`
		ExpiryDate     string `json:"expiry_date" validate:"omitempty"`
		DurationMonths int    `json:"duration_months" validate:"omitempty,min=0"`
		Coverage       string `json:"coverage" validate:"omitempty"`
		Note           string `json:"note" validate:"omitempty"`

		Items []WarrantyItemRequest `json:"items" validate:"omitempty,dive"`
	}

	UpdateWarrantyRequest struct {
		CustomerName  string `json:"customer_name" validate:"omitempty"`
		CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
		CustomerPhone string `json:"customer_phone" validate:"omitempty"`
	}

	UpdateWarrantyItemRequest struct {
		ProductName    string `json:"product_name" validate:"omitempty"`
		Serial         string `json:"serial" validate:"omitempty"`
		PurchaseDate   string `json:"purchase_date" validate:"omitempty"`
		ExpiryDate     string `json:"expiry_date" validate:"omitempty"`
		DurationMonths int    `json:"duration_months" validate:"omitempty,min=0"`
		Coverage       string `json:"coverage" validate:"omitempty"`
		Note           string `json:"note" validate:"omitempty"`
	}

	UpdateCustomerNoteRequest struct {
		CustomerNote string `json:"customer_note" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	// StatusInfo is the derived lifecycle triple attached to every item on read.
	StatusInfo struct {
		Code     string `json:"code"`
		DaysLeft *int   `json:"days_left"`
		Label    string `json:"label"`
		Color    string `json:"color"`
	}

	ImageAttachment struct {
		ID   string `json:"id"`
		URL  string `json:"url"`
		Name string `json:"name"`
		Mime string `json:"mime"`
		Size int64  `json:"size"`
	}

	WarrantyItemResponse struct {
		ID             string            `json:"id"`
		ProductName    string            `json:"product_name"`
		Serial         string            `json:"serial"`
		PurchaseDate   string            `json:"purchase_date"`
		ExpiryDate     string            `json:"expiry_date,omitempty"`
		DurationMonths *int              `json:"duration_months,omitempty"`
		DurationDays   *int              `json:"duration_days,omitempty"`
		Coverage       string            `json:"coverage,omitempty"`
		Note           string            `json:"note,omitempty"`
		CustomerNote   string            `json:"customer_note,omitempty"`
		Images         []ImageAttachment `json:"images"`
		Status         StatusInfo        `json:"status"`
	}

	WarrantyResponse struct {
		ID            string                 `json:"id"`
		Code          string                 `json:"code"`
		CustomerName  string                 `json:"customer_name"`
		CustomerEmail string                 `json:"customer_email,omitempty"`
		CustomerPhone string                 `json:"customer_phone,omitempty"`
		StoreName     string                 `json:"store_name,omitempty"`
		PDFPath       string                 `json:"pdf_path"`
		CreatedAt     string                 `json:"created_at"`
		Items         []WarrantyItemResponse `json:"items"`
	}

	DashboardStatsResponse struct {
		TotalWarranties int64 `json:"total_warranties"`
		TotalItems      int64 `json:"total_items"`
		ActiveItems     int64 `json:"active_items"`
		NearingItems    int64 `json:"nearing_items"`
		ExpiredItems    int64 `json:"expired_items"`
		UnknownItems    int64 `json:"unknown_items"`
	}
)
