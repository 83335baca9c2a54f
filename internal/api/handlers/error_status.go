package handlers

import (
	"errors"

	"warranty-hub-backend/domain"

	"github.com/gofiber/fiber/v2"
)

// statusForError translates intentionally user-facing domain errors to their
// HTTP status; everything unmatched defaults to 500. Allocation exhaustion is
// an operational anomaly, not a user-facing condition.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidPurchaseDate),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrEmptyWarranty),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrCredentialsInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNoLinkedCustomer),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrWarrantyNotFound),
		errors.Is(err, domain.ErrWarrantyItemNotFound),
		errors.Is(err, domain.ErrImageNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrStoreProfileNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrSerialConflict),
		errors.Is(err, domain.ErrCodeTaken),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
