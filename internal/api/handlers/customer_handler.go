package handlers

import (
	"warranty-hub-backend/domain"
	"warranty-hub-backend/internal/api/presenters"
	"warranty-hub-backend/pkg/warranty"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CustomerHandler interface {
		GetWarranties(c *fiber.Ctx) error
		GetWarrantyDetails(c *fiber.Ctx) error
		UpdateCustomerNote(c *fiber.Ctx) error
	}

	customerHandler struct {
		warrantyService warranty.WarrantyService
		validator       *validator.Validate
	}
)

func NewCustomerHandler(warrantyService warranty.WarrantyService, validator *validator.Validate) CustomerHandler {
	return &customerHandler{
		warrantyService: warrantyService,
		validator:       validator,
	}
}

func (h *customerHandler) GetWarranties(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	items, count, err := h.warrantyService.GetCustomerWarranties(c.Context(), customerID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetWarranties, err)
	}

	return presenters.SuccessResponse(c, paginated(items, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetWarranties)
}

func (h *customerHandler) GetWarrantyDetails(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	warrantyID := c.Params("id")

	res, err := h.warrantyService.GetCustomerWarrantyByID(c.Context(), warrantyID, customerID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetWarranties, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWarranties)
}

func (h *customerHandler) UpdateCustomerNote(c *fiber.Ctx) error {
	customerID := c.Locals("user_id").(string)
	itemID := c.Params("itemId")
	req := new(domain.UpdateCustomerNoteRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCustomerNote, err)
	}

	if err := h.warrantyService.UpdateCustomerNote(c.Context(), itemID, *req, customerID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateCustomerNote, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateCustomerNote)
}
