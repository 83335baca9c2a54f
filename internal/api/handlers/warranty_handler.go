package handlers

import (
	"strconv"

	"warranty-hub-backend/domain"
	"warranty-hub-backend/internal/api/presenters"
	"warranty-hub-backend/pkg/warranty"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WarrantyHandler interface {
		CreateWarranty(c *fiber.Ctx) error
		GetWarranties(c *fiber.Ctx) error
		GetWarrantyDetails(c *fiber.Ctx) error
		UpdateWarranty(c *fiber.Ctx) error
		DeleteWarranty(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error

		AddItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		UploadItemImage(c *fiber.Ctx) error
		DeleteItemImage(c *fiber.Ctx) error

		DownloadCertificate(c *fiber.Ctx) error
	}

	warrantyHandler struct {
		warrantyService warranty.WarrantyService
		validator       *validator.Validate
	}
)

func NewWarrantyHandler(warrantyService warranty.WarrantyService, validator *validator.Validate) WarrantyHandler {
	return &warrantyHandler{
		warrantyService: warrantyService,
		validator:       validator,
	}
}

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	return page, limit
}

func paginated(items any, page, limit int, count int64) fiber.Map {
	return fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}
}

func (h *warrantyHandler) CreateWarranty(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	req := new(domain.CreateWarrantyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateWarranty, err)
	}

	res, err := h.warrantyService.CreateWarranty(c.Context(), *req, storeID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateWarranty, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateWarranty)
}

func (h *warrantyHandler) GetWarranties(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)
	status := c.Query("status")

	items, count, err := h.warrantyService.GetWarranties(c.Context(), storeID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetWarranties, err)
	}

	return presenters.SuccessResponse(c, paginated(items, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetWarranties)
}

func (h *warrantyHandler) GetWarrantyDetails(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	warrantyID := c.Params("id")

	res, err := h.warrantyService.GetWarrantyByID(c.Context(), warrantyID, storeID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetWarranties, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetWarranties)
}

func (h *warrantyHandler) UpdateWarranty(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	warrantyID := c.Params("id")
	req := new(domain.UpdateWarrantyRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateWarranty, err)
	}

	if err := h.warrantyService.UpdateWarranty(c.Context(), warrantyID, *req, storeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateWarranty, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateWarranty)
}

func (h *warrantyHandler) DeleteWarranty(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	warrantyID := c.Params("id")

	if err := h.warrantyService.DeleteWarranty(c.Context(), warrantyID, storeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteWarranty, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteWarranty)
}

func (h *warrantyHandler) GetDashboardStats(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)

	stats, err := h.warrantyService.GetDashboardStats(c.Context(), storeID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetDashboardStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}

func (h *warrantyHandler) AddItem(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	warrantyID := c.Params("id")
	req := new(domain.WarrantyItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddWarrantyItem, err)
	}

	res, err := h.warrantyService.AddItem(c.Context(), warrantyID, *req, storeID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAddWarrantyItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddWarrantyItem)
}

func (h *warrantyHandler) UpdateItem(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	itemID := c.Params("itemId")
	req := new(domain.UpdateWarrantyItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateWarrantyItem, err)
	}

	if err := h.warrantyService.UpdateItem(c.Context(), itemID, *req, storeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateWarrantyItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateWarrantyItem)
}

func (h *warrantyHandler) DeleteItem(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	itemID := c.Params("itemId")

	if err := h.warrantyService.DeleteItem(c.Context(), itemID, storeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteWarrantyItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteWarrantyItem)
}

func (h *warrantyHandler) UploadItemImage(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	itemID := c.Params("itemId")
	req := new(domain.UploadItemImageRequest)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadItemImage, err)
	}

	res, err := h.warrantyService.UploadItemImage(c.Context(), itemID, *req, storeID)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUploadItemImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadItemImage)
}

func (h *warrantyHandler) DeleteItemImage(c *fiber.Ctx) error {
	storeID := c.Locals("user_id").(string)
	itemID := c.Params("itemId")
	imageID := c.Params("imageId")

	if err := h.warrantyService.DeleteItemImage(c.Context(), itemID, imageID, storeID); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteItemImage, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItemImage)
}

func (h *warrantyHandler) DownloadCertificate(c *fiber.Ctx) error {
	principalID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	warrantyID := c.Params("id")

	pdfBytes, fileName, err := h.warrantyService.RenderCertificate(c.Context(), warrantyID, principalID, role)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRenderPDF, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(pdfBytes)
}
