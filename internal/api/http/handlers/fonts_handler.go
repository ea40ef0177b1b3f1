package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// FontsHandler manages handwriting font endpoints, member and admin sides.
type FontsHandler struct {
	fonts *service.FontService
}

// NewFontsHandler constructs handler.
func NewFontsHandler(fonts *service.FontService) *FontsHandler {
	return &FontsHandler{fonts: fonts}
}

// Request POST /fonts.
func (h *FontsHandler) Request(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.RequestFontRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	font, uploadURL, err := h.fonts.RequestFont(c.UserContext(), identity.Subject, req.Name, req.NameEng)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.RequestFontResponse{
		Font:      h.fontResponse(font),
		UploadURL: uploadURL,
	}})
}

// Mine GET /fonts/me.
func (h *FontsHandler) Mine(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	font, err := h.fonts.MyFont(c.UserContext(), identity.Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.fontResponse(font)})
}

// Delete DELETE /fonts/me.
func (h *FontsHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.fonts.DeleteFont(c.UserContext(), identity.Subject); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPending GET /admin/fonts.
func (h *FontsHandler) ListPending(c *fiber.Ctx) error {
	fonts, err := h.fonts.ListPending(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.FontResponse, 0, len(fonts))
	for _, font := range fonts {
		items = append(items, h.fontResponse(font))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Review PATCH /admin/fonts/:id.
func (h *FontsHandler) Review(c *fiber.Ctx) error {
	var req dto.ReviewFontRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if req.Approve {
		err := h.fonts.Approve(c.UserContext(), c.Params("id"), req.Path)
		if err != nil {
			return err
		}
	} else if err := h.fonts.Reject(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FontsHandler) fontResponse(font *domain.Font) dto.FontResponse {
	return dto.FontResponse{
		ID:          font.ID,
		UserID:      font.UserID,
		Name:        font.Name,
		NameEng:     font.NameEng,
		Status:      font.Status,
		TemplateURL: h.fonts.TemplateURL(font),
		FileURL:     h.fonts.FontFileURL(font),
		CreatedAt:   font.CreatedAt,
	}
}
