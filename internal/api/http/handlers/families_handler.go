package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// FamiliesHandler manages family lifecycle and membership endpoints.
type FamiliesHandler struct {
	families *service.FamilyService
	users    *service.UserService
	files    service.FileService
}

// NewFamiliesHandler constructs handler.
func NewFamiliesHandler(families *service.FamilyService, users *service.UserService, files service.FileService) *FamiliesHandler {
	return &FamiliesHandler{families: families, users: users, files: files}
}

// Create POST /families.
func (h *FamiliesHandler) Create(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	family, uploadURL, err := h.families.CreateFamily(c.UserContext(), identity.Subject, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FamilyMutationResponse{
		Family:    h.familyResponse(family),
		UploadURL: uploadURL,
	}})
}

// Mine GET /families/me.
func (h *FamiliesHandler) Mine(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	family, err := h.families.GetFamily(c.UserContext(), familyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.familyResponse(family)})
}

// Update PATCH /families/me.
func (h *FamiliesHandler) Update(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	var req dto.UpdateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	family, uploadURL, err := h.families.UpdateFamily(c.UserContext(), familyID, req.Name, req.NewThumbnail)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FamilyMutationResponse{
		Family:    h.familyResponse(family),
		UploadURL: uploadURL,
	}})
}

// InviteCode GET /families/me/invite-code.
func (h *FamiliesHandler) InviteCode(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	code, err := h.families.InviteCode(c.UserContext(), familyID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.InviteCodeResponse{Code: code}})
}

// Join POST /families/join.
func (h *FamiliesHandler) Join(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.JoinFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	family, err := h.families.JoinFamily(c.UserContext(), identity.Subject, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.familyResponse(family)})
}

// Members GET /families/me/members.
func (h *FamiliesHandler) Members(c *fiber.Ctx) error {
	_, familyID, err := requireFamily(c, h.users)
	if err != nil {
		return err
	}
	members, err := h.families.Members(c.UserContext(), familyID)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(members))
	for _, member := range members {
		items = append(items, dto.UserResponse{
			ID:         member.ID,
			FamilyID:   member.FamilyID,
			Email:      member.Email,
			Name:       member.Name,
			Birth:      member.Birth,
			Gender:     member.Gender,
			ProfileURL: h.users.ProfileURL(member),
			CreatedAt:  member.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *FamiliesHandler) familyResponse(family *domain.Family) dto.FamilyResponse {
	thumbnail := ""
	if family.ThumbnailKey != "" {
		thumbnail = h.files.DownloadURL(family.ThumbnailKey)
	}
	return dto.FamilyResponse{
		ID:           family.ID,
		Name:         family.Name,
		ThumbnailURL: thumbnail,
		CreatedAt:    family.CreatedAt,
	}
}
