package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// UsersHandler manages member profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.UserContext(), identity.Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.userResponse(user)})
}

// UpdateMe PATCH /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, uploadURL, err := h.users.UpdateProfile(c.UserContext(), identity.Subject, service.ProfileUpdate{
		Name:        req.Name,
		Birth:       req.Birth,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		NewProfile:  req.NewProfile,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProfileUpdateResponse{
		User:      h.userResponse(user),
		UploadURL: uploadURL,
	}})
}

// UnreadLetters GET /users/me/letters/unread-count.
func (h *UsersHandler) UnreadLetters(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}
	count, err := h.users.UnreadLetterCount(c.UserContext(), identity.Subject)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UnreadCountResponse{Count: count}})
}

func (h *UsersHandler) userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		FamilyID:    user.FamilyID,
		Email:       user.Email,
		Name:        user.Name,
		Birth:       user.Birth,
		PhoneNumber: user.PhoneNumber,
		Gender:      user.Gender,
		ProfileURL:  h.users.ProfileURL(user),
		CreatedAt:   user.CreatedAt,
	}
}
