package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/api/dto"
	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// AuthHandler manages login, token rotation and logout endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

// Login POST /auth/login. Exchanges a provider authorization code for a
// session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.ProviderLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	pair, user, err := h.authService.LoginWithProvider(c.UserContext(), req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		HasFamily:    user.FamilyID != nil,
		Joined:       user.Joined(),
	}})
}

// AdminLogin POST /auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	pair, err := h.authService.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}})
}

// Reissue POST /auth/reissue. Rotates the access token against a refresh
// token; the refresh token itself is never rotated here.
func (h *AuthHandler) Reissue(c *fiber.Ctx) error {
	var req dto.ReissueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	accessToken, err := h.tokenService.Reissue(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReissueResponse{AccessToken: accessToken}})
}

// Logout GET /auth/logout. Revokes both live tokens of the caller's session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.tokenService.Logout(c.UserContext(), identity.Subject); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}
