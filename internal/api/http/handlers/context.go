package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/service"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// requireIdentity returns the authenticated subject or an unauthorized error.
func requireIdentity(c *fiber.Ctx) (*auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return identity, nil
}

// requireFamily resolves the caller and their family id. Members who have not
// completed enrollment cannot reach family-scoped resources.
func requireFamily(c *fiber.Ctx, users *service.UserService) (userID, familyID string, err error) {
	identity, err := requireIdentity(c)
	if err != nil {
		return "", "", err
	}
	user, err := users.GetUser(c.UserContext(), identity.Subject)
	if err != nil {
		return "", "", err
	}
	if user.FamilyID == nil {
		return "", "", apperrors.NewForbidden("family enrollment required")
	}
	return user.ID, *user.FamilyID, nil
}
