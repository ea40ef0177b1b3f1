package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

const identityKey = "auth_identity"

// BlacklistChecker is the revocation lookup the gate depends on. A store
// failure must surface as an error, never as "not blacklisted".
type BlacklistChecker interface {
	Contains(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware validates bearer tokens and attaches the caller identity to
// the request context. Requests without a token pass through unauthenticated;
// whether a route tolerates that is the role guards' decision.
type AuthMiddleware struct {
	tokens    *TokenManager
	validator *TokenValidator
	blacklist BlacklistChecker
}

// NewAuthMiddleware constructs the gate.
func NewAuthMiddleware(tokens *TokenManager, validator *TokenValidator, blacklist BlacklistChecker) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, validator: validator, blacklist: blacklist}
}

// Handle authenticates the request when a bearer token is present.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := resolveBearerToken(c)
	if tokenStr == "" {
		return c.Next()
	}

	if !m.validator.IsValid(tokenStr) {
		return apperrors.NewTokenExpired()
	}

	blacklisted, err := m.blacklist.Contains(c.UserContext(), tokenStr)
	if err != nil {
		// A revocation store outage fails the request outright rather than
		// letting a possibly revoked token through.
		return apperrors.NewInternalError(err)
	}
	if blacklisted {
		return apperrors.NewInvalidToken()
	}

	claims, err := m.tokens.Parse(tokenStr)
	if err != nil {
		return apperrors.NewInvalidToken()
	}

	identity := claims.Identity()
	c.Locals(identityKey, &identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated principal.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}

// resolveBearerToken extracts the token from the Authorization header.
func resolveBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
