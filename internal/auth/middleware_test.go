package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/family-photo-service/internal/domain"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

type fakeBlacklist struct {
	tokens map[string]bool
	err    error
}

func (f *fakeBlacklist) Contains(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.tokens[token], nil
}

func newGateApp(t *testing.T, tm *TokenManager, blacklist BlacklistChecker) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code},
			})
		},
	})
	gate := NewAuthMiddleware(tm, NewTokenValidator(tm), blacklist)
	app.Get("/open", gate.Handle, func(c *fiber.Ctx) error {
		_, authed := IdentityFromContext(c)
		return c.JSON(fiber.Map{"authenticated": authed})
	})
	app.Get("/me", gate.Handle, RequireAuthenticated(), func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.JSON(fiber.Map{"subject": identity.Subject, "role": identity.Role})
	})
	return app
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

func TestGateWithoutTokenPassesThrough(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	app := newGateApp(t, tm, &fakeBlacklist{tokens: map[string]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The same anonymous request is refused where authentication is required.
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateAttachesIdentity(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	app := newGateApp(t, tm, &fakeBlacklist{tokens: map[string]bool{}})

	token, _, err := tm.GenerateAccessToken(Identity{Subject: "user-9", Role: domain.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Subject string `json:"subject"`
		Role    string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "user-9", body.Subject)
	require.Equal(t, string(domain.RoleUser), body.Role)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	app := newGateApp(t, tm, &fakeBlacklist{tokens: map[string]bool{}})

	token, _, err := tm.Issue(Identity{Subject: "user-9", Role: domain.RoleUser}, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "TOKEN_EXPIRED", errorCode(t, resp))
}

func TestGateRejectsBlacklistedToken(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	token, _, err := tm.GenerateAccessToken(Identity{Subject: "user-9", Role: domain.RoleUser})
	require.NoError(t, err)

	app := newGateApp(t, tm, &fakeBlacklist{tokens: map[string]bool{token: true}})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestGateFailsClosedOnStoreOutage(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	token, _, err := tm.GenerateAccessToken(Identity{Subject: "user-9", Role: domain.RoleUser})
	require.NoError(t, err)

	app := newGateApp(t, tm, &fakeBlacklist{err: errors.New("store down")})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRoleGuards(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": domainErr.Code}})
		},
	})
	gate := NewAuthMiddleware(tm, NewTokenValidator(tm), &fakeBlacklist{tokens: map[string]bool{}})
	app.Get("/admin", gate.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	userToken, _, err := tm.GenerateAccessToken(Identity{Subject: "user-9", Role: domain.RoleUser})
	require.NoError(t, err)
	adminToken, _, err := tm.GenerateAccessToken(Identity{Subject: "admin-1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
