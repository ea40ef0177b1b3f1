package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

type memSessionRepo struct {
	sessions map[string]*repository.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*repository.Session{}}
}

func (m *memSessionRepo) Save(_ context.Context, session *repository.Session) error {
	copied := *session
	m.sessions[session.Subject] = &copied
	return nil
}

func (m *memSessionRepo) FindBySubject(_ context.Context, subject string) (*repository.Session, error) {
	session, ok := m.sessions[subject]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *memSessionRepo) FindByAccessToken(_ context.Context, accessToken string) (*repository.Session, error) {
	for _, session := range m.sessions {
		if session.AccessToken == accessToken {
			copied := *session
			return &copied, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (m *memSessionRepo) DeleteBySubject(_ context.Context, subject string) error {
	delete(m.sessions, subject)
	return nil
}

type memBlacklistRepo struct {
	entries map[string]time.Duration
}

func newMemBlacklistRepo() *memBlacklistRepo {
	return &memBlacklistRepo{entries: map[string]time.Duration{}}
}

func (m *memBlacklistRepo) Add(_ context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	m.entries[token] = remaining
	return nil
}

func (m *memBlacklistRepo) Contains(_ context.Context, token string) (bool, error) {
	_, ok := m.entries[token]
	return ok, nil
}

func (m *memBlacklistRepo) RemainingTTL(_ context.Context, token string) (time.Duration, error) {
	return m.entries[token], nil
}

type tokenServiceFixture struct {
	tokens    *auth.TokenManager
	sessions  *memSessionRepo
	blacklist *memBlacklistRepo
	service   *TokenService
}

func newTokenServiceFixture(t *testing.T) *tokenServiceFixture {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("token-service-test-key-0123456789"))
	tm, err := auth.NewTokenManager(secret, 3*time.Minute, 72*time.Hour)
	require.NoError(t, err)

	sessions := newMemSessionRepo()
	blacklist := newMemBlacklistRepo()
	blacklistService := NewBlacklistService(tm, blacklist, zap.NewNop())
	return &tokenServiceFixture{
		tokens:    tm,
		sessions:  sessions,
		blacklist: blacklist,
		service:   NewTokenService(tm, sessions, blacklistService, nil, zap.NewNop()),
	}
}

func TestIssueSessionStoresPair(t *testing.T) {
	fx := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := fx.service.IssueSession(ctx, auth.Identity{Subject: "user-1", Role: domain.RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	session, err := fx.sessions.FindBySubject(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, pair.AccessToken, session.AccessToken)
	require.Equal(t, pair.RefreshToken, session.RefreshToken)
}

func TestReissueRotatesAccessToken(t *testing.T) {
	fx := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := fx.service.IssueSession(ctx, auth.Identity{Subject: "user-1", Role: domain.RoleUser})
	require.NoError(t, err)

	newAccess, err := fx.service.Reissue(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEqual(t, pair.AccessToken, newAccess)

	// The retired access token is revoked; the refresh token survives.
	revoked, err := fx.blacklist.Contains(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, revoked)
	revoked, err = fx.blacklist.Contains(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.False(t, revoked)

	// The replacement must be usable right away, even when the rotation
	// happens within the same second as the original issuance.
	revoked, err = fx.blacklist.Contains(ctx, newAccess)
	require.NoError(t, err)
	require.False(t, revoked)

	session, err := fx.sessions.FindBySubject(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, newAccess, session.AccessToken)
	require.Equal(t, pair.RefreshToken, session.RefreshToken)
}

func TestReissueWithoutSessionStillSucceeds(t *testing.T) {
	fx := newTokenServiceFixture(t)
	ctx := context.Background()

	refresh, _, err := fx.tokens.GenerateRefreshToken(auth.Identity{Subject: "user-2", Role: domain.RoleUser})
	require.NoError(t, err)

	newAccess, err := fx.service.Reissue(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)

	session, err := fx.sessions.FindBySubject(ctx, "user-2")
	require.NoError(t, err)
	require.Equal(t, newAccess, session.AccessToken)
}

func TestReissueRejectsExpiredRefreshToken(t *testing.T) {
	fx := newTokenServiceFixture(t)

	expired, _, err := fx.tokens.Issue(auth.Identity{Subject: "user-3", Role: domain.RoleUser}, -time.Minute)
	require.NoError(t, err)

	_, err = fx.service.Reissue(context.Background(), expired)
	require.Error(t, err)
	require.Equal(t, "TOKEN_EXPIRED", domainCode(t, err))
}

func TestReissueRejectsGarbage(t *testing.T) {
	fx := newTokenServiceFixture(t)

	_, err := fx.service.Reissue(context.Background(), "not-a-token")
	require.Error(t, err)
	require.Equal(t, "INVALID_TOKEN", domainCode(t, err))
}

func TestReissueRejectsBlacklistedRefreshToken(t *testing.T) {
	fx := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := fx.service.IssueSession(ctx, auth.Identity{Subject: "user-4", Role: domain.RoleUser})
	require.NoError(t, err)
	require.NoError(t, fx.service.Logout(ctx, "user-4"))

	_, err = fx.service.Reissue(ctx, pair.RefreshToken)
	require.Error(t, err)
	require.Equal(t, "INVALID_TOKEN", domainCode(t, err))
}

func TestLogoutRevokesBothTokensAndDeletesSession(t *testing.T) {
	fx := newTokenServiceFixture(t)
	ctx := context.Background()

	pair, err := fx.service.IssueSession(ctx, auth.Identity{Subject: "user-5", Role: domain.RoleUser})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, "user-5"))

	revoked, err := fx.blacklist.Contains(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, revoked)
	revoked, err = fx.blacklist.Contains(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, revoked)

	_, err = fx.sessions.FindBySubject(ctx, "user-5")
	require.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestLogoutWithoutSessionIsNoOp(t *testing.T) {
	fx := newTokenServiceFixture(t)
	require.NoError(t, fx.service.Logout(context.Background(), "unknown-subject"))
}

func TestBlacklistAddSkipsExpiredToken(t *testing.T) {
	fx := newTokenServiceFixture(t)
	ctx := context.Background()

	expired, _, err := fx.tokens.Issue(auth.Identity{Subject: "user-6", Role: domain.RoleUser}, -time.Minute)
	require.NoError(t, err)

	blacklistService := NewBlacklistService(fx.tokens, fx.blacklist, zap.NewNop())
	require.NoError(t, blacklistService.Add(ctx, expired))

	present, err := fx.blacklist.Contains(ctx, expired)
	require.NoError(t, err)
	require.False(t, present)
}

func TestBlacklistAddRejectsUndecodableToken(t *testing.T) {
	fx := newTokenServiceFixture(t)
	blacklistService := NewBlacklistService(fx.tokens, fx.blacklist, zap.NewNop())

	require.Error(t, blacklistService.Add(context.Background(), "garbage"))
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	return domainErr.Code
}
