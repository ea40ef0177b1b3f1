package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

func testSecret() string {
	return base64.StdEncoding.EncodeToString([]byte("unit-test-signing-key-0123456789"))
}

func newTestManager(t *testing.T, accessTTL, refreshTTL time.Duration) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecret(), accessTTL, refreshTTL)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRejectsBadSecret(t *testing.T) {
	_, err := NewTokenManager("not-base64!!!", time.Minute, time.Hour)
	require.Error(t, err)

	_, err = NewTokenManager("", time.Minute, time.Hour)
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestManager(t, 3*time.Minute, 72*time.Hour)
	identity := Identity{Subject: "user-1", Role: domain.RoleUser}

	token, expiresAt, err := tm.GenerateAccessToken(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(3*time.Minute), expiresAt, 2*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, domain.RoleUser, claims.Role)
	require.Equal(t, identity, claims.Identity())
}

func TestIssueMintsDistinctTokens(t *testing.T) {
	tm := newTestManager(t, 3*time.Minute, 72*time.Hour)
	identity := Identity{Subject: "user-1", Role: domain.RoleUser}

	first, _, err := tm.GenerateAccessToken(identity)
	require.NoError(t, err)
	second, _, err := tm.GenerateAccessToken(identity)
	require.NoError(t, err)

	// Both calls land within the same second, so only the jti separates them.
	require.NotEqual(t, first, second)

	claims, err := tm.Parse(second)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)
}

func TestParseExpiredTokenStillYieldsClaims(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	token, _, err := tm.Issue(Identity{Subject: "user-2", Role: domain.RoleUser}, -time.Minute)
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotNil(t, claims)
	require.Equal(t, "user-2", claims.Subject)
}

func TestParseMalformedToken(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)

	_, err := tm.Parse("definitely-not-a-token")
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)

	otherSecret := base64.StdEncoding.EncodeToString([]byte("a-completely-different-key-456789"))
	other, err := NewTokenManager(otherSecret, time.Minute, time.Hour)
	require.NoError(t, err)

	token, _, err := other.GenerateAccessToken(Identity{Subject: "user-3", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestTokenValidator(t *testing.T) {
	tm := newTestManager(t, time.Minute, time.Hour)
	validator := NewTokenValidator(tm)

	live, _, err := tm.GenerateAccessToken(Identity{Subject: "user-4", Role: domain.RoleUser})
	require.NoError(t, err)
	expired, _, err := tm.Issue(Identity{Subject: "user-4", Role: domain.RoleUser}, -time.Second)
	require.NoError(t, err)

	require.True(t, validator.IsValid(live))
	require.False(t, validator.IsValid(expired))
	require.False(t, validator.IsValid(""))
	require.False(t, validator.IsValid("garbage"))
}
