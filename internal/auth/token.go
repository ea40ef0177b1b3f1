package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// Classification of token verification failures. ErrTokenExpired is special:
// Parse still returns the decoded claims alongside it, because the reissue
// flow needs the subject out of an expired refresh token.
var (
	ErrTokenExpired     = errors.New("auth: token expired")
	ErrInvalidSignature = errors.New("auth: invalid token signature")
	ErrMalformedToken   = errors.New("auth: malformed token")
	ErrInvalidToken     = errors.New("auth: invalid token")
)

// Claims describes the signed token payload.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts claims into the authenticated principal.
func (c *Claims) Identity() Identity {
	return Identity{Subject: c.Subject, Role: c.Role}
}

// TokenManager mints and verifies compact HMAC-SHA256 tokens. The signing key
// is decoded once from the base64 secret at startup and never rotated at
// runtime. Access and refresh tokens differ only in lifetime.
type TokenManager struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager decodes the base64-encoded secret and builds a manager.
func NewTokenManager(secretBase64 string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	key, err := base64.StdEncoding.DecodeString(secretBase64)
	if err != nil {
		return nil, fmt.Errorf("decode jwt secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	return &TokenManager{key: key, accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// GenerateAccessToken mints a short-lived token for per-request authentication.
func (tm *TokenManager) GenerateAccessToken(identity Identity) (string, time.Time, error) {
	return tm.Issue(identity, tm.accessTTL)
}

// GenerateRefreshToken mints a long-lived token used only to obtain new
// access tokens.
func (tm *TokenManager) GenerateRefreshToken(identity Identity) (string, time.Time, error) {
	return tm.Issue(identity, tm.refreshTTL)
}

// Issue builds and signs a token with the given lifetime. Every token carries
// a fresh jti so that two tokens minted within the same second still differ;
// rotation depends on the replacement never colliding with the retired token.
func (tm *TokenManager) Issue(identity Identity, lifetime time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(lifetime)
	claims := &Claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse verifies the signature and decodes claims. Expired tokens are not
// suppressed: the claims come back together with ErrTokenExpired.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			if parsed != nil {
				if claims, ok := parsed.Claims.(*Claims); ok {
					return claims, ErrTokenExpired
				}
			}
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
