package auth

import (
	"errors"
	"time"
)

// TokenValidator classifies a token as usable right now. It deliberately does
// not consult the blacklist: revocation checking is a separate step so callers
// that only need claims (reissue bookkeeping) are not forced through store I/O.
type TokenValidator struct {
	tokens *TokenManager
}

// NewTokenValidator builds a validator over the given manager.
func NewTokenValidator(tokens *TokenManager) *TokenValidator {
	return &TokenValidator{tokens: tokens}
}

// IsValid reports whether the token carries a verifiable signature and an
// expiry strictly in the future. Empty input is simply invalid, not an error.
func (v *TokenValidator) IsValid(tokenStr string) bool {
	if tokenStr == "" {
		return false
	}
	claims, err := v.tokens.Parse(tokenStr)
	if err != nil && !errors.Is(err, ErrTokenExpired) {
		return false
	}
	if claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.After(time.Now())
}
