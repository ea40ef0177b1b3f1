package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/repository"
)

// BlacklistService revokes tokens for the remainder of their own lifetime.
// The entry TTL is computed from the token's exp claim, so revocation never
// outlives the token's natural life and the store needs no eviction logic.
type BlacklistService struct {
	tokens *auth.TokenManager
	store  repository.BlacklistRepository
	logger *zap.Logger
}

// NewBlacklistService builds the service.
func NewBlacklistService(tokens *auth.TokenManager, store repository.BlacklistRepository, logger *zap.Logger) *BlacklistService {
	return &BlacklistService{tokens: tokens, store: store, logger: logger}
}

// Add records the token as revoked until its own expiry. Adding an already
// expired token is a no-op; a token whose claims cannot be decoded is an error.
func (s *BlacklistService) Add(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil && !errors.Is(err, auth.ErrTokenExpired) {
		return err
	}
	if claims == nil || claims.ExpiresAt == nil {
		return auth.ErrMalformedToken
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	s.logger.Debug("blacklisting token",
		zap.String("subject", claims.Subject),
		zap.Duration("remaining", remaining))
	return s.store.Add(ctx, token, remaining)
}

// Contains is a pure predicate; deciding that "blacklisted" means "reject the
// request" belongs to the caller.
func (s *BlacklistService) Contains(ctx context.Context, token string) (bool, error) {
	return s.store.Contains(ctx, token)
}
