package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/observability"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// TokenPair is the credential set handed to a client at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService coordinates session issuance, access-token rotation and
// logout-time revocation across the signer, the session store and the
// blacklist. Store operations are point reads and writes; there is no
// multi-key transaction, so two concurrent reissues for one subject race
// last-writer-wins on the session record (the losing access token is orphaned
// but never accepted after its own expiry).
type TokenService struct {
	tokens    *auth.TokenManager
	sessions  repository.SessionRepository
	blacklist *BlacklistService
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewTokenService builds the coordinator.
func NewTokenService(
	tokens *auth.TokenManager,
	sessions repository.SessionRepository,
	blacklist *BlacklistService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		tokens:    tokens,
		sessions:  sessions,
		blacklist: blacklist,
		metrics:   metrics,
		logger:    logger,
	}
}

// IssueSession mints an access/refresh pair for a verified identity and
// persists it as the subject's single live session, replacing any prior one.
func (s *TokenService) IssueSession(ctx context.Context, identity auth.Identity) (*TokenPair, error) {
	access, _, err := s.tokens.GenerateAccessToken(identity)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.GenerateRefreshToken(identity)
	if err != nil {
		return nil, err
	}

	session := &repository.Session{
		Subject:      identity.Subject,
		AccessToken:  access,
		RefreshToken: refresh,
		CreatedAt:    time.Now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.RecordTokenIssued("access")
	s.metrics.RecordTokenIssued("refresh")
	s.logger.Info("session issued", zap.String("subject", identity.Subject))
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Reissue exchanges a still-valid refresh token for a new access token,
// retiring the previous access token through the blacklist so it cannot be
// replayed after rotation. A missing session record does not block reissue;
// logout guards that path by blacklisting the refresh token itself.
func (s *TokenService) Reissue(ctx context.Context, refreshToken string) (string, error) {
	blacklisted, err := s.blacklist.Contains(ctx, refreshToken)
	if err != nil {
		s.metrics.RecordReissue("fail")
		return "", err
	}
	if blacklisted {
		s.metrics.RecordReissue("invalid")
		return "", apperrors.NewInvalidToken()
	}

	claims, err := s.tokens.Parse(refreshToken)
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		s.metrics.RecordReissue("invalid")
		return "", apperrors.NewTokenExpired()
	case err != nil:
		s.metrics.RecordReissue("invalid")
		s.logger.Warn("reissue rejected", zap.Error(err))
		return "", apperrors.NewInvalidToken()
	}

	session, err := s.sessions.FindBySubject(ctx, claims.Subject)
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		s.metrics.RecordReissue("fail")
		return "", err
	}

	// Retire the previous generation before minting the replacement.
	if session != nil {
		already, err := s.blacklist.Contains(ctx, session.AccessToken)
		if err != nil {
			s.metrics.RecordReissue("fail")
			return "", err
		}
		if !already {
			if err := s.blacklist.Add(ctx, session.AccessToken); err != nil {
				s.metrics.RecordReissue("fail")
				return "", err
			}
			s.metrics.RecordTokenRevoked("rotation")
		}
	}

	newAccess, _, err := s.tokens.GenerateAccessToken(claims.Identity())
	if err != nil {
		s.metrics.RecordReissue("fail")
		return "", err
	}

	if err := s.sessions.Save(ctx, &repository.Session{
		Subject:      claims.Subject,
		AccessToken:  newAccess,
		RefreshToken: refreshToken,
		CreatedAt:    time.Now(),
	}); err != nil {
		s.metrics.RecordReissue("fail")
		return "", err
	}

	s.metrics.RecordTokenIssued("access")
	s.metrics.RecordReissue("ok")
	s.logger.Info("access token rotated", zap.String("subject", claims.Subject))
	return newAccess, nil
}

// Logout revokes both current tokens for the remainder of their lifetimes and
// deletes the session. Logging out without a session is a no-op.
func (s *TokenService) Logout(ctx context.Context, subject string) error {
	session, err := s.sessions.FindBySubject(ctx, subject)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.blacklist.Add(ctx, session.AccessToken); err != nil {
		return err
	}
	s.metrics.RecordTokenRevoked("logout")
	if err := s.blacklist.Add(ctx, session.RefreshToken); err != nil {
		return err
	}
	s.metrics.RecordTokenRevoked("logout")

	if err := s.sessions.DeleteBySubject(ctx, subject); err != nil {
		return err
	}
	s.logger.Info("session closed", zap.String("subject", subject))
	return nil
}
