package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// AuthService turns verified external identities into sessions. Member logins
// come from the social-login provider; admin logins check a local bcrypt hash.
type AuthService struct {
	users    repository.UserRepository
	admins   repository.AdminRepository
	provider ProviderClient
	sessions *TokenService
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(
	users repository.UserRepository,
	admins repository.AdminRepository,
	provider ProviderClient,
	sessions *TokenService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		admins:   admins,
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginWithProvider exchanges an authorization code, upserts the member row
// and issues a session with the USER role.
func (s *AuthService) LoginWithProvider(ctx context.Context, code string) (*TokenPair, *domain.User, error) {
	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("provider exchange failed", zap.Error(err))
		return nil, nil, apperrors.NewUnauthorized("social login failed")
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		user = &domain.User{Email: profile.Email, Name: profile.Name, Active: true}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, nil, err
		}
		s.logger.Info("user registered", zap.String("user_id", user.ID))
	} else if err != nil {
		return nil, nil, err
	}

	pair, err := s.sessions.IssueSession(ctx, auth.Identity{
		Subject:            user.ID,
		Role:               domain.RoleUser,
		ProviderAttributes: profile.Attributes,
	})
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// LoginAdmin authenticates a back-office account and issues an ADMIN session.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*TokenPair, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	return s.sessions.IssueSession(ctx, auth.Identity{
		Subject: admin.ID,
		Role:    domain.RoleAdmin,
	})
}

// ProvisionAdmin creates a back-office account with a bcrypt-hashed password.
// Called from the adminctl command, never from a member-facing endpoint.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, name, password string, bcryptCost int) (*domain.Admin, error) {
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("admin already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return nil, err
	}
	admin := &domain.Admin{Email: email, Name: name, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	s.logger.Info("admin provisioned", zap.String("admin_id", admin.ID))
	return admin, nil
}
