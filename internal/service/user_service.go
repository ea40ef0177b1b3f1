package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// UserService exposes member profile operations.
type UserService struct {
	users   repository.UserRepository
	letters repository.LetterRepository
	files   FileService
	logger  *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, letters repository.LetterRepository, files FileService, logger *zap.Logger) *UserService {
	return &UserService{users: users, letters: letters, files: files, logger: logger}
}

// GetUser loads a user or converts the miss into a domain error.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Name        string
	Birth       *time.Time
	PhoneNumber *string
	Gender      *domain.Gender
	NewProfile  bool
}

// UpdateProfile updates the caller's own profile. When a new profile image is
// requested, a fresh storage key is issued and its upload URL returned.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Birth != nil {
		user.Birth = update.Birth
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Gender != nil {
		user.Gender = update.Gender
	}

	uploadURL := ""
	if update.NewProfile {
		key := s.files.NewKey("user")
		user.ProfileKey = &key
		uploadURL = s.files.UploadURL(key)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", err
	}
	s.logger.Info("profile updated", zap.String("user_id", userID))
	return user, uploadURL, nil
}

// ProfileURL resolves the user's profile image download URL, if any.
func (s *UserService) ProfileURL(user *domain.User) string {
	if user.ProfileKey == nil {
		return ""
	}
	return s.files.DownloadURL(*user.ProfileKey)
}

// UnreadLetterCount returns the number of openable unread letters.
func (s *UserService) UnreadLetterCount(ctx context.Context, userID string) (int64, error) {
	return s.letters.CountUnread(ctx, userID)
}
