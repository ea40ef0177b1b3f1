package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/events"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// DefaultAlbumName is the album every new family starts with.
const DefaultAlbumName = "추억 상자"

// FamilyService manages family lifecycle and membership.
type FamilyService struct {
	families   repository.FamilyRepository
	users      repository.UserRepository
	albums     repository.AlbumRepository
	invites    repository.InviteCodeRepository
	files      FileService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewFamilyService builds the service.
func NewFamilyService(
	families repository.FamilyRepository,
	users repository.UserRepository,
	albums repository.AlbumRepository,
	invites repository.InviteCodeRepository,
	files FileService,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *FamilyService {
	return &FamilyService{
		families:   families,
		users:      users,
		albums:     albums,
		invites:    invites,
		files:      files,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateFamily creates a family, its default album, and enrolls the creator.
// The returned upload URL is for the family thumbnail.
func (s *FamilyService) CreateFamily(ctx context.Context, creatorID, name string) (*domain.Family, string, error) {
	creator, err := s.users.GetByID(ctx, creatorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.NewNotFound("user", map[string]any{"user_id": creatorID})
	}
	if err != nil {
		return nil, "", err
	}
	if creator.FamilyID != nil {
		return nil, "", apperrors.NewConflict("user already belongs to a family", map[string]any{"family_id": *creator.FamilyID})
	}

	key := s.files.NewKey("family")
	family := &domain.Family{Name: name, ThumbnailKey: key}
	if err := s.families.Create(ctx, family); err != nil {
		return nil, "", err
	}

	album := &domain.Album{
		FamilyID:        family.ID,
		Name:            DefaultAlbumName,
		BackgroundColor: domain.AlbumBackgroundColors[rand.Intn(len(domain.AlbumBackgroundColors))],
		IsDefault:       true,
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, "", err
	}

	if err := s.users.UpdateFamily(ctx, creatorID, family.ID); err != nil {
		return nil, "", err
	}

	s.logger.Info("family created",
		zap.String("family_id", family.ID),
		zap.String("creator_id", creatorID))
	return family, s.files.UploadURL(key), nil
}

// InviteCode issues (or refreshes) the short-lived invite code for a family.
func (s *FamilyService) InviteCode(ctx context.Context, familyID string) (string, error) {
	if _, err := s.GetFamily(ctx, familyID); err != nil {
		return "", err
	}
	return s.invites.GetOrCreate(ctx, familyID)
}

// JoinFamily enrolls a user into the family an invite code resolves to.
func (s *FamilyService) JoinFamily(ctx context.Context, userID, code string) (*domain.Family, error) {
	familyID, err := s.invites.ResolveFamilyID(ctx, code)
	if errors.Is(err, repository.ErrInviteCodeNotFound) {
		return nil, apperrors.NewNotFound("invite code", map[string]any{"code": code})
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
	}
	if err != nil {
		return nil, err
	}
	if user.FamilyID != nil {
		return nil, apperrors.NewConflict("user already belongs to a family", map[string]any{"family_id": *user.FamilyID})
	}

	if err := s.users.UpdateFamily(ctx, userID, familyID); err != nil {
		return nil, err
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFamilyJoined,
		FamilyID:  familyID,
		ActorID:   userID,
		Timestamp: time.Now(),
		Payload:   events.FamilyJoinedPayload{UserID: userID, UserName: user.Name},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("family joined event not delivered", zap.Error(err))
	}

	return s.GetFamily(ctx, familyID)
}

// GetFamily loads a family or converts the miss into a domain error.
func (s *FamilyService) GetFamily(ctx context.Context, familyID string) (*domain.Family, error) {
	family, err := s.families.GetByID(ctx, familyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("family", map[string]any{"family_id": familyID})
	}
	if err != nil {
		return nil, err
	}
	return family, nil
}

// UpdateFamily renames the family and optionally rotates its thumbnail.
func (s *FamilyService) UpdateFamily(ctx context.Context, familyID, name string, newThumbnail bool) (*domain.Family, string, error) {
	family, err := s.GetFamily(ctx, familyID)
	if err != nil {
		return nil, "", err
	}

	if name != "" {
		family.Name = name
	}
	uploadURL := ""
	if newThumbnail {
		key := s.files.NewKey("family")
		family.ThumbnailKey = key
		uploadURL = s.files.UploadURL(key)
	}

	if err := s.families.Update(ctx, family); err != nil {
		return nil, "", err
	}
	return family, uploadURL, nil
}

// Members lists the users enrolled in a family.
func (s *FamilyService) Members(ctx context.Context, familyID string) ([]*domain.User, error) {
	return s.users.ListByFamilyID(ctx, familyID)
}
