package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/events"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// PhotoService manages photos and their reviews inside albums.
type PhotoService struct {
	photos     repository.PhotoRepository
	albums     *AlbumService
	files      FileService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPhotoService builds the service.
func NewPhotoService(photos repository.PhotoRepository, albums *AlbumService, files FileService, dispatcher events.Dispatcher, logger *zap.Logger) *PhotoService {
	return &PhotoService{photos: photos, albums: albums, files: files, dispatcher: dispatcher, logger: logger}
}

// UploadTicket pairs a fresh object key with its presigned-style upload URL.
type UploadTicket struct {
	Key       string
	UploadURL string
}

// PrepareUpload issues count storage keys for photos headed to an album.
func (s *PhotoService) PrepareUpload(ctx context.Context, familyID, albumID string, count int) ([]UploadTicket, error) {
	if count <= 0 {
		return nil, apperrors.NewValidationError("count must be positive", nil)
	}
	if _, err := s.albums.GetAlbum(ctx, familyID, albumID); err != nil {
		return nil, err
	}
	tickets := make([]UploadTicket, 0, count)
	for i := 0; i < count; i++ {
		key := s.files.NewKey("photo")
		tickets = append(tickets, UploadTicket{Key: key, UploadURL: s.files.UploadURL(key)})
	}
	return tickets, nil
}

// RegisterPhotos records uploaded objects as album photos and publishes one
// photo-added event for the batch.
func (s *PhotoService) RegisterPhotos(ctx context.Context, familyID, albumID, actorID string, keys []string) ([]*domain.Photo, error) {
	if len(keys) == 0 {
		return nil, apperrors.NewValidationError("at least one photo key is required", nil)
	}
	if _, err := s.albums.GetAlbum(ctx, familyID, albumID); err != nil {
		return nil, err
	}

	photos := make([]*domain.Photo, 0, len(keys))
	for _, key := range keys {
		photo := &domain.Photo{AlbumID: albumID, Path: key}
		if err := s.photos.Create(ctx, photo); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPhotoAdded,
		FamilyID:  familyID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   events.PhotoAddedPayload{AlbumID: albumID, Count: len(photos)},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("photo added event not delivered", zap.Error(err))
	}

	return photos, nil
}

// ListPhotos returns an album's photos after checking family ownership.
func (s *PhotoService) ListPhotos(ctx context.Context, familyID, albumID string) ([]*domain.Photo, error) {
	if _, err := s.albums.GetAlbum(ctx, familyID, albumID); err != nil {
		return nil, err
	}
	return s.photos.ListByAlbumID(ctx, albumID)
}

// MovePhotos relocates photos between two albums of the same family. Photos
// that do not live in the source album are silently skipped; the moved count
// is returned.
func (s *PhotoService) MovePhotos(ctx context.Context, familyID string, photoIDs []string, fromAlbumID, toAlbumID string) (int64, error) {
	if len(photoIDs) == 0 {
		return 0, apperrors.NewValidationError("at least one photo id is required", nil)
	}
	if _, err := s.albums.GetAlbum(ctx, familyID, fromAlbumID); err != nil {
		return 0, err
	}
	if _, err := s.albums.GetAlbum(ctx, familyID, toAlbumID); err != nil {
		return 0, err
	}
	return s.photos.MoveToAlbum(ctx, photoIDs, fromAlbumID, toAlbumID)
}

// AddReview attaches a text or audio review to a photo.
func (s *PhotoService) AddReview(ctx context.Context, familyID, photoID, writerID string, reviewType domain.ReviewType, content string) (*domain.Review, error) {
	if _, err := s.getPhotoInFamily(ctx, familyID, photoID); err != nil {
		return nil, err
	}
	review := &domain.Review{
		PhotoID:  photoID,
		WriterID: writerID,
		Type:     reviewType,
		Content:  content,
	}
	if err := s.photos.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns a photo's reviews after checking family ownership.
func (s *PhotoService) ListReviews(ctx context.Context, familyID, photoID string) ([]*domain.Review, error) {
	if _, err := s.getPhotoInFamily(ctx, familyID, photoID); err != nil {
		return nil, err
	}
	return s.photos.ListReviews(ctx, photoID)
}

// PhotoURL resolves a photo's download URL.
func (s *PhotoService) PhotoURL(photo *domain.Photo) string {
	return s.files.DownloadURL(photo.Path)
}

func (s *PhotoService) getPhotoInFamily(ctx context.Context, familyID, photoID string) (*domain.Photo, error) {
	photo, err := s.photos.GetByID(ctx, photoID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("photo", map[string]any{"photo_id": photoID})
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.albums.GetAlbum(ctx, familyID, photo.AlbumID); err != nil {
		return nil, err
	}
	return photo, nil
}
