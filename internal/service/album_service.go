package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/repository"
	apperrors "github.com/spec-kit/family-photo-service/pkg/util"
)

// AlbumService manages a family's albums.
type AlbumService struct {
	albums repository.AlbumRepository
	files  FileService
	logger *zap.Logger
}

// NewAlbumService builds the service.
func NewAlbumService(albums repository.AlbumRepository, files FileService, logger *zap.Logger) *AlbumService {
	return &AlbumService{albums: albums, files: files, logger: logger}
}

// AlbumInput carries album creation and update fields.
type AlbumInput struct {
	Name            string
	Content         string
	BackgroundColor string
	NewThumbnail    bool
}

// CreateAlbum adds an album to the family. The returned upload URL is for the
// album thumbnail when one was requested.
func (s *AlbumService) CreateAlbum(ctx context.Context, familyID string, input AlbumInput) (*domain.Album, string, error) {
	album := &domain.Album{
		FamilyID:        familyID,
		Name:            input.Name,
		Content:         input.Content,
		BackgroundColor: input.BackgroundColor,
	}
	uploadURL := ""
	if input.NewThumbnail {
		key := s.files.NewKey("album")
		album.ThumbnailKey = key
		uploadURL = s.files.UploadURL(key)
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, "", err
	}
	s.logger.Info("album created",
		zap.String("album_id", album.ID),
		zap.String("family_id", familyID))
	return album, uploadURL, nil
}

// GetAlbum loads an album, enforcing that it belongs to the caller's family.
func (s *AlbumService) GetAlbum(ctx context.Context, familyID, albumID string) (*domain.Album, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("album", map[string]any{"album_id": albumID})
	}
	if err != nil {
		return nil, err
	}
	if album.FamilyID != familyID {
		return nil, apperrors.NewForbidden("album belongs to another family")
	}
	return album, nil
}

// ListAlbums returns all albums of a family, default album included.
func (s *AlbumService) ListAlbums(ctx context.Context, familyID string) ([]*domain.Album, error) {
	return s.albums.ListByFamilyID(ctx, familyID)
}

// UpdateAlbum edits album metadata. The default album keeps its name.
func (s *AlbumService) UpdateAlbum(ctx context.Context, familyID, albumID string, input AlbumInput) (*domain.Album, string, error) {
	album, err := s.GetAlbum(ctx, familyID, albumID)
	if err != nil {
		return nil, "", err
	}
	if input.Name != "" {
		if album.IsDefault {
			return nil, "", apperrors.NewForbidden("default album cannot be renamed")
		}
		album.Name = input.Name
	}
	if input.Content != "" {
		album.Content = input.Content
	}
	if input.BackgroundColor != "" {
		album.BackgroundColor = input.BackgroundColor
	}
	uploadURL := ""
	if input.NewThumbnail {
		key := s.files.NewKey("album")
		album.ThumbnailKey = key
		uploadURL = s.files.UploadURL(key)
	}
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, "", err
	}
	return album, uploadURL, nil
}

// ThumbnailURL resolves an album thumbnail download URL, if any.
func (s *AlbumService) ThumbnailURL(album *domain.Album) string {
	if album.ThumbnailKey == "" {
		return ""
	}
	return s.files.DownloadURL(album.ThumbnailKey)
}
