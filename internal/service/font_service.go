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

// FontService handles handwriting font requests and their admin review.
type FontService struct {
	fonts  repository.FontRepository
	files  FileService
	logger *zap.Logger
}

// NewFontService builds the service.
func NewFontService(fonts repository.FontRepository, files FileService, logger *zap.Logger) *FontService {
	return &FontService{fonts: fonts, files: files, logger: logger}
}

// RequestFont submits a handwriting sample for font generation. Each user may
// hold a single request at a time. The returned upload URL receives the
// handwriting template image.
func (s *FontService) RequestFont(ctx context.Context, userID, name, nameEng string) (*domain.Font, string, error) {
	existing, err := s.fonts.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperrors.NewConflict("font request already exists", map[string]any{"font_id": existing.ID, "status": existing.Status})
	}

	font := &domain.Font{
		UserID:      userID,
		Name:        name,
		NameEng:     nameEng,
		TemplateKey: s.files.NewKey("font-template"),
		Status:      domain.FontStatusPending,
	}
	if err := s.fonts.Create(ctx, font); err != nil {
		return nil, "", err
	}

	s.logger.Info("font requested",
		zap.String("font_id", font.ID),
		zap.String("user_id", userID))
	return font, s.files.UploadURL(font.TemplateKey), nil
}

// TemplateURL resolves the download URL of the uploaded handwriting sample.
// Admins fetch it while reviewing a pending request.
func (s *FontService) TemplateURL(font *domain.Font) string {
	if font.TemplateKey == "" {
		return ""
	}
	return s.files.DownloadURL(font.TemplateKey)
}

// MyFont returns the caller's font, whatever its review status.
func (s *FontService) MyFont(ctx context.Context, userID string) (*domain.Font, error) {
	font, err := s.fonts.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("font", map[string]any{"user_id": userID})
	}
	if err != nil {
		return nil, err
	}
	return font, nil
}

// DeleteFont removes the caller's font request.
func (s *FontService) DeleteFont(ctx context.Context, userID string) error {
	font, err := s.MyFont(ctx, userID)
	if err != nil {
		return err
	}
	return s.fonts.Delete(ctx, font.ID)
}

// ListPending returns font requests awaiting admin review.
func (s *FontService) ListPending(ctx context.Context) ([]*domain.Font, error) {
	return s.fonts.ListByStatus(ctx, domain.FontStatusPending)
}

// Approve marks a pending font approved and records the generated font file
// path. Only pending fonts may be reviewed.
func (s *FontService) Approve(ctx context.Context, fontID, path string) error {
	return s.review(ctx, fontID, domain.FontStatusApproved, &path)
}

// Reject marks a pending font rejected.
func (s *FontService) Reject(ctx context.Context, fontID string) error {
	return s.review(ctx, fontID, domain.FontStatusRejected, nil)
}

func (s *FontService) review(ctx context.Context, fontID string, status domain.FontStatus, path *string) error {
	font, err := s.fonts.GetByID(ctx, fontID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("font", map[string]any{"font_id": fontID})
	}
	if err != nil {
		return err
	}
	if font.Status != domain.FontStatusPending {
		return apperrors.NewConflict("font already reviewed", map[string]any{"status": font.Status})
	}
	if err := s.fonts.UpdateStatus(ctx, fontID, status, path); err != nil {
		return err
	}
	s.logger.Info("font reviewed",
		zap.String("font_id", fontID),
		zap.String("status", string(status)))
	return nil
}

// FontFileURL resolves the generated font file download URL, if approved.
func (s *FontService) FontFileURL(font *domain.Font) string {
	if font.Status != domain.FontStatusApproved || font.Path == nil {
		return ""
	}
	return s.files.DownloadURL(*font.Path)
}
