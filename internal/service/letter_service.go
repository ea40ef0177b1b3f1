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

// LetterService sends and reads letters between family members.
type LetterService struct {
	letters    repository.LetterRepository
	users      repository.UserRepository
	files      FileService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLetterService builds the service.
func NewLetterService(letters repository.LetterRepository, users repository.UserRepository, files FileService, dispatcher events.Dispatcher, logger *zap.Logger) *LetterService {
	return &LetterService{letters: letters, users: users, files: files, dispatcher: dispatcher, logger: logger}
}

// LetterInput carries letter creation fields. OpenAt in the past or zero means
// the letter opens immediately.
type LetterInput struct {
	ReceiverID      string
	Type            domain.LetterType
	Content         string
	BackgroundColor string
	OpenAt          time.Time
}

// SendLetter creates a letter after checking both parties share a family. For
// audio letters the content is replaced by a fresh storage key and the upload
// URL is returned.
func (s *LetterService) SendLetter(ctx context.Context, senderID string, input LetterInput) (*domain.Letter, string, error) {
	sender, err := s.users.GetByID(ctx, senderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.NewNotFound("user", map[string]any{"user_id": senderID})
	}
	if err != nil {
		return nil, "", err
	}
	receiver, err := s.users.GetByID(ctx, input.ReceiverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", apperrors.NewNotFound("user", map[string]any{"user_id": input.ReceiverID})
	}
	if err != nil {
		return nil, "", err
	}
	if sender.FamilyID == nil || receiver.FamilyID == nil || *sender.FamilyID != *receiver.FamilyID {
		return nil, "", apperrors.NewForbidden("letters can only be sent within a family")
	}

	letter := &domain.Letter{
		SenderID:        senderID,
		ReceiverID:      input.ReceiverID,
		Type:            input.Type,
		Content:         input.Content,
		BackgroundColor: input.BackgroundColor,
		OpenAt:          input.OpenAt,
	}
	uploadURL := ""
	if input.Type == domain.LetterTypeAudio {
		key := s.files.NewKey("letter")
		letter.Content = key
		uploadURL = s.files.UploadURL(key)
	}

	if err := s.letters.Create(ctx, letter); err != nil {
		return nil, "", err
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLetterSent,
		FamilyID:  *sender.FamilyID,
		ActorID:   senderID,
		Timestamp: time.Now(),
		Payload: events.LetterSentPayload{
			LetterID:   letter.ID,
			ReceiverID: letter.ReceiverID,
			LetterType: letter.Type,
			OpenAt:     letter.OpenAt,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("letter sent event not delivered", zap.Error(err))
	}

	return letter, uploadURL, nil
}

// ReadLetter opens a letter for its receiver and marks it read. Time-capsule
// letters whose open date has not passed stay sealed.
func (s *LetterService) ReadLetter(ctx context.Context, readerID, letterID string) (*domain.Letter, error) {
	letter, err := s.letters.GetByID(ctx, letterID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("letter", map[string]any{"letter_id": letterID})
	}
	if err != nil {
		return nil, err
	}
	if letter.ReceiverID != readerID {
		return nil, apperrors.NewForbidden("letter addressed to another member")
	}
	if !letter.Openable(time.Now()) {
		return nil, apperrors.NewForbidden("letter is not open yet")
	}
	if !letter.IsRead {
		if err := s.letters.MarkRead(ctx, letter.ID); err != nil {
			return nil, err
		}
		letter.IsRead = true
	}
	return letter, nil
}

// ListReceived lists letters addressed to the user. Sealed time-capsule
// letters are included so clients can render their open dates.
func (s *LetterService) ListReceived(ctx context.Context, userID string) ([]*domain.Letter, error) {
	return s.letters.ListByReceiverID(ctx, userID)
}

// AudioURL resolves the download URL of an audio letter's recording.
func (s *LetterService) AudioURL(letter *domain.Letter) string {
	if letter.Type != domain.LetterTypeAudio {
		return ""
	}
	return s.files.DownloadURL(letter.Content)
}
