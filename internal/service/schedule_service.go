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

// ScheduleService manages the family calendar.
type ScheduleService struct {
	schedules  repository.ScheduleRepository
	albums     *AlbumService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewScheduleService builds the service.
func NewScheduleService(schedules repository.ScheduleRepository, albums *AlbumService, dispatcher events.Dispatcher, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, albums: albums, dispatcher: dispatcher, logger: logger}
}

// ScheduleInput carries schedule creation and update fields. IsRepeat is a
// pointer so a partial update can leave the stored flag alone.
type ScheduleInput struct {
	Content   string
	StartDate time.Time
	EndDate   time.Time
	IsRepeat  *bool
	AlbumID   *string
}

// CreateSchedule adds a calendar entry and publishes a schedule-created event.
func (s *ScheduleService) CreateSchedule(ctx context.Context, familyID, actorID string, input ScheduleInput) (*domain.Schedule, error) {
	schedule := &domain.Schedule{
		FamilyID:  familyID,
		AlbumID:   input.AlbumID,
		Content:   input.Content,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsRepeat:  input.IsRepeat != nil && *input.IsRepeat,
	}
	if !schedule.ValidRange() {
		return nil, apperrors.NewValidationError("end date precedes start date", nil)
	}
	if input.AlbumID != nil {
		if _, err := s.albums.GetAlbum(ctx, familyID, *input.AlbumID); err != nil {
			return nil, err
		}
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventScheduleCreated,
		FamilyID:  familyID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.ScheduleCreatedPayload{
			ScheduleID: schedule.ID,
			StartDate:  schedule.StartDate,
			Content:    schedule.Content,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("schedule created event not delivered", zap.Error(err))
	}
	return schedule, nil
}

// UpdateSchedule edits an entry after checking family ownership.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, familyID, scheduleID string, input ScheduleInput) (*domain.Schedule, error) {
	schedule, err := s.getInFamily(ctx, familyID, scheduleID)
	if err != nil {
		return nil, err
	}
	if input.Content != "" {
		schedule.Content = input.Content
	}
	if !input.StartDate.IsZero() {
		schedule.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		schedule.EndDate = input.EndDate
	}
	if input.IsRepeat != nil {
		schedule.IsRepeat = *input.IsRepeat
	}
	if !schedule.ValidRange() {
		return nil, apperrors.NewValidationError("end date precedes start date", nil)
	}
	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// DeleteSchedule removes an entry after checking family ownership.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, familyID, scheduleID string) error {
	if _, err := s.getInFamily(ctx, familyID, scheduleID); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, scheduleID)
}

// ListSchedules returns the family's entries overlapping [from, to].
func (s *ScheduleService) ListSchedules(ctx context.Context, familyID string, from, to time.Time) ([]*domain.Schedule, error) {
	if to.Before(from) {
		return nil, apperrors.NewValidationError("range end precedes range start", nil)
	}
	return s.schedules.ListByFamilyID(ctx, familyID, from, to)
}

// LinkAlbum attaches an album to a schedule, or detaches with a nil album id.
func (s *ScheduleService) LinkAlbum(ctx context.Context, familyID, scheduleID string, albumID *string) error {
	if _, err := s.getInFamily(ctx, familyID, scheduleID); err != nil {
		return err
	}
	if albumID != nil {
		if _, err := s.albums.GetAlbum(ctx, familyID, *albumID); err != nil {
			return err
		}
	}
	return s.schedules.LinkAlbum(ctx, scheduleID, albumID)
}

func (s *ScheduleService) getInFamily(ctx context.Context, familyID, scheduleID string) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, scheduleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("schedule", map[string]any{"schedule_id": scheduleID})
	}
	if err != nil {
		return nil, err
	}
	if schedule.FamilyID != familyID {
		return nil, apperrors.NewForbidden("schedule belongs to another family")
	}
	return schedule, nil
}
