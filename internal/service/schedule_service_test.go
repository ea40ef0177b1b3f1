package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/domain"
	"github.com/spec-kit/family-photo-service/internal/events"
)

type memScheduleRepo struct {
	schedules map[string]*domain.Schedule
	nextID    int
}

func newMemScheduleRepo() *memScheduleRepo {
	return &memScheduleRepo{schedules: make(map[string]*domain.Schedule)}
}

func (m *memScheduleRepo) Create(_ context.Context, schedule *domain.Schedule) error {
	m.nextID++
	schedule.ID = fmt.Sprintf("schedule-%d", m.nextID)
	stored := *schedule
	m.schedules[schedule.ID] = &stored
	return nil
}

func (m *memScheduleRepo) Update(_ context.Context, schedule *domain.Schedule) error {
	if _, ok := m.schedules[schedule.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *schedule
	m.schedules[schedule.ID] = &stored
	return nil
}

func (m *memScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.schedules[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.schedules, id)
	return nil
}

func (m *memScheduleRepo) GetByID(_ context.Context, id string) (*domain.Schedule, error) {
	schedule, ok := m.schedules[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *schedule
	return &copied, nil
}

func (m *memScheduleRepo) ListByFamilyID(_ context.Context, familyID string, from, to time.Time) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, schedule := range m.schedules {
		if schedule.FamilyID != familyID {
			continue
		}
		if schedule.EndDate.Before(from) || schedule.StartDate.After(to) {
			continue
		}
		copied := *schedule
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memScheduleRepo) LinkAlbum(_ context.Context, scheduleID string, albumID *string) error {
	schedule, ok := m.schedules[scheduleID]
	if !ok {
		return pgx.ErrNoRows
	}
	schedule.AlbumID = albumID
	return nil
}

func newScheduleServiceFixture(t *testing.T) (*ScheduleService, *memScheduleRepo) {
	t.Helper()
	schedules := newMemScheduleRepo()
	svc := NewScheduleService(schedules, nil, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, schedules
}

func boolPtr(v bool) *bool { return &v }

func TestCreateScheduleValidatesRange(t *testing.T) {
	svc, _ := newScheduleServiceFixture(t)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateSchedule(context.Background(), "family-1", "user-1", ScheduleInput{
		Content:   "제주도 여행",
		StartDate: start,
		EndDate:   start.Add(-24 * time.Hour),
	})
	require.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestUpdateScheduleKeepsRepeatFlagWhenOmitted(t *testing.T) {
	svc, _ := newScheduleServiceFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := svc.CreateSchedule(ctx, "family-1", "user-1", ScheduleInput{
		Content:   "생일",
		StartDate: start,
		EndDate:   start,
		IsRepeat:  boolPtr(true),
	})
	require.NoError(t, err)
	require.True(t, schedule.IsRepeat)

	// A partial update without the flag must not reset a repeating entry.
	updated, err := svc.UpdateSchedule(ctx, "family-1", schedule.ID, ScheduleInput{
		Content: "아빠 생일",
	})
	require.NoError(t, err)
	require.Equal(t, "아빠 생일", updated.Content)
	require.True(t, updated.IsRepeat)

	updated, err = svc.UpdateSchedule(ctx, "family-1", schedule.ID, ScheduleInput{
		IsRepeat: boolPtr(false),
	})
	require.NoError(t, err)
	require.False(t, updated.IsRepeat)
}

func TestUpdateScheduleEnforcesFamilyOwnership(t *testing.T) {
	svc, _ := newScheduleServiceFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	schedule, err := svc.CreateSchedule(ctx, "family-1", "user-1", ScheduleInput{
		Content:   "저녁 약속",
		StartDate: start,
		EndDate:   start,
	})
	require.NoError(t, err)

	_, err = svc.UpdateSchedule(ctx, "family-2", schedule.ID, ScheduleInput{Content: "바꾸기"})
	require.Equal(t, "FORBIDDEN", domainCode(t, err))
}
