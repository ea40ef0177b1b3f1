package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// ScheduleRepository defines persistence access for family schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	ListByFamilyID(ctx context.Context, familyID string, from, to time.Time) ([]*domain.Schedule, error)
	LinkAlbum(ctx context.Context, scheduleID string, albumID *string) error
}

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns a Postgres-backed implementation.
func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

const scheduleColumns = `id, family_id, album_id, content, start_date, end_date, is_repeat, created_at, updated_at`

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var schedule domain.Schedule
	if err := row.Scan(
		&schedule.ID,
		&schedule.FamilyID,
		&schedule.AlbumID,
		&schedule.Content,
		&schedule.StartDate,
		&schedule.EndDate,
		&schedule.IsRepeat,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        INSERT INTO schedules (family_id, album_id, content, start_date, end_date, is_repeat)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		schedule.FamilyID,
		schedule.AlbumID,
		schedule.Content,
		schedule.StartDate,
		schedule.EndDate,
		schedule.IsRepeat,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        UPDATE schedules
        SET content=$1, start_date=$2, end_date=$3, is_repeat=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		schedule.Content,
		schedule.StartDate,
		schedule.EndDate,
		schedule.IsRepeat,
		schedule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	const query = `SELECT ` + scheduleColumns + ` FROM schedules WHERE id=$1`
	return scanSchedule(r.pool.QueryRow(ctx, query, id))
}

func (r *scheduleRepository) ListByFamilyID(ctx context.Context, familyID string, from, to time.Time) ([]*domain.Schedule, error) {
	const query = `
        SELECT ` + scheduleColumns + `
        FROM schedules
        WHERE family_id=$1 AND start_date < $3 AND end_date >= $2
        ORDER BY start_date`

	rows, err := r.pool.Query(ctx, query, familyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*domain.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepository) LinkAlbum(ctx context.Context, scheduleID string, albumID *string) error {
	const query = `UPDATE schedules SET album_id=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, albumID, scheduleID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
