package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// LetterRepository defines persistence access for letters.
type LetterRepository interface {
	Create(ctx context.Context, letter *domain.Letter) error
	GetByID(ctx context.Context, id string) (*domain.Letter, error)
	ListByReceiverID(ctx context.Context, receiverID string) ([]*domain.Letter, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}

type letterRepository struct {
	pool *pgxpool.Pool
}

// NewLetterRepository returns a Postgres-backed implementation.
func NewLetterRepository(pool *pgxpool.Pool) LetterRepository {
	return &letterRepository{pool: pool}
}

const letterColumns = `id, sender_id, receiver_id, type, content, background_color, open_at, is_read, created_at`

func scanLetter(row pgx.Row) (*domain.Letter, error) {
	var letter domain.Letter
	if err := row.Scan(
		&letter.ID,
		&letter.SenderID,
		&letter.ReceiverID,
		&letter.Type,
		&letter.Content,
		&letter.BackgroundColor,
		&letter.OpenAt,
		&letter.IsRead,
		&letter.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &letter, nil
}

func (r *letterRepository) Create(ctx context.Context, letter *domain.Letter) error {
	// open_at falls back to the creation date so a letter without an open
	// date is readable immediately.
	const query = `
        INSERT INTO letters (sender_id, receiver_id, type, content, background_color, open_at, is_read)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()), false)
        RETURNING id, open_at, is_read, created_at`

	var openAt any
	if !letter.OpenAt.IsZero() {
		openAt = letter.OpenAt
	}

	return r.pool.QueryRow(ctx, query,
		letter.SenderID,
		letter.ReceiverID,
		letter.Type,
		letter.Content,
		letter.BackgroundColor,
		openAt,
	).Scan(&letter.ID, &letter.OpenAt, &letter.IsRead, &letter.CreatedAt)
}

func (r *letterRepository) GetByID(ctx context.Context, id string) (*domain.Letter, error) {
	const query = `SELECT ` + letterColumns + ` FROM letters WHERE id=$1`
	return scanLetter(r.pool.QueryRow(ctx, query, id))
}

func (r *letterRepository) ListByReceiverID(ctx context.Context, receiverID string) ([]*domain.Letter, error) {
	const query = `SELECT ` + letterColumns + ` FROM letters WHERE receiver_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var letters []*domain.Letter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		letters = append(letters, letter)
	}
	return letters, rows.Err()
}

func (r *letterRepository) MarkRead(ctx context.Context, id string) error {
	const query = `UPDATE letters SET is_read=true WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *letterRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM letters WHERE receiver_id=$1 AND is_read=false AND open_at <= NOW()`

	var count int64
	if err := r.pool.QueryRow(ctx, query, receiverID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
