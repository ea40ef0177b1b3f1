package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// FontRepository defines persistence access for handwriting fonts.
type FontRepository interface {
	Create(ctx context.Context, font *domain.Font) error
	GetByID(ctx context.Context, id string) (*domain.Font, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Font, error)
	ListByStatus(ctx context.Context, status domain.FontStatus) ([]*domain.Font, error)
	UpdateStatus(ctx context.Context, id string, status domain.FontStatus, path *string) error
	Delete(ctx context.Context, id string) error
}

type fontRepository struct {
	pool *pgxpool.Pool
}

// NewFontRepository returns a Postgres-backed implementation.
func NewFontRepository(pool *pgxpool.Pool) FontRepository {
	return &fontRepository{pool: pool}
}

const fontColumns = `id, user_id, name, name_eng, template_key, path, status, created_at, updated_at`

func scanFont(row pgx.Row) (*domain.Font, error) {
	var font domain.Font
	if err := row.Scan(
		&font.ID,
		&font.UserID,
		&font.Name,
		&font.NameEng,
		&font.TemplateKey,
		&font.Path,
		&font.Status,
		&font.CreatedAt,
		&font.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &font, nil
}

func (r *fontRepository) Create(ctx context.Context, font *domain.Font) error {
	const query = `
        INSERT INTO fonts (user_id, name, name_eng, template_key, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		font.UserID,
		font.Name,
		font.NameEng,
		font.TemplateKey,
		font.Status,
	).Scan(&font.ID, &font.CreatedAt, &font.UpdatedAt)
}

func (r *fontRepository) GetByID(ctx context.Context, id string) (*domain.Font, error) {
	const query = `SELECT ` + fontColumns + ` FROM fonts WHERE id=$1`
	return scanFont(r.pool.QueryRow(ctx, query, id))
}

func (r *fontRepository) GetByUserID(ctx context.Context, userID string) (*domain.Font, error) {
	const query = `SELECT ` + fontColumns + ` FROM fonts WHERE user_id=$1`
	return scanFont(r.pool.QueryRow(ctx, query, userID))
}

func (r *fontRepository) ListByStatus(ctx context.Context, status domain.FontStatus) ([]*domain.Font, error) {
	const query = `SELECT ` + fontColumns + ` FROM fonts WHERE status=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fonts []*domain.Font
	for rows.Next() {
		font, err := scanFont(rows)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, font)
	}
	return fonts, rows.Err()
}

func (r *fontRepository) UpdateStatus(ctx context.Context, id string, status domain.FontStatus, path *string) error {
	const query = `UPDATE fonts SET status=$1, path=COALESCE($2, path), updated_at=NOW() WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, path, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fontRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM fonts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
