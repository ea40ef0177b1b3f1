package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// FamilyRepository defines persistence access for families.
type FamilyRepository interface {
	Create(ctx context.Context, family *domain.Family) error
	Update(ctx context.Context, family *domain.Family) error
	GetByID(ctx context.Context, id string) (*domain.Family, error)
}

type familyRepository struct {
	pool *pgxpool.Pool
}

// NewFamilyRepository returns a Postgres-backed implementation.
func NewFamilyRepository(pool *pgxpool.Pool) FamilyRepository {
	return &familyRepository{pool: pool}
}

func (r *familyRepository) Create(ctx context.Context, family *domain.Family) error {
	const query = `
        INSERT INTO families (name, thumbnail_key)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		family.Name,
		family.ThumbnailKey,
	).Scan(&family.ID, &family.CreatedAt, &family.UpdatedAt)
}

func (r *familyRepository) Update(ctx context.Context, family *domain.Family) error {
	const query = `
        UPDATE families SET name=$1, thumbnail_key=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, family.Name, family.ThumbnailKey, family.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *familyRepository) GetByID(ctx context.Context, id string) (*domain.Family, error) {
	const query = `
        SELECT id, name, thumbnail_key, created_at, updated_at
        FROM families WHERE id=$1`

	var family domain.Family
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&family.ID,
		&family.Name,
		&family.ThumbnailKey,
		&family.CreatedAt,
		&family.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &family, nil
}
