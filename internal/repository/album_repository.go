package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// AlbumRepository defines persistence access for albums.
type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) error
	Update(ctx context.Context, album *domain.Album) error
	GetByID(ctx context.Context, id string) (*domain.Album, error)
	ListByFamilyID(ctx context.Context, familyID string) ([]*domain.Album, error)
}

type albumRepository struct {
	pool *pgxpool.Pool
}

// NewAlbumRepository returns a Postgres-backed implementation.
func NewAlbumRepository(pool *pgxpool.Pool) AlbumRepository {
	return &albumRepository{pool: pool}
}

const albumColumns = `id, family_id, name, content, thumbnail_key, background_color, is_default, created_at, updated_at`

func scanAlbum(row pgx.Row) (*domain.Album, error) {
	var album domain.Album
	if err := row.Scan(
		&album.ID,
		&album.FamilyID,
		&album.Name,
		&album.Content,
		&album.ThumbnailKey,
		&album.BackgroundColor,
		&album.IsDefault,
		&album.CreatedAt,
		&album.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) Create(ctx context.Context, album *domain.Album) error {
	const query = `
        INSERT INTO albums (family_id, name, content, thumbnail_key, background_color, is_default)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		album.FamilyID,
		album.Name,
		album.Content,
		album.ThumbnailKey,
		album.BackgroundColor,
		album.IsDefault,
	).Scan(&album.ID, &album.CreatedAt, &album.UpdatedAt)
}

func (r *albumRepository) Update(ctx context.Context, album *domain.Album) error {
	const query = `
        UPDATE albums
        SET name=$1, content=$2, thumbnail_key=$3, background_color=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		album.Name,
		album.Content,
		album.ThumbnailKey,
		album.BackgroundColor,
		album.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *albumRepository) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	const query = `SELECT ` + albumColumns + ` FROM albums WHERE id=$1`
	return scanAlbum(r.pool.QueryRow(ctx, query, id))
}

func (r *albumRepository) ListByFamilyID(ctx context.Context, familyID string) ([]*domain.Album, error) {
	const query = `SELECT ` + albumColumns + ` FROM albums WHERE family_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []*domain.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}
