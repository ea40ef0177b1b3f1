package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// PhotoRepository defines persistence access for photos and their reviews.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	ListByAlbumID(ctx context.Context, albumID string) ([]*domain.Photo, error)
	MoveToAlbum(ctx context.Context, photoIDs []string, fromAlbumID, toAlbumID string) (int64, error)
	CreateReview(ctx context.Context, review *domain.Review) error
	ListReviews(ctx context.Context, photoID string) ([]*domain.Review, error)
}

type photoRepository struct {
	pool *pgxpool.Pool
}

// NewPhotoRepository returns a Postgres-backed implementation.
func NewPhotoRepository(pool *pgxpool.Pool) PhotoRepository {
	return &photoRepository{pool: pool}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	const query = `
        INSERT INTO photos (album_id, path)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, photo.AlbumID, photo.Path).
		Scan(&photo.ID, &photo.CreatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	const query = `SELECT id, album_id, path, created_at FROM photos WHERE id=$1`

	var photo domain.Photo
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&photo.ID,
		&photo.AlbumID,
		&photo.Path,
		&photo.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListByAlbumID(ctx context.Context, albumID string) ([]*domain.Photo, error) {
	const query = `SELECT id, album_id, path, created_at FROM photos WHERE album_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*domain.Photo
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.ID, &photo.AlbumID, &photo.Path, &photo.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, &photo)
	}
	return photos, rows.Err()
}

// MoveToAlbum reassigns photos that currently belong to fromAlbumID. The
// returned count lets the service detect photos that were not in the source
// album.
func (r *photoRepository) MoveToAlbum(ctx context.Context, photoIDs []string, fromAlbumID, toAlbumID string) (int64, error) {
	const query = `UPDATE photos SET album_id=$1 WHERE id = ANY($2) AND album_id=$3`

	cmd, err := r.pool.Exec(ctx, query, toAlbumID, photoIDs, fromAlbumID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *photoRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (photo_id, writer_id, type, content)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		review.PhotoID,
		review.WriterID,
		review.Type,
		review.Content,
	).Scan(&review.ID, &review.CreatedAt)
}

func (r *photoRepository) ListReviews(ctx context.Context, photoID string) ([]*domain.Review, error) {
	const query = `
        SELECT id, photo_id, writer_id, type, content, created_at
        FROM reviews WHERE photo_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, photoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.PhotoID,
			&review.WriterID,
			&review.Type,
			&review.Content,
			&review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}
