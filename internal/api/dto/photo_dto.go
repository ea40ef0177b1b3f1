package dto

import (
	"time"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// PrepareUploadRequest payload.
type PrepareUploadRequest struct {
	Count int `json:"count" validate:"required,min=1,max=30"`
}

// UploadTicketResponse pairs a storage key with its upload URL.
type UploadTicketResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// RegisterPhotosRequest payload.
type RegisterPhotosRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
}

// MovePhotosRequest payload.
type MovePhotosRequest struct {
	PhotoIDs    []string `json:"photoIds" validate:"required,min=1,dive,required"`
	FromAlbumID string   `json:"fromAlbumId" validate:"required"`
	ToAlbumID   string   `json:"toAlbumId" validate:"required"`
}

// MovePhotosResponse reports how many photos were relocated.
type MovePhotosResponse struct {
	Moved int64 `json:"moved"`
}

// PhotoResponse view.
type PhotoResponse struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"albumId"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReviewRequest payload.
type CreateReviewRequest struct {
	Type    domain.ReviewType `json:"type" validate:"required,oneof=TEXT AUDIO"`
	Content string            `json:"content" validate:"required"`
}

// ReviewResponse view.
type ReviewResponse struct {
	ID        string            `json:"id"`
	PhotoID   string            `json:"photoId"`
	WriterID  string            `json:"writerId"`
	Type      domain.ReviewType `json:"type"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
}
