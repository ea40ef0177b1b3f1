package dto

import "time"

// CreateAlbumRequest payload.
type CreateAlbumRequest struct {
	Name            string `json:"name" validate:"required,max=30"`
	Content         string `json:"content"`
	BackgroundColor string `json:"backgroundColor" validate:"omitempty,hexcolor"`
	NewThumbnail    bool   `json:"newThumbnail"`
}

// UpdateAlbumRequest payload.
type UpdateAlbumRequest struct {
	Name            string `json:"name" validate:"omitempty,max=30"`
	Content         string `json:"content"`
	BackgroundColor string `json:"backgroundColor" validate:"omitempty,hexcolor"`
	NewThumbnail    bool   `json:"newThumbnail"`
}

// AlbumResponse view.
type AlbumResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Content         string    `json:"content,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	IsDefault       bool      `json:"isDefault"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AlbumMutationResponse couples an album view with an upload URL when a new
// thumbnail was requested.
type AlbumMutationResponse struct {
	Album     AlbumResponse `json:"album"`
	UploadURL string        `json:"uploadUrl,omitempty"`
}
