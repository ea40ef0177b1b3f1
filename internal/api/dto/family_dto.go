package dto

import "time"

// CreateFamilyRequest payload.
type CreateFamilyRequest struct {
	Name string `json:"name" validate:"required,max=20"`
}

// UpdateFamilyRequest payload.
type UpdateFamilyRequest struct {
	Name         string `json:"name" validate:"omitempty,max=20"`
	NewThumbnail bool   `json:"newThumbnail"`
}

// JoinFamilyRequest payload.
type JoinFamilyRequest struct {
	Code string `json:"code" validate:"required,len=8,numeric"`
}

// FamilyResponse view.
type FamilyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FamilyMutationResponse couples a family view with an upload URL when a new
// thumbnail was requested.
type FamilyMutationResponse struct {
	Family    FamilyResponse `json:"family"`
	UploadURL string         `json:"uploadUrl,omitempty"`
}

// InviteCodeResponse view.
type InviteCodeResponse struct {
	Code string `json:"code"`
}
