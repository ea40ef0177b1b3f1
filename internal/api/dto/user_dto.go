package dto

import (
	"time"

	"github.com/spec-kit/family-photo-service/internal/domain"
)

// UpdateProfileRequest payload.
type UpdateProfileRequest struct {
	Name        string         `json:"name"`
	Birth       *time.Time     `json:"birth"`
	PhoneNumber *string        `json:"phoneNumber"`
	Gender      *domain.Gender `json:"gender" validate:"omitempty,oneof=F M"`
	NewProfile  bool           `json:"newProfile"`
}

// UserResponse is the member profile view.
type UserResponse struct {
	ID          string         `json:"id"`
	FamilyID    *string        `json:"familyId"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Birth       *time.Time     `json:"birth"`
	PhoneNumber *string        `json:"phoneNumber"`
	Gender      *domain.Gender `json:"gender"`
	ProfileURL  string         `json:"profileUrl,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ProfileUpdateResponse couples the updated profile with an upload URL when a
// new profile image was requested.
type ProfileUpdateResponse struct {
	User      UserResponse `json:"user"`
	UploadURL string       `json:"uploadUrl,omitempty"`
}

// UnreadCountResponse reports openable unread letters.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
