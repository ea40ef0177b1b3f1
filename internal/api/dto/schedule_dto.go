package dto

import "time"

// CreateScheduleRequest payload.
type CreateScheduleRequest struct {
	Content   string    `json:"content" validate:"required,max=100"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	IsRepeat  *bool     `json:"isRepeat"`
	AlbumID   *string   `json:"albumId"`
}

// UpdateScheduleRequest payload. Omitted fields keep their stored value.
type UpdateScheduleRequest struct {
	Content   string    `json:"content" validate:"omitempty,max=100"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsRepeat  *bool     `json:"isRepeat"`
}

// LinkAlbumRequest payload. A nil album id detaches the current link.
type LinkAlbumRequest struct {
	AlbumID *string `json:"albumId"`
}

// ScheduleResponse view.
type ScheduleResponse struct {
	ID        string    `json:"id"`
	AlbumID   *string   `json:"albumId,omitempty"`
	Content   string    `json:"content"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsRepeat  bool      `json:"isRepeat"`
	CreatedAt time.Time `json:"createdAt"`
}
