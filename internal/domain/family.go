package domain

import "time"

// Family groups users who share albums, letters and schedules.
type Family struct {
	ID           string
	Name         string
	ThumbnailKey string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
