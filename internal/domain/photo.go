package domain

import "time"

// Photo is a stored image belonging to exactly one album. Path is the object
// storage key, not a URL.
type Photo struct {
	ID        string
	AlbumID   string
	Path      string
	CreatedAt time.Time
}

// ReviewType distinguishes text comments from audio reactions on a photo.
type ReviewType string

const (
	ReviewTypeText  ReviewType = "TEXT"
	ReviewTypeAudio ReviewType = "AUDIO"
)

// Review is a family member's comment attached to a photo.
type Review struct {
	ID        string
	PhotoID   string
	WriterID  string
	Type      ReviewType
	Content   string
	CreatedAt time.Time
}
