package domain

import "time"

// Schedule is a family calendar entry, optionally linked to an album.
type Schedule struct {
	ID        string
	FamilyID  string
	AlbumID   *string
	Content   string
	StartDate time.Time
	EndDate   time.Time
	IsRepeat  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRange reports whether the schedule dates are ordered.
func (s *Schedule) ValidRange() bool {
	return !s.EndDate.Before(s.StartDate)
}
