package domain

import "time"

// Album holds photos for one family. Every family owns a default album created
// together with the family itself; it cannot be deleted.
type Album struct {
	ID              string
	FamilyID        string
	Name            string
	Content         string
	ThumbnailKey    string
	BackgroundColor string
	IsDefault       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AlbumBackgroundColors are the palette the default album thumbnail is drawn
// from when a family is created.
var AlbumBackgroundColors = []string{
	"#F4E2DC", "#F3D1B2", "#F7F0D5", "#BFDAAB", "#C5DFE6", "#B3C6E3",
}
