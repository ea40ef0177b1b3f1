package domain

import "time"

// FontStatus is the review lifecycle of a user-submitted handwriting font.
type FontStatus string

const (
	FontStatusPending  FontStatus = "PENDING"
	FontStatusApproved FontStatus = "APPROVED"
	FontStatusRejected FontStatus = "REJECTED"
)

// Font is a handwriting font requested by a user. Each user may own at most
// one font. TemplateKey is the storage key of the uploaded handwriting sample
// that admins review; Path is set by an admin when the generated font file is
// approved.
type Font struct {
	ID          string
	UserID      string
	Name        string
	NameEng     string
	TemplateKey string
	Path        *string
	Status      FontStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
