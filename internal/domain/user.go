package domain

import "time"

// Role drives authorization decisions downstream of the authentication gate.
// It is carried inside the signed token claims and never re-read from storage
// per request.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Gender of a family member, collected when joining a family.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

// User is the domain model for a family member. Subject identity comes from
// the upstream social-login provider; there is no local password.
type User struct {
	ID          string
	FamilyID    *string
	Email       string
	Name        string
	Birth       *time.Time
	ProfileKey  *string
	PhoneNumber *string
	Gender      *Gender
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Joined reports whether the user has completed family enrollment. A user who
// already carries profile details cannot join a second time.
func (u *User) Joined() bool {
	return u.ProfileKey != nil || u.Birth != nil || u.PhoneNumber != nil || u.Gender != nil
}
