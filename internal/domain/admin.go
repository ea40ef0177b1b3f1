package domain

import "time"

// Admin is a back-office account used for font review. Unlike family members,
// admins authenticate with a local bcrypt-hashed password.
type Admin struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
