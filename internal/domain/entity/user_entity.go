package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in HashedPassword.
type User struct {
	ID                int64
	Email             string
	Username          string
	HashedPassword    string
	FullName          string
	IsActive          bool
	IsAdmin           bool
	EmailVerified     bool
	VerificationToken string // empty once the email has been verified
	CreatedAt         time.Time
}
