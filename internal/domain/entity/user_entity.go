package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds the bcrypt output; plaintext never leaves the
// registration and login paths.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  *int64
	Age          *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
