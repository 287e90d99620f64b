package entity

import (
	"time"
)

// User is the aggregate root for accounts. Passwords are stored as bcrypt
// hashes in PasswordHash and must never leave the application layer.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Name         string
	Surname      string
	Age          *int
	About        string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
