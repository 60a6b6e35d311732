package model

import (
	"strings"
	"time"
)

// User represents a registered account. The email doubles as the login key.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail lowercases and trims an email so lookups and the
// uniqueness constraint agree on a single representation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
