// Package models holds the server-side domain types persisted by the
// repositories. Transport shapes live in the rest package.
package models

import "time"

// User is an account. PasswordHash is a bcrypt digest and never leaves the
// server. UserName is the optional display name ("" when unset).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	UserName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is the public view of a user joined with the avatar path.
type UserProfile struct {
	ID        string
	Email     string
	UserName  string
	AvatarURL *string
}

// Avatar links a user to an uploaded image, one row per user.
type Avatar struct {
	ID        string
	UserID    string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
