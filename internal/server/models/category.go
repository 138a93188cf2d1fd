package models

import "time"

// Category groups records. Owned by exactly one user.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Icon      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
