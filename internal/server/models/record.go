package models

import "time"

// DateLayout is the wire and storage format of Record.DateLogged.
const DateLayout = "2006-01-02"

// Record is a dated log entry. Invalidated rows are soft-deleted: they stay
// in storage but are never returned by owner-scoped reads.
type Record struct {
	ID          string
	UserID      string
	CategoryID  *string
	Title       string
	Description string
	DateLogged  time.Time
	ImageURL    *string
	Invalidated bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
}

// RecordFilter narrows a record listing.
type RecordFilter struct {
	CategoryID *string
}

// RecordStats are the insight counters for one user.
type RecordStats struct {
	Total         int64
	ThisMonth     int64
	LastSevenDays int64
	Categories    int64
}
