package model

import "time"

// Group represents a shared-expense group record.
type Group struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	ID        int64     `json:"id"`
}

// Participant is a member of a group. IDs are unique within a group; the
// participant set is replaced wholesale on every workspace load, never
// patched incrementally.
type Participant struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// AdminUser is a row in the administrator user listing.
type AdminUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	ID      int64  `json:"id"`
	IsAdmin bool   `json:"is_admin"`
}

// AdminGroup is a row in the administrator group listing.
type AdminGroup struct {
	CreatedAt        time.Time `json:"created_at"`
	Name             string    `json:"name"`
	CreatedByName    string    `json:"created_by_name"`
	ID               int64     `json:"id"`
	ParticipantCount int       `json:"participant_count"`
}
