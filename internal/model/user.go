// Package model defines the core domain types shared across the application.
package model

// User represents an authenticated account as reported by the backend.
type User struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	AvatarPath string `json:"avatar_path,omitempty"`
	ID         int64  `json:"id"`
	IsAdmin    bool   `json:"is_admin"`
}

// Session holds the process-wide authenticated identity. A nil User means
// no identity has been established.
type Session struct {
	User *User
}

// Authenticated reports whether a user identity is present.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin
}
