package domain

import "time"

// Event types emitted by the console session layer.
const (
	EventLoginSuccess   = "login_success"
	EventLoginFailure   = "login_failure"
	EventLogout         = "logout"
	EventSessionExpired = "session_expired"
	EventUnauthorized   = "unauthorized"
)

// ConsoleEvent is a single session-lifecycle event emitted by the console
// (login, logout, forced expiry). UserID is 0 when no subject is known, e.g.
// a failed login.
type ConsoleEvent struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
