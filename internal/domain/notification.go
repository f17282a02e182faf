package domain

import "time"

// Severity of a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Notification is a message queued for a user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Severity  Severity
	Read      bool
	CreatedAt time.Time
}
