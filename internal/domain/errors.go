package domain

import "errors"

var (
	// Income errors
	ErrInvalidEntry = errors.New("invalid income entry")
	// ErrCorruptEntry marks a stored entry that fails validation on load.
	ErrCorruptEntry = errors.New("corrupt stored income entry")

	// Profile errors
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")

	// Task errors
	ErrTaskNotFound = errors.New("task not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Rate errors
	ErrRateNotFound    = errors.New("exchange rate not found")
	ErrRateUnavailable = errors.New("exchange rates unavailable")

	// Export errors
	ErrUnsupportedExportKind = errors.New("unsupported export kind")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
