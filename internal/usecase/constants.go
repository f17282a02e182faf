package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPendingMarker is stored under a key while its request is in flight.
	IdempotencyPendingMarker = "processing"

	// DefaultNotificationLimit caps a notification listing when no limit is given.
	DefaultNotificationLimit = 50
)
