package usecase

import (
	"context"
	"time"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/ledger"
)

// ProfileRepository defines data access for user profiles.
type ProfileRepository interface {
	CreateTx(ctx context.Context, tx Transaction, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// IncomeRepository defines data access for income entries.
type IncomeRepository interface {
	Create(ctx context.Context, userID string, entry *domain.IncomeEntry) error
	// ListByUser returns the user's entries oldest first by insertion.
	ListByUser(ctx context.Context, userID string) ([]*domain.IncomeEntry, error)
}

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// TaskRepository defines data access for compliance tasks.
type TaskRepository interface {
	CreateBatchTx(ctx context.Context, tx Transaction, tasks []*domain.Task) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	UpdateCompletion(ctx context.Context, task *domain.Task) error
}

// LedgerLoader rebuilds a user's ledger from storage.
type LedgerLoader interface {
	Ledger(ctx context.Context, userID string) (*ledger.Ledger, error)
}

// RateSource supplies the current exchange rate table.
type RateSource interface {
	FetchRates(ctx context.Context) (*domain.RateTable, error)
}

// Notifier delivers user notifications.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}
