package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
)

// NotificationUseCase stores and serves user notifications. It is the
// Notifier the other use cases deliver through.
type NotificationUseCase struct {
	repo    NotificationRepository
	idGen   IDGenerator
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewNotificationUseCase creates a new NotificationUseCase.
func NewNotificationUseCase(repo NotificationRepository, idGen IDGenerator, m *metrics.Metrics, logger zerolog.Logger) *NotificationUseCase {
	return &NotificationUseCase{
		repo:    repo,
		idGen:   idGen,
		metrics: m,
		logger:  logger,
	}
}

// Notify stores n. Failures are logged and counted, never returned.
func (uc *NotificationUseCase) Notify(ctx context.Context, n domain.Notification) {
	n.ID = uc.idGen.Generate()
	n.Read = false
	n.CreatedAt = time.Now().UTC()

	if err := uc.repo.Create(ctx, &n); err != nil {
		uc.metrics.NotificationFailed()
		uc.logger.Error().
			Err(err).
			Str("user_id", n.UserID).
			Str("title", n.Title).
			Str("severity", string(n.Severity)).
			Msg("failed to store notification")
		return
	}

	uc.metrics.NotificationDelivered(n.Severity)
	uc.logger.Debug().
		Str("user_id", n.UserID).
		Str("notification_id", n.ID).
		Str("severity", string(n.Severity)).
		Msg("notification stored")
}

// ListNotificationsInput represents input for listing notifications.
type ListNotificationsInput struct {
	UserID string
	Limit  int
	Offset int
}

// NotificationList is a page of notifications plus the unread count.
type NotificationList struct {
	Notifications []*domain.Notification
	Unread        int
}

// ListNotifications lists the user's notifications, newest first.
func (uc *NotificationUseCase) ListNotifications(ctx context.Context, input ListNotificationsInput) (*NotificationList, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultNotificationLimit
	}
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	items, err := uc.repo.ListByUser(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, err
	}

	unread, err := uc.repo.CountUnread(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &NotificationList{Notifications: items, Unread: unread}, nil
}

// MarkRead marks one notification as read.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.repo.MarkRead(ctx, userID, id)
}

// ClearNotifications deletes all of the user's notifications.
func (uc *NotificationUseCase) ClearNotifications(ctx context.Context, userID string) (int64, error) {
	return uc.repo.DeleteByUser(ctx, userID)
}
