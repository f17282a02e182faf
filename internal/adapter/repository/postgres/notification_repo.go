package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/exemptledger/internal/domain"
)

// NotificationRepository implements usecase.NotificationRepository.
type NotificationRepository struct {
	db querier
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return newNotificationRepository(pool)
}

func newNotificationRepository(db querier) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create stores a notification.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, severity, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Message,
		string(n.Severity),
		n.Read,
		n.CreatedAt,
	)

	return err
}

// ListByUser returns a page of the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, title, message, severity, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0, limit)
	for rows.Next() {
		var (
			n        domain.Notification
			severity string
		)
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&severity,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.Severity = domain.Severity(severity)
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// CountUnread counts the user's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// MarkRead marks one of the user's notifications as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

// DeleteByUser removes all of the user's notifications.
func (r *NotificationRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
