package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
	"github.com/iho/exemptledger/internal/usecase"
)

// NotificationService defines the behavior needed by NotificationHandler.
type NotificationService interface {
	ListNotifications(ctx context.Context, input usecase.ListNotificationsInput) (*usecase.NotificationList, error)
	MarkRead(ctx context.Context, userID, id string) error
	ClearNotifications(ctx context.Context, userID string) (int64, error)
}

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationUC NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationUC NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

// List lists the caller's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	list, err := h.notificationUC.ListNotifications(r.Context(), usecase.ListNotificationsInput{
		UserID: uid,
		Limit:  parseIntQuery(r, "limit", usecase.DefaultNotificationLimit),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list notifications", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationsFromList(list))
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing notification ID", "")
		return
	}

	if err := h.notificationUC.MarkRead(r.Context(), uid, id); err != nil {
		writeDomainError(w, "failed to mark notification read", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear deletes all of the caller's notifications.
func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	n, err := h.notificationUC.ClearNotifications(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to clear notifications", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClearNotificationsResponse{Deleted: n})
}
