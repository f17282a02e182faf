package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
	"github.com/iho/exemptledger/internal/domain"
)

// TaskService defines the behavior needed by TaskHandler.
type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	ToggleTask(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Calendar() []domain.TaxDeadline
}

// TaskHandler handles compliance tasks and the tax calendar.
type TaskHandler struct {
	taskUC TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskUC TaskService) *TaskHandler {
	return &TaskHandler{taskUC: taskUC}
}

// List lists the caller's tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskUC.ListTasks(r.Context(), uid)
	if err != nil {
		writeDomainError(w, "failed to list tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tasks": dto.TasksFromDomain(tasks)})
}

// Toggle flips a task's completion.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing task ID", "")
		return
	}

	task, err := h.taskUC.ToggleTask(r.Context(), uid, id)
	if err != nil {
		writeDomainError(w, "failed to toggle task", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TaskFromDomain(task))
}

// Calendar returns the tax calendar, soonest first.
func (h *TaskHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"deadlines": dto.DeadlinesFromDomain(h.taskUC.Calendar())})
}
