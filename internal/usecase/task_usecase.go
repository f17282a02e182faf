package usecase

import (
	"context"
	"time"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/infrastructure/metrics"
)

// TitleTaskCompleted is the title of the notification sent on completion.
const TitleTaskCompleted = "Görev Tamamlandı!"

// TaskUseCase handles compliance tasks and the tax calendar.
type TaskUseCase struct {
	taskRepo TaskRepository
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewTaskUseCase creates a new TaskUseCase.
func NewTaskUseCase(taskRepo TaskRepository, notifier Notifier, m *metrics.Metrics) *TaskUseCase {
	return &TaskUseCase{
		taskRepo: taskRepo,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

// ListTasks lists the user's tasks.
func (uc *TaskUseCase) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return uc.taskRepo.ListByUser(ctx, userID)
}

// ToggleTask flips a task's completion. Completing a task sends a success
// notification with the task text.
func (uc *TaskUseCase) ToggleTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Toggle(uc.now())

	if err := uc.taskRepo.UpdateCompletion(ctx, task); err != nil {
		return nil, err
	}

	if task.Completed {
		uc.metrics.TaskCompleted()
		uc.notifier.Notify(context.WithoutCancel(ctx), domain.Notification{
			UserID:   userID,
			Title:    TitleTaskCompleted,
			Message:  task.Text,
			Severity: domain.SeveritySuccess,
		})
	}

	return task, nil
}

// Calendar returns the upcoming tax deadlines relative to now.
func (uc *TaskUseCase) Calendar() []domain.TaxDeadline {
	return domain.UpcomingDeadlines(uc.now())
}
