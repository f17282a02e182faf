package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/usecase"
)

// TaskRepository implements usecase.TaskRepository.
type TaskRepository struct {
	db querier
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return newTaskRepository(pool)
}

func newTaskRepository(db querier) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, text, details, completed, completed_date, created_at`

// CreateBatchTx inserts tasks inside tx.
func (r *TaskRepository) CreateBatchTx(ctx context.Context, tx usecase.Transaction, tasks []*domain.Task) error {
	q := txQuerier(tx)
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, t := range tasks {
		if _, err := q.Exec(ctx, query,
			t.ID,
			t.UserID,
			t.Text,
			t.Details,
			t.Completed,
			t.CompletedDate,
			t.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	return nil
}

// ListByUser returns the user's tasks in creation order.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// GetByID retrieves one of the user's tasks.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND id = $2`

	t, err := scanTask(r.db.QueryRow(ctx, query, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}

	return t, err
}

// UpdateCompletion persists the task's completion flag and date.
func (r *TaskRepository) UpdateCompletion(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET completed = $3, completed_date = $4 WHERE user_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, t.UserID, t.ID, t.Completed, t.CompletedDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t             domain.Task
		completedDate *time.Time
	)
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Text,
		&t.Details,
		&t.Completed,
		&completedDate,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	if completedDate != nil {
		d := domain.TruncateDate(*completedDate)
		t.CompletedDate = &d
	}

	return &t, nil
}
