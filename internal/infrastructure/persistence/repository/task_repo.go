package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// TaskRepository implements port.TaskRepository. PIC refs are stored as a
// JSON column; the list is small and always read with the task.
type TaskRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB, logger *zap.Logger) port.TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

const taskColumns = `id, activity_id, title, pics, status, priority, start_date, end_date, creator_id, created_at, updated_at`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	pics, err := marshalPics(task.Pics)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = getExecutor(ctx, r.db).ExecContext(ctx, query,
		task.ID,
		task.ActivityID,
		task.Title,
		pics,
		task.Status,
		task.Priority,
		task.StartDate,
		task.EndDate,
		task.CreatorID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create task", zap.String("task_id", task.ID), zap.Error(err))
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID. Returns (nil, nil) when absent.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get task", zap.String("task_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// ListByActivity returns the tasks of an activity, newest first
func (r *TaskRepository) ListByActivity(ctx context.Context, activityID string) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE activity_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, activityID)
}

// ListOverlapping returns tasks whose interval intersects [from, to]
func (r *TaskRepository) ListOverlapping(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE start_date <= ? AND end_date >= ? ORDER BY start_date ASC`
	return r.list(ctx, query, to, from)
}

// Update rewrites the task row
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	pics, err := marshalPics(task.Pics)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = ?, pics = ?, status = ?, priority = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		task.Title,
		pics,
		task.Status,
		task.Priority,
		task.StartDate,
		task.EndDate,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.String("task_id", task.ID), zap.Error(err))
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}

	return nil
}

// Delete removes a task row
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.String("task_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Task, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list tasks", zap.Error(err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var task entity.Task
	var pics string

	err := row.Scan(
		&task.ID,
		&task.ActivityID,
		&task.Title,
		&pics,
		&task.Status,
		&task.Priority,
		&task.StartDate,
		&task.EndDate,
		&task.CreatorID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(pics), &task.Pics); err != nil {
		return nil, fmt.Errorf("failed to decode pics: %w", err)
	}

	return &task, nil
}

func marshalPics(pics []entity.PicRef) (string, error) {
	if pics == nil {
		pics = []entity.PicRef{}
	}
	data, err := json.Marshal(pics)
	if err != nil {
		return "", fmt.Errorf("failed to encode pics: %w", err)
	}
	return string(data), nil
}

// Verify interface compliance
var _ port.TaskRepository = (*TaskRepository)(nil)
