package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// AssignmentLogRepository implements port.AssignmentLogRepository. Insert
// and read only.
type AssignmentLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAssignmentLogRepository creates a new assignment log repository
func NewAssignmentLogRepository(db *sql.DB, logger *zap.Logger) port.AssignmentLogRepository {
	return &AssignmentLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a membership change
func (r *AssignmentLogRepository) Create(ctx context.Context, entry *entity.AssignmentLogEntry) error {
	query := `
		INSERT INTO assignment_logs (id, task_id, changed_by_id, changed_by_name, action_type, affected_user_id, affected_user_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.ChangedByID,
		entry.ChangedByName,
		entry.ActionType,
		entry.AffectedUserID,
		entry.AffectedUserName,
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create assignment log entry", zap.String("task_id", entry.TaskID), zap.Error(err))
		return fmt.Errorf("failed to create assignment log entry: %w", err)
	}

	return nil
}

// GetByTaskID returns a task's membership changes, oldest first
func (r *AssignmentLogRepository) GetByTaskID(ctx context.Context, taskID string) ([]*entity.AssignmentLogEntry, error) {
	query := `
		SELECT id, task_id, changed_by_id, changed_by_name, action_type, affected_user_id, affected_user_name, created_at
		FROM assignment_logs
		WHERE task_id = ?
		ORDER BY created_at ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, taskID)
	if err != nil {
		r.logger.Error("Failed to get assignment log", zap.String("task_id", taskID), zap.Error(err))
		return nil, fmt.Errorf("failed to get assignment log: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AssignmentLogEntry
	for rows.Next() {
		var entry entity.AssignmentLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.ChangedByID,
			&entry.ChangedByName,
			&entry.ActionType,
			&entry.AffectedUserID,
			&entry.AffectedUserName,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment log entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Verify interface compliance
var _ port.AssignmentLogRepository = (*AssignmentLogRepository)(nil)
