package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// ApprovalLogRepository implements port.ApprovalLogRepository. Insert and
// read only; the audit trail has no update or delete path.
type ApprovalLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalLogRepository creates a new approval log repository
func NewApprovalLogRepository(db *sql.DB, logger *zap.Logger) port.ApprovalLogRepository {
	return &ApprovalLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends a review decision
func (r *ApprovalLogRepository) Create(ctx context.Context, entry *entity.ApprovalLogEntry) error {
	query := `
		INSERT INTO approval_logs (id, task_id, reviewer_id, reviewer_name, action, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		entry.ID,
		entry.TaskID,
		entry.ReviewerID,
		entry.ReviewerName,
		entry.Action,
		entry.Feedback,
		entry.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create approval log entry", zap.String("task_id", entry.TaskID), zap.Error(err))
		return fmt.Errorf("failed to create approval log entry: %w", err)
	}

	return nil
}

// GetByTaskID returns a task's review decisions, oldest first
func (r *ApprovalLogRepository) GetByTaskID(ctx context.Context, taskID string) ([]*entity.ApprovalLogEntry, error) {
	query := `
		SELECT id, task_id, reviewer_id, reviewer_name, action, feedback, created_at
		FROM approval_logs
		WHERE task_id = ?
		ORDER BY created_at ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, taskID)
	if err != nil {
		r.logger.Error("Failed to get approval log", zap.String("task_id", taskID), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval log: %w", err)
	}
	defer rows.Close()

	var entries []*entity.ApprovalLogEntry
	for rows.Next() {
		var entry entity.ApprovalLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.ReviewerID,
			&entry.ReviewerName,
			&entry.Action,
			&entry.Feedback,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval log entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Verify interface compliance
var _ port.ApprovalLogRepository = (*ApprovalLogRepository)(nil)
