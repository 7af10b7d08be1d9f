package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// ActivityRepository implements port.ActivityRepository. Membership is a
// JSON column, mirroring how tasks store their PIC refs.
type ActivityRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB, logger *zap.Logger) port.ActivityRepository {
	return &ActivityRepository{
		db:     db,
		logger: logger,
	}
}

const activityColumns = `id, name, activity_pic_id, pic_ids, start_date, end_date, created_at, updated_at`

// Create inserts a new activity
func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	picIDs, err := marshalPicIDs(activity.PicIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = getExecutor(ctx, r.db).ExecContext(ctx, query,
		activity.ID,
		activity.Name,
		activity.ActivityPicID,
		picIDs,
		activity.StartDate,
		activity.EndDate,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create activity", zap.String("activity_id", activity.ID), zap.Error(err))
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// GetByID retrieves an activity by ID. Returns (nil, nil) when absent.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`

	activity, err := scanActivity(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get activity", zap.String("activity_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return activity, nil
}

// List returns all activities, oldest first
func (r *ActivityRepository) List(ctx context.Context) ([]*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY created_at ASC`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list activities", zap.Error(err))
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

// Update rewrites the activity row
func (r *ActivityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	picIDs, err := marshalPicIDs(activity.PicIDs)
	if err != nil {
		return err
	}

	query := `
		UPDATE activities
		SET name = ?, activity_pic_id = ?, pic_ids = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		activity.Name,
		activity.ActivityPicID,
		picIDs,
		activity.StartDate,
		activity.EndDate,
		activity.UpdatedAt,
		activity.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update activity", zap.String("activity_id", activity.ID), zap.Error(err))
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("activity not found: %s", activity.ID)
	}

	return nil
}

func scanActivity(row rowScanner) (*entity.Activity, error) {
	var activity entity.Activity
	var picIDs string

	err := row.Scan(
		&activity.ID,
		&activity.Name,
		&activity.ActivityPicID,
		&picIDs,
		&activity.StartDate,
		&activity.EndDate,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(picIDs), &activity.PicIDs); err != nil {
		return nil, fmt.Errorf("failed to decode pic_ids: %w", err)
	}

	return &activity, nil
}

func marshalPicIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to encode pic_ids: %w", err)
	}
	return string(data), nil
}

// Verify interface compliance
var _ port.ActivityRepository = (*ActivityRepository)(nil)
