package port

import (
	"context"
	"time"

	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// TaskRepository defines persistence operations for Task
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ListByActivity(ctx context.Context, activityID string) ([]*entity.Task, error)

	// ListOverlapping returns tasks whose [StartDate, EndDate] interval
	// intersects the given range, PIC refs included.
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*entity.Task, error)

	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository defines persistence operations for Activity
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	List(ctx context.Context) ([]*entity.Activity, error)
	Update(ctx context.Context, activity *entity.Activity) error
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

// ApprovalLogRepository persists review decisions. Append-only: there are no
// update or delete operations.
type ApprovalLogRepository interface {
	Create(ctx context.Context, entry *entity.ApprovalLogEntry) error
	GetByTaskID(ctx context.Context, taskID string) ([]*entity.ApprovalLogEntry, error)
}

// AssignmentLogRepository persists PIC membership changes. Append-only.
type AssignmentLogRepository interface {
	Create(ctx context.Context, entry *entity.AssignmentLogEntry) error
	GetByTaskID(ctx context.Context, taskID string) ([]*entity.AssignmentLogEntry, error)
}

// TransactionManager executes a function within a database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
