package service

import (
	"context"
	"time"

	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// Mock repositories

type mockTaskRepo struct {
	createFunc          func(ctx context.Context, task *entity.Task) error
	getByIDFunc         func(ctx context.Context, id string) (*entity.Task, error)
	listByActivityFunc  func(ctx context.Context, activityID string) ([]*entity.Task, error)
	listOverlappingFunc func(ctx context.Context, from, to time.Time) ([]*entity.Task, error)
	updateFunc          func(ctx context.Context, task *entity.Task) error
	deleteFunc          func(ctx context.Context, id string) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) ListByActivity(ctx context.Context, activityID string) ([]*entity.Task, error) {
	if m.listByActivityFunc != nil {
		return m.listByActivityFunc(ctx, activityID)
	}
	return []*entity.Task{}, nil
}

func (m *mockTaskRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	if m.listOverlappingFunc != nil {
		return m.listOverlappingFunc(ctx, from, to)
	}
	return []*entity.Task{}, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockActivityRepo struct {
	createFunc  func(ctx context.Context, activity *entity.Activity) error
	getByIDFunc func(ctx context.Context, id string) (*entity.Activity, error)
	listFunc    func(ctx context.Context) ([]*entity.Activity, error)
	updateFunc  func(ctx context.Context, activity *entity.Activity) error
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *entity.Activity) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, activity)
	}
	return nil
}

func (m *mockActivityRepo) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockActivityRepo) List(ctx context.Context) ([]*entity.Activity, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*entity.Activity{}, nil
}

func (m *mockActivityRepo) Update(ctx context.Context, activity *entity.Activity) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, activity)
	}
	return nil
}

type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*entity.User, error)
	listFunc    func(ctx context.Context) ([]*entity.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*entity.User{}, nil
}

// userStore builds a mockUserRepo resolving the given users by ID. Unknown
// IDs resolve to nil, matching the repository convention for missing rows.
func userStore(users ...*entity.User) *mockUserRepo {
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return byID[id], nil
		},
	}
}

type mockApprovalLogRepo struct {
	createFunc      func(ctx context.Context, entry *entity.ApprovalLogEntry) error
	getByTaskIDFunc func(ctx context.Context, taskID string) ([]*entity.ApprovalLogEntry, error)
}

func (m *mockApprovalLogRepo) Create(ctx context.Context, entry *entity.ApprovalLogEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, entry)
	}
	return nil
}

func (m *mockApprovalLogRepo) GetByTaskID(ctx context.Context, taskID string) ([]*entity.ApprovalLogEntry, error) {
	if m.getByTaskIDFunc != nil {
		return m.getByTaskIDFunc(ctx, taskID)
	}
	return []*entity.ApprovalLogEntry{}, nil
}

type mockAssignmentLogRepo struct {
	createFunc      func(ctx context.Context, entry *entity.AssignmentLogEntry) error
	getByTaskIDFunc func(ctx context.Context, taskID string) ([]*entity.AssignmentLogEntry, error)
}

func (m *mockAssignmentLogRepo) Create(ctx context.Context, entry *entity.AssignmentLogEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, entry)
	}
	return nil
}

func (m *mockAssignmentLogRepo) GetByTaskID(ctx context.Context, taskID string) ([]*entity.AssignmentLogEntry, error) {
	if m.getByTaskIDFunc != nil {
		return m.getByTaskIDFunc(ctx, taskID)
	}
	return []*entity.AssignmentLogEntry{}, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

// fixedClock pins service timestamps for assertions
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
