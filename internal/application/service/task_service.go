package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wibisana/marketing-tracker/internal/application/dispatcher"
	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/authz"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
	"github.com/wibisana/marketing-tracker/internal/domain/event"
	"github.com/wibisana/marketing-tracker/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// CreateTaskInput carries the fields a caller supplies when creating a task.
type CreateTaskInput struct {
	ActivityID string
	Title      string
	Priority   string
	StartDate  time.Time
	EndDate    time.Time
	PicIDs     []string
}

// UpdateTaskInput carries the editable task fields. Status and PICs are not
// here: those change only through Transition and the assignment service.
type UpdateTaskInput struct {
	Title     string
	Priority  string
	StartDate time.Time
	EndDate   time.Time
}

// TaskService manages tasks and their workflow transitions
type TaskService interface {
	CreateTask(ctx context.Context, actorID string, input CreateTaskInput) (*entity.Task, error)
	GetTask(ctx context.Context, id string) (*entity.Task, error)
	ListTasks(ctx context.Context, activityID string) ([]*entity.Task, error)
	UpdateTask(ctx context.Context, actorID, taskID string, input UpdateTaskInput) (*entity.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID string) error

	// Transition moves a task to the target status on behalf of the actor.
	// Review decisions append an approval log entry in the same transaction.
	Transition(ctx context.Context, actorID, taskID, target, feedback string) (*entity.Task, error)

	// ApprovalLog returns the task's review history, oldest first.
	ApprovalLog(ctx context.Context, taskID string) ([]*entity.ApprovalLogEntry, error)
}

type taskServiceImpl struct {
	taskRepo        port.TaskRepository
	activityRepo    port.ActivityRepository
	userRepo        port.UserRepository
	approvalLogRepo port.ApprovalLogRepository
	txManager       port.TransactionManager
	clock           port.Clock
	dispatcher      dispatcher.Dispatcher
	logger          Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo port.TaskRepository,
	activityRepo port.ActivityRepository,
	userRepo port.UserRepository,
	approvalLogRepo port.ApprovalLogRepository,
	txManager port.TransactionManager,
	clock port.Clock,
	disp dispatcher.Dispatcher,
	logger Logger,
) TaskService {
	return &taskServiceImpl{
		taskRepo:        taskRepo,
		activityRepo:    activityRepo,
		userRepo:        userRepo,
		approvalLogRepo: approvalLogRepo,
		txManager:       txManager,
		clock:           clock,
		dispatcher:      disp,
		logger:          logger,
	}
}

// CreateTask creates a task in To Do status. The actor becomes the immutable
// creator; initial PICs are resolved against the user store.
func (s *taskServiceImpl) CreateTask(ctx context.Context, actorID string, input CreateTaskInput) (*entity.Task, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("user not found: %s", actorID)
	}

	activity, err := s.activityRepo.GetByID(ctx, input.ActivityID)
	if err != nil || activity == nil {
		return nil, fmt.Errorf("%w: %s", authz.ErrUnknownActivity, input.ActivityID)
	}

	now := s.clock.Now()
	task := &entity.Task{
		ID:         uuid.NewString(),
		ActivityID: input.ActivityID,
		Title:      input.Title,
		Status:     entity.StatusToDo,
		Priority:   input.Priority,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		CreatorID:  actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, picID := range input.PicIDs {
		if task.HasPic(picID) {
			continue
		}
		pic, err := s.userRepo.GetByID(ctx, picID)
		if err != nil {
			return nil, fmt.Errorf("resolve pic %s: %w", picID, err)
		}
		if pic == nil {
			return nil, fmt.Errorf("user not found: %s", picID)
		}
		task.Pics = append(task.Pics, entity.PicRef{ID: pic.ID, Name: pic.Name})
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("Failed to create task", "error", err, "activity_id", input.ActivityID)
		return nil, err
	}

	s.emit(ctx, event.TypeTaskCreated, task, map[string]interface{}{"creator_id": actor.ID})
	s.logger.Info("Task created", "task_id", task.ID, "activity_id", task.ActivityID, "creator_id", actor.ID)
	return task, nil
}

// GetTask retrieves a task by ID
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task not found: %s", id)
	}
	return task, nil
}

// ListTasks returns the tasks of an activity
func (s *taskServiceImpl) ListTasks(ctx context.Context, activityID string) ([]*entity.Task, error) {
	return s.taskRepo.ListByActivity(ctx, activityID)
}

// UpdateTask edits the task's own fields. Leaders and the creator only;
// archived tasks are frozen.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, actorID, taskID string, input UpdateTaskInput) (*entity.Task, error) {
	actor, task, err := s.loadActorAndTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}

	if !authz.CanEditTask(actor, task) {
		return nil, fmt.Errorf("%w: user %s may not edit task %s", authz.ErrForbidden, actorID, taskID)
	}

	updated := task.Clone()
	updated.Title = input.Title
	updated.Priority = input.Priority
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	updated.UpdatedAt = s.clock.Now()

	if err := s.taskRepo.Update(ctx, updated); err != nil {
		s.logger.Error("Failed to update task", "error", err, "task_id", taskID)
		return nil, err
	}

	s.logger.Info("Task updated", "task_id", taskID, "actor_id", actorID)
	return updated, nil
}

// DeleteTask removes a task. Leaders and the creator; archival does not
// block deletion.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, actorID, taskID string) error {
	actor, task, err := s.loadActorAndTask(ctx, actorID, taskID)
	if err != nil {
		return err
	}

	if !authz.CanDeleteTask(actor, task) {
		return fmt.Errorf("%w: user %s may not delete task %s", authz.ErrForbidden, actorID, taskID)
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		s.logger.Error("Failed to delete task", "error", err, "task_id", taskID)
		return err
	}

	s.emit(ctx, event.TypeTaskDeleted, task, map[string]interface{}{"actor_id": actorID})
	s.logger.Info("Task deleted", "task_id", taskID, "actor_id", actorID)
	return nil
}

// Transition validates and executes a status change against a fresh snapshot
// of the task and its activities, persisting the task and any approval log
// entry in one transaction.
func (s *taskServiceImpl) Transition(ctx context.Context, actorID, taskID, target, feedback string) (*entity.Task, error) {
	actor, task, err := s.loadActorAndTask(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	result, err := workflow.Apply(task, target, actor, activities, feedback, s.clock.Now())
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.taskRepo.Update(txCtx, result.Task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if result.LogEntry != nil {
			if err := s.approvalLogRepo.Create(txCtx, result.LogEntry); err != nil {
				return fmt.Errorf("append approval log: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to transition task", "error", err, "task_id", taskID, "target", target)
		return nil, err
	}

	s.emit(ctx, event.TypeStatusChanged, result.Task, map[string]interface{}{
		"previous_status": task.Status,
		"new_status":      result.Task.Status,
		"actor_id":        actorID,
	})

	s.logger.Info("Task transitioned",
		"task_id", taskID,
		"from", task.Status,
		"to", result.Task.Status,
		"actor_id", actorID,
	)
	return result.Task, nil
}

// ApprovalLog returns the task's review history, oldest first
func (s *taskServiceImpl) ApprovalLog(ctx context.Context, taskID string) ([]*entity.ApprovalLogEntry, error) {
	return s.approvalLogRepo.GetByTaskID(ctx, taskID)
}

func (s *taskServiceImpl) loadActorAndTask(ctx context.Context, actorID, taskID string) (*entity.User, *entity.Task, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve actor: %w", err)
	}
	if actor == nil {
		return nil, nil, fmt.Errorf("user not found: %s", actorID)
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		return nil, nil, fmt.Errorf("task not found: %s", taskID)
	}
	return actor, task, nil
}

func (s *taskServiceImpl) emit(ctx context.Context, eventType event.Type, task *entity.Task, payload map[string]interface{}) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.NewEvent(eventType, task.ID, task.ActivityID, payload))
}
