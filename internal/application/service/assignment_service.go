package service

import (
	"context"
	"fmt"

	"github.com/wibisana/marketing-tracker/internal/application/dispatcher"
	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/assignment"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
	"github.com/wibisana/marketing-tracker/internal/domain/event"
)

// AssignmentService manages PIC membership on tasks
type AssignmentService interface {
	AddPic(ctx context.Context, actorID, taskID, userID string) (*entity.Task, error)
	RemovePic(ctx context.Context, actorID, taskID, userID string) (*entity.Task, error)
	ReplacePic(ctx context.Context, actorID, taskID, oldUserID, newUserID string) (*entity.Task, error)

	// AssignmentLog returns the task's membership audit trail, oldest first.
	AssignmentLog(ctx context.Context, taskID string) ([]*entity.AssignmentLogEntry, error)
}

type assignmentServiceImpl struct {
	taskRepo          port.TaskRepository
	activityRepo      port.ActivityRepository
	userRepo          port.UserRepository
	assignmentLogRepo port.AssignmentLogRepository
	txManager         port.TransactionManager
	clock             port.Clock
	dispatcher        dispatcher.Dispatcher
	logger            Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	taskRepo port.TaskRepository,
	activityRepo port.ActivityRepository,
	userRepo port.UserRepository,
	assignmentLogRepo port.AssignmentLogRepository,
	txManager port.TransactionManager,
	clock port.Clock,
	disp dispatcher.Dispatcher,
	logger Logger,
) AssignmentService {
	return &assignmentServiceImpl{
		taskRepo:          taskRepo,
		activityRepo:      activityRepo,
		userRepo:          userRepo,
		assignmentLogRepo: assignmentLogRepo,
		txManager:         txManager,
		clock:             clock,
		dispatcher:        disp,
		logger:            logger,
	}
}

// AddPic assigns a user to the task
func (s *assignmentServiceImpl) AddPic(ctx context.Context, actorID, taskID, userID string) (*entity.Task, error) {
	return s.change(ctx, actorID, taskID, func(task *entity.Task, actor *entity.User, activities []*entity.Activity) (*assignment.ChangeResult, error) {
		pic, err := s.picRef(ctx, userID)
		if err != nil {
			return nil, err
		}
		return assignment.AddPic(task, actor, activities, pic, s.clock.Now())
	})
}

// RemovePic unassigns a user from the task
func (s *assignmentServiceImpl) RemovePic(ctx context.Context, actorID, taskID, userID string) (*entity.Task, error) {
	return s.change(ctx, actorID, taskID, func(task *entity.Task, actor *entity.User, activities []*entity.Activity) (*assignment.ChangeResult, error) {
		return assignment.RemovePic(task, actor, activities, userID, s.clock.Now())
	})
}

// ReplacePic atomically swaps one assigned user for another
func (s *assignmentServiceImpl) ReplacePic(ctx context.Context, actorID, taskID, oldUserID, newUserID string) (*entity.Task, error) {
	return s.change(ctx, actorID, taskID, func(task *entity.Task, actor *entity.User, activities []*entity.Activity) (*assignment.ChangeResult, error) {
		pic, err := s.picRef(ctx, newUserID)
		if err != nil {
			return nil, err
		}
		return assignment.ReplacePic(task, actor, activities, oldUserID, pic, s.clock.Now())
	})
}

// AssignmentLog returns the task's membership audit trail, oldest first
func (s *assignmentServiceImpl) AssignmentLog(ctx context.Context, taskID string) ([]*entity.AssignmentLogEntry, error) {
	return s.assignmentLogRepo.GetByTaskID(ctx, taskID)
}

// change runs a membership operation against a fresh snapshot and persists
// the updated task together with its log entry in one transaction.
func (s *assignmentServiceImpl) change(
	ctx context.Context,
	actorID, taskID string,
	op func(task *entity.Task, actor *entity.User, activities []*entity.Activity) (*assignment.ChangeResult, error),
) (*entity.Task, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if actor == nil {
		return nil, fmt.Errorf("user not found: %s", actorID)
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}
	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load activities: %w", err)
	}

	result, err := op(task, actor, activities)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.taskRepo.Update(txCtx, result.Task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if err := s.assignmentLogRepo.Create(txCtx, result.LogEntry); err != nil {
			return fmt.Errorf("append assignment log: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to change task PICs", "error", err, "task_id", taskID)
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.DispatchAsync(ctx, event.NewEvent(event.TypePicsChanged, task.ID, task.ActivityID, map[string]interface{}{
			"action":           result.LogEntry.ActionType,
			"affected_user_id": result.LogEntry.AffectedUserID,
			"actor_id":         actorID,
		}))
	}

	s.logger.Info("Task PICs changed",
		"task_id", taskID,
		"action", result.LogEntry.ActionType,
		"affected_user_id", result.LogEntry.AffectedUserID,
		"actor_id", actorID,
	)
	return result.Task, nil
}

func (s *assignmentServiceImpl) picRef(ctx context.Context, userID string) (entity.PicRef, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.PicRef{}, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	if user == nil {
		return entity.PicRef{}, fmt.Errorf("user not found: %s", userID)
	}
	return entity.PicRef{ID: user.ID, Name: user.Name}, nil
}
