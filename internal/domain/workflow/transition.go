package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wibisana/marketing-tracker/internal/domain/authz"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// Result holds the outcome of a successful transition: the updated task copy
// and, for review decisions, the approval log entry to append. The input
// snapshot is never mutated.
type Result struct {
	Task     *entity.Task
	LogEntry *entity.ApprovalLogEntry
}

// Apply validates and executes a status transition on a task snapshot.
// The actor must pass CanEditStatus; review decisions (leaving Need Review)
// additionally require reviewer standing. Requesting a revision without
// feedback fails with ErrMissingFeedback. Either the full result is returned
// or nothing changed.
func Apply(task *entity.Task, target string, actor *entity.User, activities []*entity.Activity, feedback string, now time.Time) (*Result, error) {
	from := State(task.Status)
	if !from.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, task.Status)
	}

	if !authz.CanEditStatus(actor, activities, task) {
		return nil, fmt.Errorf("%w: user %s may not edit status of task %s", authz.ErrForbidden, actor.ID, task.ID)
	}

	trigger, ok := TriggerFor(from, State(target))
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, target)
	}

	if from.RequiresReviewer() && !authz.CanReview(actor) {
		return nil, fmt.Errorf("%w: user %s is not a reviewer", authz.ErrForbidden, actor.ID)
	}

	var logEntry *entity.ApprovalLogEntry
	switch trigger {
	case TriggerApprove:
		logEntry = newApprovalLog(task, actor, entity.ReviewActionApproved, feedback, now)
	case TriggerRequestRevision:
		if strings.TrimSpace(feedback) == "" {
			return nil, ErrMissingFeedback
		}
		logEntry = newApprovalLog(task, actor, entity.ReviewActionRevision, feedback, now)
	}

	machine := BuildTaskStateMachine(from)
	if err := machine.Fire(trigger); err != nil {
		return nil, err
	}

	updated := task.Clone()
	updated.Status = machine.State().String()
	updated.UpdatedAt = now

	return &Result{Task: updated, LogEntry: logEntry}, nil
}

func newApprovalLog(task *entity.Task, reviewer *entity.User, action, feedback string, now time.Time) *entity.ApprovalLogEntry {
	return &entity.ApprovalLogEntry{
		ID:           uuid.NewString(),
		TaskID:       task.ID,
		ReviewerID:   reviewer.ID,
		ReviewerName: reviewer.Name,
		Action:       action,
		Feedback:     feedback,
		CreatedAt:    now.UTC(),
	}
}
