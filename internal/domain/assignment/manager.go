// Package assignment governs PIC membership changes on tasks. Adds and
// removes carry differentiated rights: full managers (Leader, Activity PIC)
// may do both, while creators and assigned PICs hold an add-only right.
// Every change produces an append-only assignment log entry.
package assignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wibisana/marketing-tracker/internal/domain/authz"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// ChangeResult holds the outcome of a successful membership change: the
// updated task copy and the log entry to append. Input snapshots are never
// mutated.
type ChangeResult struct {
	Task     *entity.Task
	LogEntry *entity.AssignmentLogEntry
}

// AddPic assigns a new PIC to the task. Allowed for full managers and
// add-only holders alike; duplicate assignment is rejected.
func AddPic(task *entity.Task, actor *entity.User, activities []*entity.Activity, pic entity.PicRef, now time.Time) (*ChangeResult, error) {
	if !authz.CanManagePics(actor, activities, task) && !authz.CanAddPicOnly(actor, activities, task) {
		return nil, fmt.Errorf("%w: user %s may not add PICs to task %s", authz.ErrForbidden, actor.ID, task.ID)
	}
	if task.HasPic(pic.ID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAssigned, pic.ID)
	}

	updated := task.Clone()
	updated.Pics = append(updated.Pics, pic)
	updated.UpdatedAt = now

	return &ChangeResult{
		Task:     updated,
		LogEntry: newLog(task, actor, entity.AssignmentActionAdd, pic, now),
	}, nil
}

// RemovePic unassigns a PIC from the task. Full managers only: add-only
// holders are rejected. A task must keep at least one PIC, so removing the
// last one fails; ReplacePic is the path that swaps a sole PIC.
func RemovePic(task *entity.Task, actor *entity.User, activities []*entity.Activity, userID string, now time.Time) (*ChangeResult, error) {
	if !authz.CanManagePics(actor, activities, task) {
		return nil, fmt.Errorf("%w: user %s may not remove PICs from task %s", authz.ErrForbidden, actor.ID, task.ID)
	}

	removed, remaining := splitPic(task.Pics, userID)
	if removed == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAssigned, userID)
	}
	if len(remaining) == 0 {
		return nil, fmt.Errorf("%w: task %s", ErrLastPicRemoval, task.ID)
	}

	updated := task.Clone()
	updated.Pics = remaining
	updated.UpdatedAt = now

	return &ChangeResult{
		Task:     updated,
		LogEntry: newLog(task, actor, entity.AssignmentActionRemove, *removed, now),
	}, nil
}

// ReplacePic atomically swaps one PIC for another, recorded as a single
// replace entry. Full managers only. The swap preserves the PIC count, so it
// is the sanctioned way to hand over a task with a single PIC.
func ReplacePic(task *entity.Task, actor *entity.User, activities []*entity.Activity, oldUserID string, newPic entity.PicRef, now time.Time) (*ChangeResult, error) {
	if !authz.CanManagePics(actor, activities, task) {
		return nil, fmt.Errorf("%w: user %s may not manage PICs of task %s", authz.ErrForbidden, actor.ID, task.ID)
	}
	if task.HasPic(newPic.ID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyAssigned, newPic.ID)
	}

	removed, remaining := splitPic(task.Pics, oldUserID)
	if removed == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAssigned, oldUserID)
	}

	updated := task.Clone()
	updated.Pics = append(remaining, newPic)
	updated.UpdatedAt = now

	return &ChangeResult{
		Task:     updated,
		LogEntry: newLog(task, actor, entity.AssignmentActionReplace, newPic, now),
	}, nil
}

// splitPic removes the PIC with the given ID from the list, returning the
// removed ref and the remainder. Nil removed means the ID was not present.
func splitPic(pics []entity.PicRef, userID string) (*entity.PicRef, []entity.PicRef) {
	remaining := make([]entity.PicRef, 0, len(pics))
	var removed *entity.PicRef
	for _, p := range pics {
		if p.ID == userID {
			ref := p
			removed = &ref
			continue
		}
		remaining = append(remaining, p)
	}
	return removed, remaining
}

func newLog(task *entity.Task, actor *entity.User, actionType string, affected entity.PicRef, now time.Time) *entity.AssignmentLogEntry {
	return &entity.AssignmentLogEntry{
		ID:               uuid.NewString(),
		TaskID:           task.ID,
		ChangedByID:      actor.ID,
		ChangedByName:    actor.Name,
		ActionType:       actionType,
		AffectedUserID:   affected.ID,
		AffectedUserName: affected.Name,
		CreatedAt:        now.UTC(),
	}
}
