package entity

import "time"

// Status constants for Task. The values double as display labels and are
// stored verbatim; the workflow package owns which transitions between them
// are legal.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusNeedReview = "Need Review"
	StatusRevision   = "Revision"
	StatusApproved   = "Approved"
	StatusArchived   = "Archived"
)

// Priority constants for Task
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// PicRef identifies a user assigned to a task. IDs are unique within a
// task's PIC list; order is the order of assignment.
type PicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is the unit of work inside an activity. CreatorID is immutable after
// creation, so the edit and delete rights derived from it never transfer.
// Archived tasks are retained, frozen against edits, and leave the archive
// only through the explicit reopen transition back to To Do.
type Task struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	Title      string    `json:"title"`
	Pics       []PicRef  `json:"pics"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatorID  string    `json:"creator_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasPic returns true if the user appears in the task's PIC list.
func (t *Task) HasPic(userID string) bool {
	for _, p := range t.Pics {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task. Mutating operations work on a copy
// so a failed validation leaves the caller's snapshot untouched.
func (t *Task) Clone() *Task {
	cp := *t
	cp.Pics = append([]PicRef(nil), t.Pics...)
	return &cp
}
