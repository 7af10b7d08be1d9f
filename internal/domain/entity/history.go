package entity

import "time"

// Review action constants for ApprovalLogEntry
const (
	ReviewActionApproved = "approved"
	ReviewActionRevision = "revision"
)

// Assignment action constants for AssignmentLogEntry
const (
	AssignmentActionAdd     = "add"
	AssignmentActionRemove  = "remove"
	AssignmentActionReplace = "replace"
)

// ApprovalLogEntry records a single review decision on a task. The log is
// append-only: entries are produced by the workflow engine and never edited
// or deleted afterwards, archival included.
type ApprovalLogEntry struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name"`
	Action       string    `json:"action"`
	Feedback     string    `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssignmentLogEntry records a single PIC membership change on a task.
// Append-only, produced exclusively by the assignment manager.
type AssignmentLogEntry struct {
	ID               string    `json:"id"`
	TaskID           string    `json:"task_id"`
	ChangedByID      string    `json:"changed_by_id"`
	ChangedByName    string    `json:"changed_by_name"`
	ActionType       string    `json:"action_type"`
	AffectedUserID   string    `json:"affected_user_id"`
	AffectedUserName string    `json:"affected_user_name"`
	CreatedAt        time.Time `json:"created_at"`
}
