package workflow

// Trigger represents an action that can cause a state transition
type Trigger string

const (
	TriggerStart           Trigger = "START"
	TriggerSubmitReview    Trigger = "SUBMIT_REVIEW"
	TriggerApprove         Trigger = "APPROVE"
	TriggerRequestRevision Trigger = "REQUEST_REVISION"
	TriggerResume          Trigger = "RESUME"
	TriggerArchive         Trigger = "ARCHIVE"
	TriggerReopen          Trigger = "REOPEN"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
