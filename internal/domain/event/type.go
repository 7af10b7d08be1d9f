package event

// Type identifies the type of domain event
type Type string

const (
	TypeTaskCreated   Type = "task.created"
	TypeStatusChanged Type = "task.status_changed"
	TypePicsChanged   Type = "task.pics_changed"
	TypeTaskDeleted   Type = "task.deleted"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeTaskCreated,
		TypeStatusChanged,
		TypePicsChanged,
		TypeTaskDeleted:
		return true
	default:
		return false
	}
}
