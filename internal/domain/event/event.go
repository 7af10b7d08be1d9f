package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event emitted by the task services. Handlers
// receive it after the originating transaction has committed.
type Event struct {
	ID         string                 `json:"id"`
	Type       Type                   `json:"type"`
	TaskID     string                 `json:"task_id"`
	ActivityID string                 `json:"activity_id"`
	Payload    map[string]interface{} `json:"payload"`
	Timestamp  time.Time              `json:"timestamp"`
}

// NewEvent creates a new domain event with auto-generated ID and timestamp
func NewEvent(eventType Type, taskID, activityID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		TaskID:     taskID,
		ActivityID: activityID,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
