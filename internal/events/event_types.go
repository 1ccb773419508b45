package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated          EventType = "employee_created"
	EventEmployeeDeleted          EventType = "employee_deleted"
	EventTaskAssigned             EventType = "task_assigned"
	EventTaskStatusChanged        EventType = "task_status_changed"
	EventApplicationReceived      EventType = "application_received"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventPaymentCreated           EventType = "payment_created"
	EventPackageSubscribed        EventType = "package_subscribed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CompanyID string      `json:"company_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, companyID, actorID, entityID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		CompanyID: companyID,
		ActorID:   actorID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// StatusChangedPayload is shared by task and application status events.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// TaskAssignedPayload names the employee a task was given to.
type TaskAssignedPayload struct {
	Title      string `json:"title"`
	AssigneeID string `json:"assignee_id"`
}

// ApplicationReceivedPayload payload.
type ApplicationReceivedPayload struct {
	JobID    string `json:"job_id"`
	JobTitle string `json:"job_title"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// PaymentPayload is used by payment and subscription events.
type PaymentPayload struct {
	Key       string `json:"key"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	PackageID string `json:"package_id,omitempty"`
}
