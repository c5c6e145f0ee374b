package events

import (
	"time"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRunStarted     EventType = "assignment_run_started"
	EventRunCompleted   EventType = "assignment_run_completed"
	EventTicketAssigned EventType = "ticket_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RunID     string      `json:"run_id"`
	Actor     *string     `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RunStartedPayload payload.
type RunStartedPayload struct {
	AgentCount  int `json:"agent_count"`
	TicketCount int `json:"ticket_count"`
}

// RunCompletedPayload payload.
type RunCompletedPayload struct {
	Status        domain.RunStatus `json:"status"`
	RecordCount   int              `json:"record_count"`
	FallbackCount int              `json:"fallback_count"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID        string               `json:"ticket_id"`
	AssignedAgentID string               `json:"assigned_agent_id"`
	PriorityLevel   domain.PriorityLevel `json:"priority_level"`
	Fallback        bool                 `json:"fallback"`
}
