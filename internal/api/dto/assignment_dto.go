package dto

import (
	"time"

	"github.com/spec-kit/ticket-assignment/internal/validation"
)

// RunRequest optionally carries an inline dataset. With both lists empty the
// persisted agents and tickets are used.
type RunRequest struct {
	Agents  []AgentRequest  `json:"agents,omitempty"`
	Tickets []TicketRequest `json:"tickets,omitempty"`
}

// RecordResponse mirrors one assignment record.
type RecordResponse struct {
	TicketID        string  `json:"ticket_id"`
	AssignedAgentID string  `json:"assigned_agent_id"`
	Rationale       string  `json:"rationale"`
	PriorityLevel   string  `json:"priority_level"`
	PriorityScore   float64 `json:"priority_score"`
	SkillMatchScore float64 `json:"skill_match_score"`
	WorkloadFactor  float64 `json:"workload_factor"`
	FinalScore      float64 `json:"final_score"`
	Fallback        bool    `json:"fallback"`
}

// RunResponse describes one allocation run with its ordered records.
type RunResponse struct {
	RunID       string             `json:"run_id"`
	Status      string             `json:"status"`
	TriggeredBy *string            `json:"triggered_by,omitempty"`
	AgentCount  int                `json:"agent_count"`
	TicketCount int                `json:"ticket_count"`
	CreatedAt   time.Time          `json:"created_at"`
	Records     []RecordResponse   `json:"records,omitempty"`
	Warnings    []validation.Issue `json:"validation_warnings,omitempty"`
}

// RunSummaryResponse is the header-only view used by run listings.
type RunSummaryResponse struct {
	RunID       string    `json:"run_id"`
	Status      string    `json:"status"`
	TriggeredBy *string   `json:"triggered_by,omitempty"`
	AgentCount  int       `json:"agent_count"`
	TicketCount int       `json:"ticket_count"`
	CreatedAt   time.Time `json:"created_at"`
}
