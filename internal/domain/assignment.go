package domain

import "time"

// RunStatus enumerates lifecycle states for an assignment run.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusDegraded  RunStatus = "DEGRADED"
)

// AssignmentRecord is the per-ticket outcome of one allocation run.
// Records are immutable once created; the ordered list of them is the sole
// output of the assignment core.
type AssignmentRecord struct {
	TicketID        string
	AssignedAgentID string
	Rationale       string
	PriorityLevel   PriorityLevel
	PriorityScore   float64
	SkillMatchScore float64
	WorkloadFactor  float64
	FinalScore      float64
	Fallback        bool
}

// AssignmentRun groups the records produced by a single allocate invocation.
type AssignmentRun struct {
	ID          string
	Status      RunStatus
	TriggeredBy *string
	AgentCount  int
	TicketCount int
	Records     []AssignmentRecord
	CreatedAt   time.Time
}
