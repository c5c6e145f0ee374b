package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

func TestBuildRunReport(t *testing.T) {
	run := &domain.AssignmentRun{
		ID:     "run-1",
		Status: domain.RunStatusDegraded,
		Records: []domain.AssignmentRecord{
			{
				TicketID:        "TKT-0001",
				AssignedAgentID: "agent_001",
				PriorityLevel:   domain.PriorityCritical,
				PriorityScore:   19.456,
				SkillMatchScore: 0.66666,
				WorkloadFactor:  0.875,
				FinalScore:      0.67412,
			},
			{
				TicketID:        "TKT-0002",
				AssignedAgentID: "agent_001",
				PriorityLevel:   domain.PriorityCritical,
				PriorityScore:   10,
			},
			{
				TicketID:        "TKT-0003",
				AssignedAgentID: "agent_002",
				PriorityLevel:   domain.PriorityLow,
				PriorityScore:   2,
				Fallback:        true,
			},
		},
	}

	report := BuildRunReport(run)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, "DEGRADED", report.Status)

	summary := report.Summary
	assert.Equal(t, 3, summary.TotalTickets)
	assert.Equal(t, 1, summary.FallbackCount)
	assert.Equal(t, map[string]int{"CRITICAL": 2, "LOW": 1}, summary.PriorityDistribution)
	assert.Equal(t, map[string]int{"agent_001": 2, "agent_002": 1}, summary.AgentWorkloadDistribution)
	assert.InDelta(t, 66.7, summary.PriorityPercentages["CRITICAL"], 1e-9)
	assert.InDelta(t, 33.3, summary.PriorityPercentages["LOW"], 1e-9)

	require.Len(t, report.Assignments, 3)
	first := report.Assignments[0]
	assert.InDelta(t, 19.46, first.PriorityScore, 1e-9)
	assert.InDelta(t, 0.667, first.SkillMatchScore, 1e-9)
	assert.InDelta(t, 0.875, first.WorkloadFactor, 1e-9)
	assert.InDelta(t, 0.674, first.FinalScore, 1e-9)
}

func TestBuildRunReportEmptyRun(t *testing.T) {
	report := BuildRunReport(&domain.AssignmentRun{ID: "run-2", Status: domain.RunStatusCompleted})

	assert.Equal(t, 0, report.Summary.TotalTickets)
	assert.Empty(t, report.Summary.PriorityPercentages)
	assert.Empty(t, report.Assignments)
}
