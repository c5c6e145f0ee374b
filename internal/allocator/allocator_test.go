package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/priority"
	"github.com/spec-kit/ticket-assignment/internal/skills"
)

func newAllocator() *Allocator {
	return New(priority.NewAnalyzer(), skills.NewMatcher())
}

func ticket(id, title, description string) domain.Ticket {
	return domain.Ticket{ID: id, Title: title, Description: description}
}

func TestAllocateAssignsEveryTicketOnce(t *testing.T) {
	alloc := newAllocator()

	agents := []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Availability: domain.AvailabilityAvailable, ExperienceLevel: 6},
		{ID: "agent_002", Name: "Noah Reed", Availability: domain.AvailabilityAvailable, ExperienceLevel: 3},
	}
	tickets := []domain.Ticket{
		ticket("TKT-0001", "Server down", "Production database is down"),
		ticket("TKT-0002", "VPN connection problems", "Remote staff cannot connect"),
		ticket("TKT-0003", "Feature request", "A nice to have enhancement"),
	}

	records := alloc.Allocate(tickets, agents)

	require.Len(t, records, len(tickets))
	seen := make(map[string]bool, len(records))
	for _, record := range records {
		assert.False(t, seen[record.TicketID], "ticket assigned twice: %s", record.TicketID)
		seen[record.TicketID] = true
		assert.NotEmpty(t, record.AssignedAgentID)
		assert.NotEmpty(t, record.Rationale)
	}
	for _, tk := range tickets {
		assert.True(t, seen[tk.ID], "ticket missing from records: %s", tk.ID)
	}
}

func TestAllocateSkipsUnavailableAgents(t *testing.T) {
	alloc := newAllocator()

	agents := []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Availability: domain.AvailabilityBusy, ExperienceLevel: 12},
		{ID: "agent_002", Name: "Noah Reed", Availability: domain.AvailabilityAvailable, ExperienceLevel: 1},
		{ID: "agent_003", Name: "Mia Patel", Availability: domain.AvailabilityOffline, ExperienceLevel: 12},
		{ID: "agent_004", Name: "Leo Brooks", Availability: domain.AvailabilityOnLeave, ExperienceLevel: 12},
	}
	tickets := []domain.Ticket{
		ticket("TKT-0001", "Server down", "Production outage"),
		ticket("TKT-0002", "Password help", "Need assistance with setup"),
	}

	records := alloc.Allocate(tickets, agents)

	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "agent_002", record.AssignedAgentID)
		assert.False(t, record.Fallback)
	}
}

func TestAllocateOrdersByUrgency(t *testing.T) {
	alloc := newAllocator()

	agents := []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Availability: domain.AvailabilityAvailable},
	}
	tickets := []domain.Ticket{
		ticket("TKT-0001", "Feature request", "A nice to have enhancement"),
		ticket("TKT-0002", "Server down", "Production database is down"),
		ticket("TKT-0003", "Need help", "Assistance with printer setup please"),
	}

	records := alloc.Allocate(tickets, agents)

	require.Len(t, records, 3)
	assert.Equal(t, "TKT-0002", records[0].TicketID)
	assert.Equal(t, domain.PriorityCritical, records[0].PriorityLevel)
	assert.Equal(t, domain.PriorityLow, records[2].PriorityLevel)
	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, records[i-1].PriorityLevel.Rank(), records[i].PriorityLevel.Rank())
	}
}

func TestAllocateWorkloadAccumulatesWithinRun(t *testing.T) {
	alloc := newAllocator()

	// Identical agents: the first wins the opening tie, which raises its
	// run-scoped workload and sends the next ticket to the second.
	agents := []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Availability: domain.AvailabilityAvailable, ExperienceLevel: 5},
		{ID: "agent_002", Name: "Noah Reed", Availability: domain.AvailabilityAvailable, ExperienceLevel: 5},
	}
	tickets := []domain.Ticket{
		ticket("TKT-0001", "General inquiry", "Information about office hours"),
		ticket("TKT-0002", "General inquiry", "Information about office hours"),
	}

	records := alloc.Allocate(tickets, agents)

	require.Len(t, records, 2)
	assert.Equal(t, "agent_001", records[0].AssignedAgentID)
	assert.Equal(t, "agent_002", records[1].AssignedAgentID)
}

func TestAllocateCompositeScore(t *testing.T) {
	alloc := newAllocator()

	agents := []domain.Agent{
		{
			ID:              "agent_007",
			Name:            "Ava Chen",
			Skills:          map[string]int{"Networking": 10},
			Availability:    domain.AvailabilityAvailable,
			ExperienceLevel: 7.5,
			CurrentLoad:     2,
		},
	}
	records := alloc.Allocate([]domain.Ticket{
		ticket("TKT-0001", "VPN connection", "Problems with the vpn connection"),
	}, agents)

	require.Len(t, records, 1)
	record := records[0]

	assert.Equal(t, domain.PriorityHigh, record.PriorityLevel)
	assert.InDelta(t, 2.0/3.0, record.SkillMatchScore, 1e-9)
	assert.InDelta(t, 0.75, record.WorkloadFactor, 1e-9)

	expected := (2.0/3.0)*0.4 + 0.75*0.25 + 0.5*0.2 + 0.8*0.15
	assert.InDelta(t, expected, record.FinalScore, 1e-9)
	assert.Equal(t,
		"Assigned to Ava Chen (agent_007) based on good skill match and good experience (7.5 years) with low current workload for this HIGH priority ticket.",
		record.Rationale)
}

func TestAllocateFallbackWhenNoneAvailable(t *testing.T) {
	alloc := newAllocator()

	agents := []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Availability: domain.AvailabilityBusy},
		{ID: "agent_002", Name: "Noah Reed", Availability: domain.AvailabilityOffline},
	}
	records := alloc.Allocate([]domain.Ticket{
		ticket("TKT-0001", "Server down", "Production outage"),
	}, agents)

	require.Len(t, records, 1)
	record := records[0]
	assert.True(t, record.Fallback)
	assert.Equal(t, "agent_001", record.AssignedAgentID)
	assert.Equal(t,
		"Assigned to Ava Chen (agent_001) despite unavailability - no available agents found.",
		record.Rationale)
	assert.Zero(t, record.SkillMatchScore)
	assert.Zero(t, record.FinalScore)
}

func TestAllocateEmptyAgentList(t *testing.T) {
	alloc := newAllocator()

	records := alloc.Allocate([]domain.Ticket{
		ticket("TKT-0001", "Server down", "Production outage"),
	}, nil)

	require.Len(t, records, 1)
	record := records[0]
	assert.True(t, record.Fallback)
	assert.Equal(t, "agent_001", record.AssignedAgentID)
	assert.Equal(t, "Emergency assignment - no available agents found.", record.Rationale)
}

func TestAllocateEmptyTicketList(t *testing.T) {
	alloc := newAllocator()

	records := alloc.Allocate(nil, []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Availability: domain.AvailabilityAvailable},
	})

	assert.Empty(t, records)
}

func TestAllocateDeterministic(t *testing.T) {
	alloc := newAllocator()

	agents := []domain.Agent{
		{ID: "agent_001", Name: "Ava Chen", Skills: map[string]int{"Networking": 8}, Availability: domain.AvailabilityAvailable, ExperienceLevel: 6, CurrentLoad: 1},
		{ID: "agent_002", Name: "Noah Reed", Skills: map[string]int{"Database_SQL": 9}, Availability: domain.AvailabilityAvailable, ExperienceLevel: 10, CurrentLoad: 3},
		{ID: "agent_003", Name: "Mia Patel", Skills: map[string]int{"Network_Security": 7}, Availability: domain.AvailabilityBusy, ExperienceLevel: 4},
	}
	tickets := []domain.Ticket{
		ticket("TKT-0001", "Database backup failed", "Nightly backup corruption on the sql server"),
		ticket("TKT-0002", "VPN connection problems", "Remote staff report vpn drops"),
		ticket("TKT-0003", "Security breach", "Possible malware threat detected"),
		ticket("TKT-0004", "Feature request", "A nice to have enhancement"),
	}

	first := alloc.Allocate(tickets, agents)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, alloc.Allocate(tickets, agents))
	}
}
