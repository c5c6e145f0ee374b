// Package allocator matches a batch of tickets to support agents. Tickets
// are processed most-urgent first, and each one is committed greedily to the
// agent with the best composite of skill relevance, workload headroom,
// experience, and ticket urgency. Allocation is single-pass: a committed
// assignment is never revisited, and the workload it adds is visible to
// every later ticket in the same run.
package allocator

import (
	"sort"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/priority"
	"github.com/spec-kit/ticket-assignment/internal/skills"
)

const (
	// saturationLoad is the workload at which an agent's headroom reaches zero.
	saturationLoad = 8.0
	// experienceCap is the experience level at which the bonus saturates.
	experienceCap = 15.0

	weightSkill      = 0.4
	weightWorkload   = 0.25
	weightExperience = 0.2
	weightPriority   = 0.15

	// placeholderAgentID is referenced by emergency-fallback records when the
	// agent list itself is empty.
	placeholderAgentID = "agent_001"
)

// priorityMultipliers weight agent selection by ticket urgency.
var priorityMultipliers = map[domain.PriorityLevel]float64{
	domain.PriorityCritical: 1.0,
	domain.PriorityHigh:     0.8,
	domain.PriorityMedium:   0.6,
	domain.PriorityLow:      0.4,
}

// Allocator assigns tickets to agents using the priority classifier and
// skill matcher. One Allocate call owns all of its mutable state; separate
// runs never interfere.
type Allocator struct {
	analyzer *priority.Analyzer
	matcher  *skills.Matcher
}

// New builds an allocator from its two scoring collaborators.
func New(analyzer *priority.Analyzer, matcher *skills.Matcher) *Allocator {
	return &Allocator{analyzer: analyzer, matcher: matcher}
}

// classifiedTicket pairs a ticket with its priority result for ordering.
type classifiedTicket struct {
	ticket domain.Ticket
	result domain.PriorityResult
}

// Allocate assigns every ticket to an agent and returns one record per
// ticket, ordered most urgent first. It never fails: an empty candidate pool
// degrades to the documented fallback records instead of an error.
func (a *Allocator) Allocate(tickets []domain.Ticket, agents []domain.Agent) []domain.AssignmentRecord {
	workloads := make(map[string]int, len(agents))
	for _, agent := range agents {
		workloads[agent.ID] = agent.CurrentLoad
	}

	ordered := a.prioritize(tickets)

	records := make([]domain.AssignmentRecord, 0, len(ordered))
	for _, ct := range ordered {
		record := a.assignOne(ct, agents, workloads)
		records = append(records, record)
		workloads[record.AssignedAgentID]++
	}
	return records
}

// prioritize classifies every ticket and orders the batch by priority rank,
// then by score descending. The sort is stable so equal tickets keep their
// input order.
func (a *Allocator) prioritize(tickets []domain.Ticket) []classifiedTicket {
	ordered := make([]classifiedTicket, 0, len(tickets))
	for _, ticket := range tickets {
		ordered = append(ordered, classifiedTicket{
			ticket: ticket,
			result: a.analyzer.Analyze(ticket.Title, ticket.Description),
		})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].result, ordered[j].result
		if ri.Level.Rank() != rj.Level.Rank() {
			return ri.Level.Rank() < rj.Level.Rank()
		}
		return ri.Score > rj.Score
	})
	return ordered
}

// assignOne evaluates every available agent for the ticket and returns the
// record for the strictly best composite score. The first agent in list
// order wins ties.
func (a *Allocator) assignOne(ct classifiedTicket, agents []domain.Agent, workloads map[string]int) domain.AssignmentRecord {
	ticketText := ct.ticket.Title + " " + ct.ticket.Description

	var best *domain.Agent
	bestScore := -1.0
	bestSkill := 0.0
	bestWorkload := 0.0
	bestRationale := ""

	for i := range agents {
		agent := &agents[i]
		if agent.Availability != domain.AvailabilityAvailable {
			continue
		}

		skillScore := a.matcher.Score(ticketText, agent.Skills)

		currentLoad := workloads[agent.ID]
		workloadFactor := (saturationLoad - float64(currentLoad)) / saturationLoad
		if workloadFactor < 0 {
			workloadFactor = 0
		}

		experienceBonus := agent.ExperienceLevel / experienceCap
		if experienceBonus > 1.0 {
			experienceBonus = 1.0
		}

		finalScore := skillScore*weightSkill +
			workloadFactor*weightWorkload +
			experienceBonus*weightExperience +
			priorityMultipliers[ct.result.Level]*weightPriority

		if finalScore > bestScore {
			bestScore = finalScore
			best = agent
			bestSkill = skillScore
			bestWorkload = workloadFactor
			bestRationale = assignmentRationale(agent, skillScore, currentLoad, ct.result.Level)
		}
	}

	if best == nil {
		return a.fallbackRecord(ct, agents)
	}

	return domain.AssignmentRecord{
		TicketID:        ct.ticket.ID,
		AssignedAgentID: best.ID,
		Rationale:       bestRationale,
		PriorityLevel:   ct.result.Level,
		PriorityScore:   ct.result.Score,
		SkillMatchScore: bestSkill,
		WorkloadFactor:  bestWorkload,
		FinalScore:      bestScore,
	}
}

// fallbackRecord handles the degraded paths: no available agent means the
// first listed agent takes the ticket anyway, and an empty agent list yields
// a record against the synthetic placeholder agent. Both paths flag the
// degradation through the rationale rather than an error.
func (a *Allocator) fallbackRecord(ct classifiedTicket, agents []domain.Agent) domain.AssignmentRecord {
	agentID := placeholderAgentID
	rationale := "Emergency assignment - no available agents found."
	if len(agents) > 0 {
		agentID = agents[0].ID
		rationale = "Assigned to " + agents[0].Name + " (" + agents[0].ID + ") despite unavailability - no available agents found."
	}

	return domain.AssignmentRecord{
		TicketID:        ct.ticket.ID,
		AssignedAgentID: agentID,
		Rationale:       rationale,
		PriorityLevel:   ct.result.Level,
		PriorityScore:   ct.result.Score,
		Fallback:        true,
	}
}
