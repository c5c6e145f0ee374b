package allocator

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// assignmentRationale explains why an agent won a ticket, tiered by skill
// quality, experience, workload at evaluation time, and ticket urgency.
func assignmentRationale(agent *domain.Agent, skillScore float64, currentLoad int, level domain.PriorityLevel) string {
	parts := []string{fmt.Sprintf("Assigned to %s (%s)", agent.Name, agent.ID)}

	switch {
	case skillScore > 0.7:
		parts = append(parts, "based on excellent skill match")
	case skillScore > 0.4:
		parts = append(parts, "based on good skill match")
	case skillScore > 0.1:
		parts = append(parts, "based on partial skill match")
	default:
		parts = append(parts, "due to availability")
	}

	if agent.ExperienceLevel >= 10 {
		parts = append(parts, fmt.Sprintf("and high experience level (%g years)", agent.ExperienceLevel))
	} else if agent.ExperienceLevel >= 5 {
		parts = append(parts, fmt.Sprintf("and good experience (%g years)", agent.ExperienceLevel))
	}

	switch {
	case currentLoad <= 2:
		parts = append(parts, "with low current workload")
	case currentLoad <= 4:
		parts = append(parts, "with moderate workload")
	case currentLoad > 6:
		parts = append(parts, "despite high workload (best available)")
	}

	if level == domain.PriorityCritical || level == domain.PriorityHigh {
		parts = append(parts, fmt.Sprintf("for this %s priority ticket", level))
	}

	return strings.Join(parts, " ") + "."
}
