package domain

// PriorityLevel is the ordinal urgency classification for tickets.
// Lower rank means more urgent; rank drives both sort order and tie-breaks.
type PriorityLevel int

const (
	PriorityCritical PriorityLevel = 1
	PriorityHigh     PriorityLevel = 2
	PriorityMedium   PriorityLevel = 3
	PriorityLow      PriorityLevel = 4
)

// PriorityLevels lists all levels in fixed enumeration order. Classification
// tie-breaks resolve to the first level in this slice with the maximum score.
var PriorityLevels = []PriorityLevel{
	PriorityCritical,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
}

// Rank returns the ordinal position used for sorting (CRITICAL first).
func (p PriorityLevel) Rank() int {
	return int(p)
}

func (p PriorityLevel) String() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "MEDIUM"
	}
}

// ParsePriorityLevel maps a stored level name back to its enum value.
// Unknown names map to MEDIUM, mirroring the classifier default.
func ParsePriorityLevel(name string) PriorityLevel {
	switch name {
	case "CRITICAL":
		return PriorityCritical
	case "HIGH":
		return PriorityHigh
	case "LOW":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// PriorityResult captures one classification outcome for a ticket.
// Instances are created per call and never mutated afterwards.
type PriorityResult struct {
	Level           PriorityLevel
	Score           float64
	MatchedKeywords []string
	Rationale       string
}
