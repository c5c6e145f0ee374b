package priority

import (
	"regexp"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// keywordRule binds one urgency keyword to its weight and the compiled
// whole-word pattern used to detect it.
type keywordRule struct {
	keyword string
	weight  float64
	pattern *regexp.Regexp
}

// multiplierRule binds one scope/impact phrase to its multiplier.
type multiplierRule struct {
	phrase     string
	multiplier float64
	pattern    *regexp.Regexp
}

type weightedKeyword struct {
	keyword string
	weight  float64
}

func compileKeywords(entries []weightedKeyword) []keywordRule {
	rules := make([]keywordRule, 0, len(entries))
	for _, e := range entries {
		rules = append(rules, keywordRule{
			keyword: e.keyword,
			weight:  e.weight,
			pattern: wordPattern(e.keyword),
		})
	}
	return rules
}

func compileMultipliers(entries []weightedKeyword) []multiplierRule {
	rules := make([]multiplierRule, 0, len(entries))
	for _, e := range entries {
		rules = append(rules, multiplierRule{
			phrase:     e.keyword,
			multiplier: e.weight,
			pattern:    wordPattern(e.keyword),
		})
	}
	return rules
}

func wordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// urgencyKeywords holds the per-level keyword tables in fixed enumeration
// order. Slices keep matched-keyword order deterministic across runs.
var urgencyKeywords = map[domain.PriorityLevel][]keywordRule{
	domain.PriorityCritical: compileKeywords([]weightedKeyword{
		// System/service outages
		{"down", 10.0},
		{"outage", 10.0},
		{"crashed", 9.0},
		{"unreachable", 8.0},
		{"offline", 8.0},
		{"not responding", 8.0},
		{"completely broken", 9.0},
		{"total failure", 10.0},
		{"system failure", 9.0},
		{"service unavailable", 9.0},
		{"cannot access", 7.0},
		{"all users affected", 8.0},
		{"widespread", 7.0},
		{"business critical", 9.0},
		{"production down", 10.0},
		{"emergency", 10.0},
		{"urgent", 8.0},
		{"immediately", 8.0},
		{"critical", 9.0},
		{"severe", 8.0},
		{"catastrophic", 10.0},
		// Security incidents
		{"security breach", 10.0},
		{"hacked", 10.0},
		{"malware", 9.0},
		{"virus", 8.0},
		{"data breach", 10.0},
		{"unauthorized access", 9.0},
		{"compromised", 9.0},
		// Infrastructure failures
		{"server down", 9.0},
		{"network down", 9.0},
		{"database down", 10.0},
		{"backup failed", 8.0},
		{"corruption", 8.0},
		{"data loss", 9.0},
	}),
	domain.PriorityHigh: compileKeywords([]weightedKeyword{
		{"broken", 6.0},
		{"failing", 6.0},
		{"error", 5.0},
		{"problems", 4.0},
		{"issues", 4.0},
		{"not working", 6.0},
		{"malfunctioning", 6.0},
		{"stuck", 5.0},
		{"frozen", 6.0},
		{"slow", 4.0},
		{"performance", 4.0},
		{"timeout", 5.0},
		{"intermittent", 5.0},
		{"frequent", 5.0},
		{"multiple users", 5.0},
		{"department affected", 6.0},
		{"productivity impact", 6.0},
		{"blocking", 6.0},
		{"prevents work", 6.0},
		{"deadline", 7.0},
		{"presentation", 6.0},
		{"meeting", 5.0},
		{"client", 6.0},
		{"customer", 6.0},
		{"important", 5.0},
		{"asap", 6.0},
		{"soon", 4.0},
		{"today", 5.0},
		{"tomorrow", 6.0},
		// Authentication/access issues
		{"cannot login", 6.0},
		{"access denied", 6.0},
		{"locked out", 6.0},
		{"authentication", 5.0},
		{"permissions", 4.0},
		// Hardware issues
		{"hardware failure", 7.0},
		{"hardware", 4.0},
		{"device", 3.0},
		{"laptop", 3.0},
		{"printer", 3.0},
	}),
	domain.PriorityMedium: compileKeywords([]weightedKeyword{
		{"help", 2.0},
		{"assistance", 2.0},
		{"support", 2.0},
		{"question", 2.0},
		{"how to", 2.0},
		{"configure", 2.0},
		{"setup", 2.0},
		{"install", 2.0},
		{"update", 2.0},
		{"upgrade", 2.0},
		{"request", 2.0},
		{"need", 2.0},
		{"would like", 2.0},
		{"minor", 1.0},
		{"small", 1.0},
		{"quick", 2.0},
		{"whenever convenient", 1.0},
		{"next week", 1.0},
		{"training", 2.0},
		{"documentation", 2.0},
		{"clarification", 2.0},
		{"guidance", 2.0},
		// Routine maintenance
		{"maintenance", 2.0},
		{"routine", 1.0},
		{"scheduled", 1.0},
		{"planned", 1.0},
	}),
	domain.PriorityLow: compileKeywords([]weightedKeyword{
		{"enhancement", 1.0},
		{"feature request", 1.0},
		{"improvement", 1.0},
		{"suggestion", 1.0},
		{"optimization", 1.0},
		{"nice to have", 0.5},
		{"when possible", 0.5},
		{"future", 0.5},
		{"eventually", 0.5},
		{"cosmetic", 0.5},
		{"aesthetic", 0.5},
		{"convenience", 1.0},
		{"preference", 0.5},
		{"general", 1.0},
		{"information", 1.0},
		{"inquiry", 1.0},
		{"feedback", 1.0},
	}),
}

// impactMultipliers scale level scores when scope, business-impact, or
// time-sensitivity language is present. The highest matching multiplier
// applies; they never stack.
var impactMultipliers = compileMultipliers([]weightedKeyword{
	// Scope
	{"all users", 2.0},
	{"entire", 2.0},
	{"whole", 2.0},
	{"company", 2.0},
	{"organization", 2.0},
	{"everyone", 2.0},
	{"multiple departments", 1.8},
	{"department", 1.5},
	{"team", 1.3},
	{"group", 1.3},
	{"several users", 1.4},
	{"many users", 1.4},
	// Business impact
	{"revenue", 2.5},
	{"business", 2.0},
	{"production", 2.5},
	{"customer", 2.0},
	{"client", 2.0},
	{"public", 2.0},
	{"external", 1.8},
	{"reputation", 2.0},
	{"brand", 2.0},
	{"compliance", 2.2},
	{"audit", 2.0},
	{"legal", 2.2},
	{"regulatory", 2.2},
	// Time sensitivity
	{"now", 1.8},
	{"immediately", 2.0},
	{"asap", 1.8},
	{"urgent", 1.8},
	{"today", 1.5},
	{"this morning", 1.6},
	{"right now", 2.0},
	{"before", 1.5},
	{"deadline", 1.8},
	{"meeting", 1.4},
	{"presentation", 1.6},
	{"demo", 1.5},
	// Recurrence
	{"again", 1.3},
	{"repeatedly", 1.5},
	{"frequently", 1.4},
	{"constantly", 1.6},
	{"always", 1.4},
	{"continuous", 1.5},
	{"ongoing", 1.4},
	{"persistent", 1.4},
})
