// Package priority scores free-text ticket content against weighted urgency
// keyword tables and produces an ordinal priority level with an auditable
// rationale. Classification never fails: text without any urgency signal
// degrades to a MEDIUM result with score zero.
package priority

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

const maxRationaleKeywords = 5

// Analyzer classifies tickets against the fixed keyword configuration.
// The zero-cost constructor exists so callers depend on a value rather than
// package state; the tables themselves are process-wide and read-only.
type Analyzer struct{}

// NewAnalyzer returns a classifier backed by the built-in keyword tables.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores the concatenated title and description and returns the
// winning priority level, its final score, every matched keyword, and a
// human-readable rationale.
func (a *Analyzer) Analyze(title, description string) domain.PriorityResult {
	fullText := strings.ToLower(title + " " + description)

	scores := make(map[domain.PriorityLevel]float64, len(domain.PriorityLevels))
	var matched []string

	// Levels are walked in enumeration order so the matched-keyword list and
	// the max-score tie-break stay deterministic.
	for _, level := range domain.PriorityLevels {
		for _, rule := range urgencyKeywords[level] {
			if rule.pattern.MatchString(fullText) {
				scores[level] += rule.weight
				matched = append(matched, rule.keyword)
			}
		}
	}

	multiplier := 1.0
	for _, rule := range impactMultipliers {
		if rule.multiplier > multiplier && rule.pattern.MatchString(fullText) {
			multiplier = rule.multiplier
		}
	}

	winner, finalScore := winningLevel(scores, multiplier)

	return domain.PriorityResult{
		Level:           winner,
		Score:           finalScore,
		MatchedKeywords: matched,
		Rationale:       buildRationale(winner, finalScore, matched, multiplier),
	}
}

// winningLevel picks the level with the strictly highest multiplied score.
// Equal maxima resolve to the first level in enumeration order; an all-zero
// scoreboard defaults to MEDIUM.
func winningLevel(scores map[domain.PriorityLevel]float64, multiplier float64) (domain.PriorityLevel, float64) {
	maxScore := 0.0
	for _, level := range domain.PriorityLevels {
		if s := scores[level] * multiplier; s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return domain.PriorityMedium, 0
	}
	for _, level := range domain.PriorityLevels {
		if scores[level]*multiplier == maxScore {
			return level, maxScore
		}
	}
	return domain.PriorityMedium, 0
}

func buildRationale(level domain.PriorityLevel, score float64, keywords []string, multiplier float64) string {
	parts := []string{fmt.Sprintf("Assigned %s priority", level)}

	if len(keywords) > 0 {
		shown := keywords
		if len(shown) > maxRationaleKeywords {
			shown = shown[:maxRationaleKeywords]
		}
		quoted := make([]string, 0, len(shown))
		for _, kw := range shown {
			quoted = append(quoted, "'"+kw+"'")
		}
		keywordText := strings.Join(quoted, ", ")
		if rest := len(keywords) - maxRationaleKeywords; rest > 0 {
			keywordText += fmt.Sprintf(" and %d more", rest)
		}
		parts = append(parts, "based on urgency indicators: "+keywordText)
	}

	if multiplier > 1.0 {
		parts = append(parts, fmt.Sprintf("with %.1fx impact multiplier for scope/business impact", multiplier))
	}

	parts = append(parts, fmt.Sprintf("(Priority score: %.1f)", score))
	return strings.Join(parts, " ") + "."
}
