package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

func TestAnalyzeCriticalOutage(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("Server crashed", "The database is down")

	assert.Equal(t, domain.PriorityCritical, result.Level)
	assert.InDelta(t, 19.0, result.Score, 1e-9)
	assert.Equal(t, []string{"down", "crashed"}, result.MatchedKeywords)
	assert.Equal(t,
		"Assigned CRITICAL priority based on urgency indicators: 'down', 'crashed' (Priority score: 19.0).",
		result.Rationale)
}

func TestAnalyzeAppliesHighestImpactMultiplier(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("Email outage", "The entire company is affected")

	assert.Equal(t, domain.PriorityCritical, result.Level)
	assert.InDelta(t, 20.0, result.Score, 1e-9)
	assert.Equal(t,
		"Assigned CRITICAL priority based on urgency indicators: 'outage' with 2.0x impact multiplier for scope/business impact (Priority score: 20.0).",
		result.Rationale)
}

func TestAnalyzeLowPriorityRequest(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("Feature request", "A nice to have enhancement for the future")

	assert.Equal(t, domain.PriorityLow, result.Level)
	assert.InDelta(t, 3.0, result.Score, 1e-9)
	assert.Equal(t,
		[]string{"request", "enhancement", "feature request", "nice to have", "future"},
		result.MatchedKeywords)
}

func TestAnalyzeDefaultsToMedium(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("", "")

	assert.Equal(t, domain.PriorityMedium, result.Level)
	assert.Zero(t, result.Score)
	assert.Empty(t, result.MatchedKeywords)
	assert.Equal(t, "Assigned MEDIUM priority (Priority score: 0.0).", result.Rationale)

	noSignal := analyzer.Analyze("Toner cartridge", "Replace cartridge in room 4")
	assert.Equal(t, domain.PriorityMedium, noSignal.Level)
}

func TestAnalyzeWholeWordMatching(t *testing.T) {
	analyzer := NewAnalyzer()

	// "downtown" must not trigger the "down" keyword.
	result := analyzer.Analyze("Office move", "Relocating to the downtown office")

	assert.Equal(t, domain.PriorityMedium, result.Level)
	assert.NotContains(t, result.MatchedKeywords, "down")
}

func TestAnalyzeTieResolvesToMoreUrgentLevel(t *testing.T) {
	analyzer := NewAnalyzer()

	// "cannot access" scores 7.0 CRITICAL and "deadline" scores 7.0 HIGH;
	// the 1.8x "deadline" multiplier scales both sides, so the tie holds.
	result := analyzer.Analyze("Cannot access the report", "The deadline submission is locked")

	assert.Equal(t, domain.PriorityCritical, result.Level)
	assert.InDelta(t, 12.6, result.Score, 1e-9)
}

func TestAnalyzeRationaleCapsKeywordList(t *testing.T) {
	analyzer := NewAnalyzer()

	result := analyzer.Analyze("down outage crashed", "offline severe catastrophic")

	require.Len(t, result.MatchedKeywords, 6)
	assert.Contains(t, result.Rationale, "and 1 more")
	assert.NotContains(t, result.Rationale, "'catastrophic'")
}

func TestAnalyzeDeterministic(t *testing.T) {
	analyzer := NewAnalyzer()

	title := "Production down emergency"
	description := "Entire company affected, urgent data loss on the database"

	first := analyzer.Analyze(title, description)
	for i := 0; i < 25; i++ {
		assert.Equal(t, first, analyzer.Analyze(title, description))
	}
}
