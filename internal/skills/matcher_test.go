package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSecurityIncident(t *testing.T) {
	matcher := NewMatcher()

	score := matcher.Score(
		"Security breach detected malware and an active threat on the perimeter",
		map[string]int{"Network_Security": 9},
	)

	// Three keyword hits saturate the skill, so the contribution is 9/10.
	assert.InDelta(t, 0.9, score, 1e-9)
	assert.Greater(t, score, 0.5)
}

func TestScorePartialSaturation(t *testing.T) {
	matcher := NewMatcher()

	// "vpn" and "connection" are two of the three hits needed to saturate.
	score := matcher.Score("VPN connection problems", map[string]int{"Networking": 10})

	assert.InDelta(t, 2.0/3.0, score, 1e-9)
}

func TestScoreAveragesOverMatchedSkillsOnly(t *testing.T) {
	matcher := NewMatcher()

	score := matcher.Score("VPN access problems", map[string]int{
		"Networking":           10,
		"Hardware_Diagnostics": 10,
	})

	// Hardware_Diagnostics has no hits and must not dilute the average.
	assert.InDelta(t, 1.0/3.0, score, 1e-9)
}

func TestScoreUnknownSkillsSkipped(t *testing.T) {
	matcher := NewMatcher()

	assert.Zero(t, matcher.Score("vpn tunnel issue", map[string]int{"Basket_Weaving": 10}))

	mixed := matcher.Score("vpn tunnel down", map[string]int{
		"Basket_Weaving": 10,
		"Networking":     10,
	})
	assert.InDelta(t, 1.0/3.0, mixed, 1e-9)
}

func TestScoreNoMatchesIsZero(t *testing.T) {
	matcher := NewMatcher()

	assert.Zero(t, matcher.Score("coffee machine broken again", map[string]int{"Database_SQL": 8}))
	assert.Zero(t, matcher.Score("", map[string]int{"Database_SQL": 8}))
	assert.Zero(t, matcher.Score("database query slow", nil))
}

func TestScoreSaturatesAtOne(t *testing.T) {
	matcher := NewMatcher()

	score := matcher.Score(
		"linux server ssh bash cron failure on ubuntu",
		map[string]int{"Linux_Administration": 10},
	)

	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreStaysInRange(t *testing.T) {
	matcher := NewMatcher()

	score := matcher.Score(
		"vpn network firewall dns linux server ssh database sql backup security malware threat",
		map[string]int{
			"Networking":           10,
			"Linux_Administration": 10,
			"Database_SQL":         10,
			"Network_Security":     10,
		},
	)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
