// Package skills measures how well an agent's declared skills relate to a
// ticket's text, using a fixed skill-to-keyword configuration table.
package skills

import "strings"

// matchSaturation is the keyword-hit count at which a single skill's
// contribution stops growing.
const matchSaturation = 3.0

// Matcher scores agent skills against ticket text.
type Matcher struct{}

// NewMatcher returns a scorer backed by the built-in skill keyword table.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Score returns a relevance value in [0,1] for the given ticket text and
// agent skill map. Skills absent from the configuration table are skipped;
// a skill with keyword hits contributes (level/10)*min(hits/3, 1), and the
// result is the average contribution over skills that matched at all. When
// no declared skill matches, the score is exactly 0.
func (m *Matcher) Score(ticketText string, agentSkills map[string]int) float64 {
	fullText := strings.ToLower(ticketText)

	totalScore := 0.0
	matchedSkills := 0

	for skillName, skillLevel := range agentSkills {
		patterns, known := skillPatterns[skillName]
		if !known {
			continue
		}

		hits := 0
		for _, pattern := range patterns {
			if pattern.MatchString(fullText) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}

		saturation := float64(hits) / matchSaturation
		if saturation > 1.0 {
			saturation = 1.0
		}
		totalScore += float64(skillLevel) / 10 * saturation
		matchedSkills++
	}

	if matchedSkills == 0 {
		return 0.0
	}

	score := totalScore / float64(matchedSkills)
	if score > 1.0 {
		return 1.0
	}
	return score
}
