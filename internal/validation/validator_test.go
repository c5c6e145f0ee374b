package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	v := NewValidator()
	v.now = func() time.Time { return fixedNow }
	return v
}

func validAgent(id string) domain.Agent {
	return domain.Agent{
		ID:   id,
		Name: "Ava Chen",
		Skills: map[string]int{
			"Networking":           8,
			"Linux_Administration": 6,
			"Database_SQL":         5,
		},
		Availability:    domain.AvailabilityAvailable,
		ExperienceLevel: 6,
		CurrentLoad:     2,
	}
}

func validTicket(id string) domain.Ticket {
	return domain.Ticket{
		ID:                id,
		Title:             "VPN connection problems",
		Description:       "Remote staff report repeated vpn disconnects during calls",
		CreationTimestamp: fixedNow.Add(-48 * time.Hour).Unix(),
	}
}

func TestValidateDatasetCleanPass(t *testing.T) {
	v := newTestValidator()

	report := v.ValidateDataset(
		[]domain.Agent{validAgent("agent_001"), validAgent("agent_002")},
		[]domain.Ticket{validTicket("TKT-0001"), validTicket("TKT-0002")},
	)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.InDelta(t, 1.0, report.QualityScore, 1e-9)
}

func TestValidateDatasetEmptyCollections(t *testing.T) {
	v := newTestValidator()

	report := v.ValidateDataset(nil, nil)

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, "agents", report.Errors[0].Field)
	assert.Equal(t, "tickets", report.Errors[1].Field)
}

func TestValidateAgentIDFormat(t *testing.T) {
	v := newTestValidator()

	agent := validAgent("agent-1")
	report := v.ValidateDataset([]domain.Agent{agent}, []domain.Ticket{validTicket("TKT-0001")})

	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Errors)
	assert.Equal(t, "agents[0].agent_id", report.Errors[0].Field)
	assert.Contains(t, report.Errors[0].Message, "agent_XXX")
}

func TestValidateDuplicateIDs(t *testing.T) {
	v := newTestValidator()

	report := v.ValidateDataset(
		[]domain.Agent{validAgent("agent_001"), validAgent("agent_001")},
		[]domain.Ticket{validTicket("TKT-0001"), validTicket("TKT-0001")},
	)

	assert.False(t, report.Valid)
	fields := make([]string, 0, len(report.Errors))
	for _, issue := range report.Errors {
		fields = append(fields, issue.Field)
	}
	assert.Contains(t, fields, "agents[1].agent_id")
	assert.Contains(t, fields, "tickets[1].ticket_id")
}

func TestValidateSkillLevelBounds(t *testing.T) {
	v := newTestValidator()

	agent := validAgent("agent_001")
	agent.Skills = map[string]int{"Networking": 11, "Database_SQL": 0, "Cloud_AWS": 5}
	report := v.ValidateDataset([]domain.Agent{agent}, []domain.Ticket{validTicket("TKT-0001")})

	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 2)
	for _, issue := range report.Errors {
		assert.True(t, strings.HasPrefix(issue.Field, "agents[0].skills"), issue.Field)
	}
}

func TestValidateAvailabilityValues(t *testing.T) {
	v := newTestValidator()

	agent := validAgent("agent_001")
	agent.Availability = "Vacation"
	report := v.ValidateDataset([]domain.Agent{agent}, []domain.Ticket{validTicket("TKT-0001")})

	assert.False(t, report.Valid)

	agent.Availability = domain.AvailabilityOnLeave
	report = v.ValidateDataset([]domain.Agent{agent}, []domain.Ticket{validTicket("TKT-0001")})
	assert.True(t, report.Valid)
}

func TestValidateWarningsDoNotBlock(t *testing.T) {
	v := newTestValidator()

	agent := validAgent("agent_001")
	agent.Skills = map[string]int{"Networking": 8}

	tk := validTicket("TKT-0001")
	tk.Description = "vpn broken"

	report := v.ValidateDataset([]domain.Agent{agent}, []domain.Ticket{tk})

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Warnings, 2)
	assert.Less(t, report.QualityScore, 1.0)
}

func TestValidatePlaceholderText(t *testing.T) {
	v := newTestValidator()

	tk := validTicket("TKT-0001")
	tk.Description = "Lorem ipsum dolor sit amet consectetur adipiscing elit"

	report := v.ValidateDataset([]domain.Agent{validAgent("agent_001")}, []domain.Ticket{tk})

	assert.True(t, report.Valid)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0].Message, "placeholder")
}

func TestValidateTimestampWindows(t *testing.T) {
	v := newTestValidator()

	future := validTicket("TKT-0001")
	future.CreationTimestamp = fixedNow.Add(72 * time.Hour).Unix()

	stale := validTicket("TKT-0002")
	stale.CreationTimestamp = fixedNow.AddDate(-2, 0, 0).Unix()

	report := v.ValidateDataset(
		[]domain.Agent{validAgent("agent_001")},
		[]domain.Ticket{future, stale},
	)

	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 2)
	assert.Contains(t, report.Warnings[0].Message, "future")
	assert.Contains(t, report.Warnings[1].Message, "more than a year old")
}

func TestQualityScoreFloor(t *testing.T) {
	assert.InDelta(t, 1.0, qualityScore(0, 0), 1e-9)
	assert.InDelta(t, 0.78, qualityScore(2, 1), 1e-9)
	assert.InDelta(t, 0.0, qualityScore(20, 0), 1e-9)
}
