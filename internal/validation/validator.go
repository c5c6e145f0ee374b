// Package validation checks assignment datasets for structural problems and
// business-rule violations before a run starts. Errors block allocation;
// warnings are advisory and ride along in the report.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// Severity levels for validation issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue describes a single validation finding.
type Issue struct {
	Severity   string `json:"severity"`
	Field      string `json:"field"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Report aggregates all findings for one dataset.
type Report struct {
	Valid        bool    `json:"valid"`
	Errors       []Issue `json:"errors"`
	Warnings     []Issue `json:"warnings"`
	QualityScore float64 `json:"quality_score"`
}

var (
	agentIDPattern   = regexp.MustCompile(`^agent_\d{3}$`)
	ticketIDPattern  = regexp.MustCompile(`^TKT-\d{4}$`)
	agentNamePattern = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)

	placeholderMarkers = []string{"lorem ipsum", "todo", "tbd", "xxx", "placeholder", "test test"}
)

// agentRules mirrors domain.Agent with validator tags for the structural pass.
type agentRules struct {
	ID              string         `validate:"required"`
	Name            string         `validate:"required"`
	Skills          map[string]int `validate:"required,min=1,dive,gte=1,lte=10"`
	Availability    string         `validate:"required,oneof='Available' 'Busy' 'Offline' 'On Leave'"`
	ExperienceLevel float64        `validate:"gte=0"`
	CurrentLoad     int            `validate:"gte=0"`
}

// ticketRules mirrors domain.Ticket for the structural pass.
type ticketRules struct {
	ID                string `validate:"required"`
	Title             string `validate:"required"`
	Description       string `validate:"required"`
	CreationTimestamp int64  `validate:"gte=0"`
}

// Validator runs structural and business-rule checks over datasets.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator constructs a validator with the standard rule set.
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
}

// ValidateDataset checks agents and tickets and returns the combined report.
func (v *Validator) ValidateDataset(agents []domain.Agent, tickets []domain.Ticket) Report {
	report := Report{Errors: []Issue{}, Warnings: []Issue{}}

	if len(agents) == 0 {
		report.addError("agents", "dataset must contain at least one agent", "")
	}
	if len(tickets) == 0 {
		report.addError("tickets", "dataset must contain at least one ticket", "")
	}

	v.validateAgents(agents, &report)
	v.validateTickets(tickets, &report)

	report.Valid = len(report.Errors) == 0
	report.QualityScore = qualityScore(len(report.Errors), len(report.Warnings))
	return report
}

func (v *Validator) validateAgents(agents []domain.Agent, report *Report) {
	seen := make(map[string]bool, len(agents))

	for i, agent := range agents {
		prefix := fmt.Sprintf("agents[%d]", i)

		rules := agentRules{
			ID:              agent.ID,
			Name:            agent.Name,
			Skills:          agent.Skills,
			Availability:    string(agent.Availability),
			ExperienceLevel: agent.ExperienceLevel,
			CurrentLoad:     agent.CurrentLoad,
		}
		v.applyStructRules(rules, prefix, report)

		if agent.ID != "" && !agentIDPattern.MatchString(agent.ID) {
			report.addError(prefix+".agent_id",
				"agent id must follow format 'agent_XXX' with a 3-digit number",
				"use identifiers like agent_001")
		}
		if seen[agent.ID] {
			report.addError(prefix+".agent_id", "agent id must be unique across all agents", "")
		}
		seen[agent.ID] = true

		if agent.Name != "" && !agentNamePattern.MatchString(agent.Name) {
			report.addError(prefix+".name",
				"agent name must be 2-50 characters, letters and spaces only", "")
		}
		if len(agent.Skills) > 0 && len(agent.Skills) < 3 {
			report.addWarning(prefix+".skills",
				"agent should have at least 3 skills for effective assignment",
				"add more skills to broaden assignment options")
		}
	}
}

func (v *Validator) validateTickets(tickets []domain.Ticket, report *Report) {
	seen := make(map[string]bool, len(tickets))

	for i, ticket := range tickets {
		prefix := fmt.Sprintf("tickets[%d]", i)

		rules := ticketRules{
			ID:                ticket.ID,
			Title:             ticket.Title,
			Description:       ticket.Description,
			CreationTimestamp: ticket.CreationTimestamp,
		}
		v.applyStructRules(rules, prefix, report)

		if ticket.ID != "" && !ticketIDPattern.MatchString(ticket.ID) {
			report.addError(prefix+".ticket_id",
				"ticket id must follow format 'TKT-XXXX' with a 4-digit number",
				"use identifiers like TKT-0001")
		}
		if seen[ticket.ID] {
			report.addError(prefix+".ticket_id", "ticket id must be unique across all tickets", "")
		}
		seen[ticket.ID] = true

		v.checkPlaceholderText(ticket, prefix, report)
		v.checkDescriptionDetail(ticket, prefix, report)
		v.checkTimestamp(ticket, prefix, report)
	}
}

// applyStructRules runs validator/v10 tags and folds its findings into the
// report with dataset-relative field paths.
func (v *Validator) applyStructRules(rules any, prefix string, report *Report) {
	err := v.validate.Struct(rules)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		report.addError(prefix, err.Error(), "")
		return
	}
	for _, fe := range verrs {
		field := prefix + "." + strings.ToLower(fe.Field())
		report.addError(field, constraintMessage(fe), "")
	}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", strings.ToLower(fe.Field()), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", strings.ToLower(fe.Field()), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s failed constraint %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}

func (v *Validator) checkPlaceholderText(ticket domain.Ticket, prefix string, report *Report) {
	combined := strings.ToLower(ticket.Title + " " + ticket.Description)
	for _, marker := range placeholderMarkers {
		if strings.Contains(combined, marker) {
			report.addWarning(prefix+".description",
				fmt.Sprintf("ticket text contains placeholder content (%q)", marker),
				"replace placeholder text with the actual issue details")
			return
		}
	}
}

func (v *Validator) checkDescriptionDetail(ticket domain.Ticket, prefix string, report *Report) {
	words := strings.Fields(ticket.Description)
	if ticket.Description != "" && (len(ticket.Description) < 20 || len(words) < 5) {
		report.addWarning(prefix+".description",
			"description may lack sufficient detail for accurate classification",
			"describe the symptoms, scope, and urgency of the issue")
	}
}

func (v *Validator) checkTimestamp(ticket domain.Ticket, prefix string, report *Report) {
	if ticket.CreationTimestamp <= 0 {
		return
	}
	created := time.Unix(ticket.CreationTimestamp, 0)
	now := v.now()
	if created.After(now.Add(24 * time.Hour)) {
		report.addWarning(prefix+".creation_timestamp",
			"creation timestamp is in the future", "")
	}
	if created.Before(now.AddDate(-1, 0, 0)) {
		report.addWarning(prefix+".creation_timestamp",
			"ticket is more than a year old", "")
	}
}

func (r *Report) addError(field, message, suggestion string) {
	r.Errors = append(r.Errors, Issue{Severity: SeverityError, Field: field, Message: message, Suggestion: suggestion})
}

func (r *Report) addWarning(field, message, suggestion string) {
	r.Warnings = append(r.Warnings, Issue{Severity: SeverityWarning, Field: field, Message: message, Suggestion: suggestion})
}

// qualityScore condenses findings into a [0,1] dataset quality measure.
func qualityScore(errors, warnings int) float64 {
	score := 100.0 - 10*float64(errors) - 2*float64(warnings)
	if score < 0 {
		score = 0
	}
	return score / 100
}
