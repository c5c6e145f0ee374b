package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-assignment/internal/api/dto"
	"github.com/spec-kit/ticket-assignment/internal/auth"
	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/observability"
	"github.com/spec-kit/ticket-assignment/internal/service"
	"github.com/spec-kit/ticket-assignment/internal/validation"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// AssignmentsHandler exposes allocation runs and their reports.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
	reports     *service.ReportService
	metrics     *observability.Metrics
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignments *service.AssignmentService, reports *service.ReportService, metrics *observability.Metrics) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignments, reports: reports, metrics: metrics}
}

// Run POST /assignments/runs triggers one allocation run. The request may
// carry an inline dataset; otherwise the stored roster and backlog are used.
func (h *AssignmentsHandler) Run(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	run, report, err := h.assignments.RunAssignment(c.Context(), principal.Operator, runInput(req))
	if err != nil {
		return err
	}
	if h.reports != nil {
		h.reports.CacheRunReport(c.Context(), run)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": runResponse(run, report)})
}

// List GET /assignments/runs.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	runs, err := h.assignments.ListRuns(c.Context(), parseIntQuery(c, "limit", 50), parseIntQuery(c, "offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.RunSummaryResponse, 0, len(runs))
	for i := range runs {
		items = append(items, runSummaryResponse(&runs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /assignments/runs/:id.
func (h *AssignmentsHandler) Get(c *fiber.Ctx) error {
	run, err := h.assignments.GetRun(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": runResponse(run, nil)})
}

// Stats GET /assignments/stats reports process-lifetime run counters.
func (h *AssignmentsHandler) Stats(c *fiber.Ctx) error {
	runs, fallbacks := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"total_runs":     runs,
		"fallback_count": fallbacks,
	}})
}

// Report GET /assignments/runs/:id/report.
func (h *AssignmentsHandler) Report(c *fiber.Ctx) error {
	report, err := h.reports.GetRunReport(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

func runInput(req dto.RunRequest) service.RunInput {
	input := service.RunInput{}
	for _, agent := range req.Agents {
		input.Agents = append(input.Agents, domain.Agent{
			ID:              agent.AgentID,
			Name:            agent.Name,
			Skills:          agent.Skills,
			Availability:    domain.Availability(agent.AvailabilityStatus),
			ExperienceLevel: agent.ExperienceLevel,
			CurrentLoad:     agent.CurrentLoad,
		})
	}
	for _, ticket := range req.Tickets {
		input.Tickets = append(input.Tickets, domain.Ticket{
			ID:                ticket.TicketID,
			Title:             ticket.Title,
			Description:       ticket.Description,
			CreationTimestamp: ticket.CreationTimestamp,
		})
	}
	return input
}

func runResponse(run *domain.AssignmentRun, report *validation.Report) dto.RunResponse {
	resp := dto.RunResponse{
		RunID:       run.ID,
		Status:      string(run.Status),
		TriggeredBy: run.TriggeredBy,
		AgentCount:  run.AgentCount,
		TicketCount: run.TicketCount,
		CreatedAt:   run.CreatedAt,
	}
	for _, record := range run.Records {
		resp.Records = append(resp.Records, dto.RecordResponse{
			TicketID:        record.TicketID,
			AssignedAgentID: record.AssignedAgentID,
			Rationale:       record.Rationale,
			PriorityLevel:   record.PriorityLevel.String(),
			PriorityScore:   record.PriorityScore,
			SkillMatchScore: record.SkillMatchScore,
			WorkloadFactor:  record.WorkloadFactor,
			FinalScore:      record.FinalScore,
			Fallback:        record.Fallback,
		})
	}
	if report != nil {
		resp.Warnings = report.Warnings
	}
	return resp
}

func runSummaryResponse(run *domain.AssignmentRun) dto.RunSummaryResponse {
	return dto.RunSummaryResponse{
		RunID:       run.ID,
		Status:      string(run.Status),
		TriggeredBy: run.TriggeredBy,
		AgentCount:  run.AgentCount,
		TicketCount: run.TicketCount,
		CreatedAt:   run.CreatedAt,
	}
}
