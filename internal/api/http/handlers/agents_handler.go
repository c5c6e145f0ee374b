package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-assignment/internal/api/dto"
	"github.com/spec-kit/ticket-assignment/internal/auth"
	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	"github.com/spec-kit/ticket-assignment/internal/service"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// AgentsHandler manages agent roster endpoints.
type AgentsHandler struct {
	service *service.AgentService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(agentService *service.AgentService) *AgentsHandler {
	return &AgentsHandler{service: agentService}
}

// Create POST /agents.
func (h *AgentsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	agent, err := h.service.CreateAgent(c.Context(), principal.Operator, agentInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": agentResponse(agent)})
}

// Update PUT /agents/:id.
func (h *AgentsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := agentInput(req)
	input.ID = c.Params("id")

	agent, err := h.service.UpdateAgent(c.Context(), principal.Operator, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentResponse(agent)})
}

// List GET /agents.
func (h *AgentsHandler) List(c *fiber.Ctx) error {
	filter := repository.AgentFilter{
		Limit:  parseIntQuery(c, "limit", 0),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if availability := c.Query("availability"); availability != "" {
		value := domain.Availability(availability)
		filter.Availability = &value
	}

	agents, err := h.service.ListAgents(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AgentResponse, 0, len(agents))
	for i := range agents {
		items = append(items, agentResponse(&agents[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /agents/:id.
func (h *AgentsHandler) Get(c *fiber.Ctx) error {
	agent, err := h.service.GetAgent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agentResponse(agent)})
}

// Delete DELETE /agents/:id.
func (h *AgentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator required")
	}
	if err := h.service.DeleteAgent(c.Context(), principal.Operator, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func agentInput(req dto.AgentRequest) service.AgentInput {
	return service.AgentInput{
		ID:              req.AgentID,
		Name:            req.Name,
		Skills:          req.Skills,
		Availability:    domain.Availability(req.AvailabilityStatus),
		ExperienceLevel: req.ExperienceLevel,
		CurrentLoad:     req.CurrentLoad,
	}
}

func agentResponse(agent *domain.Agent) dto.AgentResponse {
	return dto.AgentResponse{
		AgentID:            agent.ID,
		Name:               agent.Name,
		Skills:             agent.Skills,
		AvailabilityStatus: string(agent.Availability),
		ExperienceLevel:    agent.ExperienceLevel,
		CurrentLoad:        agent.CurrentLoad,
		CreatedAt:          agent.CreatedAt,
		UpdatedAt:          agent.UpdatedAt,
	}
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
