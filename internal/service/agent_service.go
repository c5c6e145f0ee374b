package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// AgentService manages the support agent roster.
type AgentService struct {
	agents repository.AgentRepository
}

// NewAgentService constructs the service.
func NewAgentService(agents repository.AgentRepository) *AgentService {
	return &AgentService{agents: agents}
}

// AgentInput carries create/update fields for an agent.
type AgentInput struct {
	ID              string
	Name            string
	Skills          map[string]int
	Availability    domain.Availability
	ExperienceLevel float64
	CurrentLoad     int
}

// CreateAgent registers a new agent (ADMIN only).
func (s *AgentService) CreateAgent(ctx context.Context, actor *domain.Operator, input AgentInput) (*domain.Agent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateAgentInput(input); err != nil {
		return nil, err
	}
	if _, err := s.agents.GetByID(ctx, input.ID); err == nil {
		return nil, apperrors.NewConflict("agent already exists", map[string]any{"agent_id": input.ID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	agent := &domain.Agent{
		ID:              input.ID,
		Name:            input.Name,
		Skills:          input.Skills,
		Availability:    input.Availability,
		ExperienceLevel: input.ExperienceLevel,
		CurrentLoad:     input.CurrentLoad,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, apperrors.MapError(err)
	}
	return agent, nil
}

// UpdateAgent replaces an agent's mutable fields (ADMIN only).
func (s *AgentService) UpdateAgent(ctx context.Context, actor *domain.Operator, input AgentInput) (*domain.Agent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateAgentInput(input); err != nil {
		return nil, err
	}

	agent, err := s.agents.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": input.ID})
		}
		return nil, apperrors.MapError(err)
	}

	agent.Name = input.Name
	agent.Skills = input.Skills
	agent.Availability = input.Availability
	agent.ExperienceLevel = input.ExperienceLevel
	agent.CurrentLoad = input.CurrentLoad
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, apperrors.MapError(err)
	}
	return agent, nil
}

// GetAgent loads one agent.
func (s *AgentService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return agent, nil
}

// ListAgents returns the roster, optionally filtered by availability.
func (s *AgentService) ListAgents(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	agents, err := s.agents.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return agents, nil
}

// DeleteAgent removes an agent from the roster (ADMIN only).
func (s *AgentService) DeleteAgent(ctx context.Context, actor *domain.Operator, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.agents.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("agent", map[string]any{"agent_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func validateAgentInput(input AgentInput) error {
	if input.ID == "" || input.Name == "" {
		return apperrors.NewValidationError("agent_id and name required", nil)
	}
	if len(input.Skills) == 0 {
		return apperrors.NewValidationError("at least one skill required", nil)
	}
	for skill, level := range input.Skills {
		if level < 1 || level > 10 {
			return apperrors.NewValidationError("skill level out of range", map[string]any{
				"skill": skill, "level": level,
			})
		}
	}
	if !validAvailability(input.Availability) {
		return apperrors.NewValidationError("invalid availability status", map[string]any{
			"availability": input.Availability,
		})
	}
	if input.ExperienceLevel < 0 || input.CurrentLoad < 0 {
		return apperrors.NewValidationError("experience_level and current_load must be non-negative", nil)
	}
	return nil
}

func validAvailability(value domain.Availability) bool {
	for _, candidate := range domain.Availabilities {
		if value == candidate {
			return true
		}
	}
	return false
}

func requireAdmin(actor *domain.Operator) error {
	if actor == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	if actor.Role != domain.OperatorRoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
