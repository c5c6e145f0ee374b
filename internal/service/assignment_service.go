package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/allocator"
	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/events"
	"github.com/spec-kit/ticket-assignment/internal/observability"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	"github.com/spec-kit/ticket-assignment/internal/validation"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// AssignmentService orchestrates allocation runs: it resolves the dataset,
// validates it, invokes the allocator, persists the run, and publishes
// events.
type AssignmentService struct {
	agents     repository.AgentRepository
	tickets    repository.TicketRepository
	runs       repository.AssignmentRepository
	validator  *validation.Validator
	allocator  *allocator.Allocator
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	AgentRepo  repository.AgentRepository
	TicketRepo repository.TicketRepository
	RunRepo    repository.AssignmentRepository
	Validator  *validation.Validator
	Allocator  *allocator.Allocator
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		agents:     deps.AgentRepo,
		tickets:    deps.TicketRepo,
		runs:       deps.RunRepo,
		validator:  deps.Validator,
		allocator:  deps.Allocator,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// RunInput optionally carries an inline dataset. When both slices are empty
// the persisted agents and tickets are used instead.
type RunInput struct {
	Agents  []domain.Agent
	Tickets []domain.Ticket
}

// RunAssignment validates the dataset and executes one allocation run.
// Validation errors abort the run; a completed run with fallback records is
// stored as DEGRADED rather than failed.
func (s *AssignmentService) RunAssignment(ctx context.Context, actor *domain.Operator, input RunInput) (*domain.AssignmentRun, *validation.Report, error) {
	agents, tickets, err := s.resolveDataset(ctx, input)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	report := s.validator.ValidateDataset(agents, tickets)
	if !report.Valid {
		return nil, &report, apperrors.NewValidationError("dataset failed validation", map[string]any{
			"error_count":   len(report.Errors),
			"warning_count": len(report.Warnings),
		})
	}

	runID := uuid.NewString()
	s.publishRunStarted(ctx, actor, runID, len(agents), len(tickets))

	records := s.allocator.Allocate(tickets, agents)

	fallbacks := 0
	for _, record := range records {
		if record.Fallback {
			fallbacks++
		}
	}

	status := domain.RunStatusCompleted
	if fallbacks > 0 {
		status = domain.RunStatusDegraded
	}

	run := &domain.AssignmentRun{
		ID:          runID,
		Status:      status,
		AgentCount:  len(agents),
		TicketCount: len(tickets),
		Records:     records,
	}
	if actor != nil {
		run.TriggeredBy = &actor.ID
	}

	if s.runs != nil {
		if err := s.runs.CreateRun(ctx, run); err != nil {
			return nil, &report, apperrors.MapError(err)
		}
	} else {
		run.CreatedAt = time.Now()
	}

	s.metrics.RecordRun(fallbacks)
	s.logger.Info("assignment run completed",
		zap.String("run_id", run.ID),
		zap.String("status", string(run.Status)),
		zap.Int("tickets", len(tickets)),
		zap.Int("agents", len(agents)),
		zap.Int("fallbacks", fallbacks),
	)

	s.publishRunCompleted(ctx, actor, run, fallbacks)
	s.publishTicketAssignments(ctx, actor, run)

	return run, &report, nil
}

// GetRun loads one stored run with its ordered records.
func (s *AssignmentService) GetRun(ctx context.Context, id string) (*domain.AssignmentRun, error) {
	run, err := s.runs.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment run", map[string]any{"run_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return run, nil
}

// ListRuns returns recent run headers.
func (s *AssignmentService) ListRuns(ctx context.Context, limit, offset int) ([]domain.AssignmentRun, error) {
	runs, err := s.runs.ListRuns(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return runs, nil
}

func (s *AssignmentService) resolveDataset(ctx context.Context, input RunInput) ([]domain.Agent, []domain.Ticket, error) {
	agents := input.Agents
	tickets := input.Tickets

	if len(agents) == 0 && s.agents != nil {
		loaded, err := s.agents.List(ctx, repository.AgentFilter{Limit: 1000})
		if err != nil {
			return nil, nil, err
		}
		agents = loaded
	}
	if len(tickets) == 0 && s.tickets != nil {
		loaded, err := s.tickets.List(ctx, repository.TicketFilter{Limit: 5000})
		if err != nil {
			return nil, nil, err
		}
		tickets = loaded
	}
	return agents, tickets, nil
}

func (s *AssignmentService) publishRunStarted(ctx context.Context, actor *domain.Operator, runID string, agentCount, ticketCount int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRunStarted,
		RunID:     runID,
		Actor:     actorID(actor),
		Timestamp: time.Now(),
		Payload: events.RunStartedPayload{
			AgentCount:  agentCount,
			TicketCount: ticketCount,
		},
	})
}

func (s *AssignmentService) publishRunCompleted(ctx context.Context, actor *domain.Operator, run *domain.AssignmentRun, fallbacks int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRunCompleted,
		RunID:     run.ID,
		Actor:     actorID(actor),
		Timestamp: time.Now(),
		Payload: events.RunCompletedPayload{
			Status:        run.Status,
			RecordCount:   len(run.Records),
			FallbackCount: fallbacks,
		},
	})
}

func (s *AssignmentService) publishTicketAssignments(ctx context.Context, actor *domain.Operator, run *domain.AssignmentRun) {
	if s.dispatcher == nil {
		return
	}
	for _, record := range run.Records {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketAssigned,
			RunID:     run.ID,
			Actor:     actorID(actor),
			Timestamp: time.Now(),
			Payload: events.TicketAssignedPayload{
				TicketID:        record.TicketID,
				AssignedAgentID: record.AssignedAgentID,
				PriorityLevel:   record.PriorityLevel,
				Fallback:        record.Fallback,
			},
		})
	}
}

func actorID(actor *domain.Operator) *string {
	if actor == nil {
		return nil
	}
	return &actor.ID
}
