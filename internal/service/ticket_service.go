package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/priority"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

// TicketService manages the ticket backlog and exposes classification
// previews without running a full allocation.
type TicketService struct {
	tickets  repository.TicketRepository
	analyzer *priority.Analyzer
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, analyzer *priority.Analyzer) *TicketService {
	return &TicketService{tickets: tickets, analyzer: analyzer}
}

// TicketInput carries create/update fields for a ticket.
type TicketInput struct {
	ID                string
	Title             string
	Description       string
	CreationTimestamp int64
}

// CreateTicket adds a ticket to the backlog (ADMIN or DISPATCHER).
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.Operator, input TicketInput) (*domain.Ticket, error) {
	if err := requireDispatcher(actor); err != nil {
		return nil, err
	}
	if err := validateTicketInput(input); err != nil {
		return nil, err
	}
	if _, err := s.tickets.GetByID(ctx, input.ID); err == nil {
		return nil, apperrors.NewConflict("ticket already exists", map[string]any{"ticket_id": input.ID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		ID:                input.ID,
		Title:             input.Title,
		Description:       input.Description,
		CreationTimestamp: input.CreationTimestamp,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// GetTicket loads one ticket.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns the backlog.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// DeleteTicket removes a ticket (ADMIN or DISPATCHER).
func (s *TicketService) DeleteTicket(ctx context.Context, actor *domain.Operator, id string) error {
	if err := requireDispatcher(actor); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Classify returns a priority preview for arbitrary ticket text. It cannot
// fail: empty text classifies to the MEDIUM default.
func (s *TicketService) Classify(title, description string) domain.PriorityResult {
	return s.analyzer.Analyze(title, description)
}

func validateTicketInput(input TicketInput) error {
	if input.ID == "" {
		return apperrors.NewValidationError("ticket_id required", nil)
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return apperrors.NewValidationError("title and description required", nil)
	}
	return nil
}

func requireDispatcher(actor *domain.Operator) error {
	if actor == nil {
		return apperrors.NewUnauthorized("operator required")
	}
	if actor.Role != domain.OperatorRoleAdmin && actor.Role != domain.OperatorRoleDispatcher {
		return apperrors.NewForbidden("dispatcher role required")
	}
	return nil
}
