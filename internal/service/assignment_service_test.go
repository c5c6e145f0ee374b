package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-assignment/internal/allocator"
	"github.com/spec-kit/ticket-assignment/internal/domain"
	"github.com/spec-kit/ticket-assignment/internal/events"
	"github.com/spec-kit/ticket-assignment/internal/observability"
	"github.com/spec-kit/ticket-assignment/internal/priority"
	"github.com/spec-kit/ticket-assignment/internal/repository"
	"github.com/spec-kit/ticket-assignment/internal/skills"
	"github.com/spec-kit/ticket-assignment/internal/validation"
	apperrors "github.com/spec-kit/ticket-assignment/pkg/util"
)

type fakeAgentRepo struct {
	agents []domain.Agent
}

func (f *fakeAgentRepo) Create(ctx context.Context, agent *domain.Agent) error { return nil }
func (f *fakeAgentRepo) Update(ctx context.Context, agent *domain.Agent) error { return nil }
func (f *fakeAgentRepo) Delete(ctx context.Context, id string) error           { return nil }
func (f *fakeAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	for i := range f.agents {
		if f.agents[i].ID == id {
			return &f.agents[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeAgentRepo) List(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	return f.agents, nil
}

type fakeTicketRepo struct {
	tickets []domain.Ticket
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error { return nil }
func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error { return nil }
func (f *fakeTicketRepo) Delete(ctx context.Context, id string) error             { return nil }
func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			return &f.tickets[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (f *fakeTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return f.tickets, nil
}

type fakeRunRepo struct {
	created []*domain.AssignmentRun
}

func (f *fakeRunRepo) CreateRun(ctx context.Context, run *domain.AssignmentRun) error {
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRunRepo) GetRun(ctx context.Context, id string) (*domain.AssignmentRun, error) {
	for _, run := range f.created {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRunRepo) ListRuns(ctx context.Context, limit, offset int) ([]domain.AssignmentRun, error) {
	runs := make([]domain.AssignmentRun, 0, len(f.created))
	for _, run := range f.created {
		runs = append(runs, *run)
	}
	return runs, nil
}

type eventCounter struct {
	started   int
	completed int
	assigned  int
}

func (e *eventCounter) subscribe(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventRunStarted, func(ctx context.Context, ev events.Event) error {
		e.started++
		return nil
	})
	dispatcher.Subscribe(events.EventRunCompleted, func(ctx context.Context, ev events.Event) error {
		e.completed++
		return nil
	})
	dispatcher.Subscribe(events.EventTicketAssigned, func(ctx context.Context, ev events.Event) error {
		e.assigned++
		return nil
	})
}

func testAgent(id string, availability domain.Availability) domain.Agent {
	return domain.Agent{
		ID:   id,
		Name: "Ava Chen",
		Skills: map[string]int{
			"Networking":           8,
			"Linux_Administration": 6,
			"Database_SQL":         5,
		},
		Availability:    availability,
		ExperienceLevel: 6,
		CurrentLoad:     1,
	}
}

func testTicket(id, title string) domain.Ticket {
	return domain.Ticket{
		ID:                id,
		Title:             title,
		Description:       "Remote staff report repeated vpn disconnects during calls",
		CreationTimestamp: 1717200000,
	}
}

func newTestService(agents *fakeAgentRepo, tickets *fakeTicketRepo, runs *fakeRunRepo, dispatcher events.Dispatcher) *AssignmentService {
	return NewAssignmentService(AssignmentDependencies{
		AgentRepo:  agents,
		TicketRepo: tickets,
		RunRepo:    runs,
		Validator:  validation.NewValidator(),
		Allocator:  allocator.New(priority.NewAnalyzer(), skills.NewMatcher()),
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
	})
}

func TestRunAssignmentCompletes(t *testing.T) {
	runs := &fakeRunRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	counter := &eventCounter{}
	counter.subscribe(dispatcher)

	svc := newTestService(&fakeAgentRepo{}, &fakeTicketRepo{}, runs, dispatcher)
	actor := &domain.Operator{ID: "op-1", Role: domain.OperatorRoleDispatcher}

	run, report, err := svc.RunAssignment(context.Background(), actor, RunInput{
		Agents: []domain.Agent{
			testAgent("agent_001", domain.AvailabilityAvailable),
			testAgent("agent_002", domain.AvailabilityAvailable),
		},
		Tickets: []domain.Ticket{
			testTicket("TKT-0001", "VPN connection problems"),
			testTicket("TKT-0002", "Database backup failed"),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, run)
	require.NotNil(t, report)

	assert.True(t, report.Valid)
	assert.Equal(t, domain.RunStatusCompleted, run.Status)
	assert.Len(t, run.Records, 2)
	assert.Equal(t, 2, run.AgentCount)
	assert.Equal(t, 2, run.TicketCount)
	require.NotNil(t, run.TriggeredBy)
	assert.Equal(t, "op-1", *run.TriggeredBy)

	require.Len(t, runs.created, 1)
	assert.Equal(t, run.ID, runs.created[0].ID)

	assert.Equal(t, 1, counter.started)
	assert.Equal(t, 1, counter.completed)
	assert.Equal(t, 2, counter.assigned)
}

func TestRunAssignmentDegradedOnFallback(t *testing.T) {
	runs := &fakeRunRepo{}
	svc := newTestService(&fakeAgentRepo{}, &fakeTicketRepo{}, runs, events.NewInMemoryDispatcher())

	run, report, err := svc.RunAssignment(context.Background(), nil, RunInput{
		Agents: []domain.Agent{
			testAgent("agent_001", domain.AvailabilityBusy),
		},
		Tickets: []domain.Ticket{
			testTicket("TKT-0001", "Server down"),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.Valid)

	assert.Equal(t, domain.RunStatusDegraded, run.Status)
	require.Len(t, run.Records, 1)
	assert.True(t, run.Records[0].Fallback)
	assert.Nil(t, run.TriggeredBy)
}

func TestRunAssignmentRejectsInvalidDataset(t *testing.T) {
	runs := &fakeRunRepo{}
	svc := newTestService(&fakeAgentRepo{}, &fakeTicketRepo{}, runs, events.NewInMemoryDispatcher())

	badAgent := testAgent("not-an-agent-id", domain.AvailabilityAvailable)

	run, report, err := svc.RunAssignment(context.Background(), nil, RunInput{
		Agents:  []domain.Agent{badAgent},
		Tickets: []domain.Ticket{testTicket("TKT-0001", "VPN connection problems")},
	})

	require.Error(t, err)
	assert.Nil(t, run)
	require.NotNil(t, report)
	assert.False(t, report.Valid)
	assert.Empty(t, runs.created)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestRunAssignmentLoadsStoredDataset(t *testing.T) {
	agents := &fakeAgentRepo{agents: []domain.Agent{
		testAgent("agent_001", domain.AvailabilityAvailable),
	}}
	tickets := &fakeTicketRepo{tickets: []domain.Ticket{
		testTicket("TKT-0001", "VPN connection problems"),
		testTicket("TKT-0002", "Database backup failed"),
		testTicket("TKT-0003", "Feature request"),
	}}
	runs := &fakeRunRepo{}
	svc := newTestService(agents, tickets, runs, events.NewInMemoryDispatcher())

	run, _, err := svc.RunAssignment(context.Background(), nil, RunInput{})

	require.NoError(t, err)
	assert.Len(t, run.Records, 3)
	assert.Equal(t, 1, run.AgentCount)
	assert.Equal(t, 3, run.TicketCount)
}

func TestGetRunNotFound(t *testing.T) {
	svc := newTestService(&fakeAgentRepo{}, &fakeTicketRepo{}, &fakeRunRepo{}, nil)

	_, err := svc.GetRun(context.Background(), "missing")

	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}
