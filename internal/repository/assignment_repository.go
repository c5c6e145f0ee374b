package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// AssignmentRepository persists allocation runs and their ordered records.
type AssignmentRepository interface {
	CreateRun(ctx context.Context, run *domain.AssignmentRun) error
	GetRun(ctx context.Context, id string) (*domain.AssignmentRun, error)
	ListRuns(ctx context.Context, limit, offset int) ([]domain.AssignmentRun, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

// CreateRun stores the run header and every record in one transaction so a
// partially stored run can never be observed.
func (r *assignmentRepository) CreateRun(ctx context.Context, run *domain.AssignmentRun) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const runQuery = `
        INSERT INTO assignment_runs (id, status, triggered_by, agent_count, ticket_count)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`

	if err := tx.QueryRow(ctx, runQuery,
		run.ID,
		run.Status,
		run.TriggeredBy,
		run.AgentCount,
		run.TicketCount,
	).Scan(&run.CreatedAt); err != nil {
		return err
	}

	const recordQuery = `
        INSERT INTO assignment_records
            (id, run_id, position, ticket_id, assigned_agent_id, rationale,
             priority_level, priority_score, skill_match_score, workload_factor, final_score, fallback_flag)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	for i, record := range run.Records {
		if _, err := tx.Exec(ctx, recordQuery,
			uuid.NewString(),
			run.ID,
			i,
			record.TicketID,
			record.AssignedAgentID,
			record.Rationale,
			record.PriorityLevel.String(),
			record.PriorityScore,
			record.SkillMatchScore,
			record.WorkloadFactor,
			record.FinalScore,
			record.Fallback,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *assignmentRepository) GetRun(ctx context.Context, id string) (*domain.AssignmentRun, error) {
	const runQuery = `
        SELECT id, status, triggered_by, agent_count, ticket_count, created_at
        FROM assignment_runs WHERE id=$1`

	var run domain.AssignmentRun
	if err := r.pool.QueryRow(ctx, runQuery, id).Scan(
		&run.ID,
		&run.Status,
		&run.TriggeredBy,
		&run.AgentCount,
		&run.TicketCount,
		&run.CreatedAt,
	); err != nil {
		return nil, err
	}

	const recordQuery = `
        SELECT ticket_id, assigned_agent_id, rationale, priority_level,
               priority_score, skill_match_score, workload_factor, final_score, fallback_flag
        FROM assignment_records WHERE run_id=$1 ORDER BY position ASC`

	rows, err := r.pool.Query(ctx, recordQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record domain.AssignmentRecord
		var level string
		if err := rows.Scan(
			&record.TicketID,
			&record.AssignedAgentID,
			&record.Rationale,
			&level,
			&record.PriorityScore,
			&record.SkillMatchScore,
			&record.WorkloadFactor,
			&record.FinalScore,
			&record.Fallback,
		); err != nil {
			return nil, err
		}
		record.PriorityLevel = domain.ParsePriorityLevel(level)
		run.Records = append(run.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *assignmentRepository) ListRuns(ctx context.Context, limit, offset int) ([]domain.AssignmentRun, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT id, status, triggered_by, agent_count, ticket_count, created_at
        FROM assignment_runs ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AssignmentRun
	for rows.Next() {
		var run domain.AssignmentRun
		if err := rows.Scan(
			&run.ID,
			&run.Status,
			&run.TriggeredBy,
			&run.AgentCount,
			&run.TicketCount,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}
