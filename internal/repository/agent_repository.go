package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ticket-assignment/internal/domain"
)

// AgentRepository handles persistence for support agents.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	Update(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error)
	Delete(ctx context.Context, id string) error
}

// AgentFilter defines query params for agent listing.
type AgentFilter struct {
	Availability *domain.Availability
	Limit        int
	Offset       int
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	skills, err := json.Marshal(agent.Skills)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO agents (id, name, skills, availability, experience_level, current_load)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		agent.ID,
		agent.Name,
		skills,
		agent.Availability,
		agent.ExperienceLevel,
		agent.CurrentLoad,
	).Scan(&agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	skills, err := json.Marshal(agent.Skills)
	if err != nil {
		return err
	}

	const query = `
        UPDATE agents
        SET name=$1, skills=$2, availability=$3, experience_level=$4, current_load=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		agent.Name,
		skills,
		agent.Availability,
		agent.ExperienceLevel,
		agent.CurrentLoad,
		agent.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	const query = `
        SELECT id, name, skills, availability, experience_level, current_load, created_at, updated_at
        FROM agents WHERE id=$1`

	return scanAgent(r.pool.QueryRow(ctx, query, id))
}

func (r *agentRepository) List(ctx context.Context, filter AgentFilter) ([]domain.Agent, error) {
	query := `
        SELECT id, name, skills, availability, experience_level, current_load, created_at, updated_at
        FROM agents`
	args := []any{}
	clauses := []string{}

	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		clauses = append(clauses, fmt.Sprintf("availability=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	// Stable listing order keeps allocation runs reproducible across calls.
	query += " ORDER BY id ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *agent)
	}
	return result, rows.Err()
}

func (r *agentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var agent domain.Agent
	var skills []byte
	if err := row.Scan(
		&agent.ID,
		&agent.Name,
		&skills,
		&agent.Availability,
		&agent.ExperienceLevel,
		&agent.CurrentLoad,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(skills, &agent.Skills); err != nil {
		return nil, err
	}
	return &agent, nil
}
