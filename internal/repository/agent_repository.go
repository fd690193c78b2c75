package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-agence/agence-api/internal/domain"
)

// AgentRepository encapsulates agent persistence.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context, offset, limit int) ([]domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (nom, prenoms, annee_naissance, categorie, email, telephone)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING agent_id, date_enregistrement`
	return r.pool.QueryRow(ctx, query,
		agent.Nom,
		agent.Prenoms,
		agent.AnneeNaissance,
		agent.Categorie,
		agent.Email,
		agent.Telephone,
	).Scan(&agent.ID, &agent.DateEnregistrement)
}

func (r *agentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	const query = `
        SELECT agent_id, nom, prenoms, annee_naissance, categorie, email, telephone, date_enregistrement
        FROM agents WHERE agent_id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	const query = `
        SELECT agent_id, nom, prenoms, annee_naissance, categorie, email, telephone, date_enregistrement
        FROM agents WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *agentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Agent, error) {
	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&agent.ID,
		&agent.Nom,
		&agent.Prenoms,
		&agent.AnneeNaissance,
		&agent.Categorie,
		&agent.Email,
		&agent.Telephone,
		&agent.DateEnregistrement,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context, offset, limit int) ([]domain.Agent, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT agent_id, nom, prenoms, annee_naissance, categorie, email, telephone, date_enregistrement
        FROM agents ORDER BY agent_id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent
	for rows.Next() {
		var agent domain.Agent
		if err := rows.Scan(
			&agent.ID,
			&agent.Nom,
			&agent.Prenoms,
			&agent.AnneeNaissance,
			&agent.Categorie,
			&agent.Email,
			&agent.Telephone,
			&agent.DateEnregistrement,
		); err != nil {
			return nil, err
		}
		result = append(result, agent)
	}
	return result, rows.Err()
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	const query = `
        UPDATE agents SET nom=$1, prenoms=$2, annee_naissance=$3, categorie=$4, email=$5, telephone=$6
        WHERE agent_id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		agent.Nom,
		agent.Prenoms,
		agent.AnneeNaissance,
		agent.Categorie,
		agent.Email,
		agent.Telephone,
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

func (r *agentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	// tickets and events follow via ON DELETE CASCADE
	cmd, err := r.pool.Exec(ctx, `DELETE FROM agents WHERE agent_id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
