package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-agence/agence-api/internal/domain"
)

// TicketEventRepository appends and reads status events. The log is
// append-only: no update or delete statement exists for events, rows only
// disappear through cascading agent/ticket deletion.
type TicketEventRepository interface {
	Create(ctx context.Context, event *domain.TicketEvent) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketEvent, error)
	LatestByTicket(ctx context.Context, ticketID int64) (*domain.TicketEvent, error)
}

type ticketEventRepository struct {
	pool *pgxpool.Pool
}

// NewTicketEventRepository instantiates repository.
func NewTicketEventRepository(pool *pgxpool.Pool) TicketEventRepository {
	return &ticketEventRepository{pool: pool}
}

func (r *ticketEventRepository) Create(ctx context.Context, event *domain.TicketEvent) error {
	const query = `
        INSERT INTO ticket_events (agent_id, ticket_id, statut)
        VALUES ($1,$2,$3)
        RETURNING event_id, date, heure`
	return r.pool.QueryRow(ctx, query,
		event.AgentID,
		event.TicketID,
		event.Statut,
	).Scan(&event.ID, &event.Date, &event.Heure)
}

func (r *ticketEventRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketEvent, error) {
	// insertion order; callers sort when they need "latest"
	const query = `
        SELECT event_id, agent_id, ticket_id, statut, date, heure
        FROM ticket_events WHERE ticket_id=$1 ORDER BY event_id`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketEvent
	for rows.Next() {
		var event domain.TicketEvent
		if err := rows.Scan(
			&event.ID,
			&event.AgentID,
			&event.TicketID,
			&event.Statut,
			&event.Date,
			&event.Heure,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func (r *ticketEventRepository) LatestByTicket(ctx context.Context, ticketID int64) (*domain.TicketEvent, error) {
	// ties on heure break by event_id, so the newest row wins
	const query = `
        SELECT event_id, agent_id, ticket_id, statut, date, heure
        FROM ticket_events WHERE ticket_id=$1
        ORDER BY heure DESC, event_id DESC LIMIT 1`
	var event domain.TicketEvent
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&event.ID,
		&event.AgentID,
		&event.TicketID,
		&event.Statut,
		&event.Date,
		&event.Heure,
	); err != nil {
		return nil, err
	}
	return &event, nil
}
