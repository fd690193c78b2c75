package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-agence/agence-api/internal/domain"
)

// TicketFilter captures listing parameters for tickets.
type TicketFilter struct {
	AgentID   *int64
	Categorie *string
	Offset    int
	Limit     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	// Create inserts the ticket together with its initial pending event in a
	// single transaction, so no ticket can exist without an event.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertTicket = `
        INSERT INTO tickets (agent_id, categorie_service, description)
        VALUES ($1,$2,$3)
        RETURNING ticket_id, date_creation`
	if err := tx.QueryRow(ctx, insertTicket,
		ticket.AgentID,
		ticket.CategorieService,
		ticket.Description,
	).Scan(&ticket.ID, &ticket.DateCreation); err != nil {
		return err
	}

	const insertEvent = `
        INSERT INTO ticket_events (agent_id, ticket_id, statut)
        VALUES ($1,$2,$3)`
	if _, err := tx.Exec(ctx, insertEvent, ticket.AgentID, ticket.ID, domain.StatusPending); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	const query = `
        SELECT ticket_id, agent_id, categorie_service, description, date_creation
        FROM tickets WHERE ticket_id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.AgentID,
		&ticket.CategorieService,
		&ticket.Description,
		&ticket.DateCreation,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ticket_id, agent_id, categorie_service, description, date_creation FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		clauses = append(clauses, fmt.Sprintf("agent_id=$%d", len(args)))
	}
	if filter.Categorie != nil {
		args = append(args, *filter.Categorie)
		clauses = append(clauses, fmt.Sprintf("categorie_service=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY ticket_id LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET agent_id=$1, categorie_service=$2, description=$3
        WHERE ticket_id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.AgentID,
		ticket.CategorieService,
		ticket.Description,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.AgentID,
			&ticket.CategorieService,
			&ticket.Description,
			&ticket.DateCreation,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
