package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smart-agence/agence-api/internal/domain"
)

// DayCount is a per-day ticket creation count.
type DayCount struct {
	Day   time.Time
	Count int64
}

// StatsRepository runs the aggregation queries behind the dashboard overview.
type StatsRepository interface {
	StatusCounts(ctx context.Context) (map[domain.TicketStatus]int64, error)
	CategoryCounts(ctx context.Context) (map[string]int64, error)
	AgentTicketCounts(ctx context.Context) (map[int64]int64, error)
	TicketsPerDay(ctx context.Context) ([]DayCount, error)
	AvgResolutionSeconds(ctx context.Context) (*float64, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

// StatusCounts groups tickets by their current status, i.e. the status of the
// latest event per ticket. Tickets without any event count as pending.
func (r *statsRepository) StatusCounts(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	const query = `
        SELECT latest.statut, COUNT(*) FROM (
            SELECT DISTINCT ON (ticket_id) statut
            FROM ticket_events
            ORDER BY ticket_id, heure DESC, event_id DESC
        ) latest
        GROUP BY latest.statut`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const orphanQuery = `
        SELECT COUNT(*) FROM tickets t
        WHERE NOT EXISTS (SELECT 1 FROM ticket_events e WHERE e.ticket_id = t.ticket_id)`
	var orphans int64
	if err := r.pool.QueryRow(ctx, orphanQuery).Scan(&orphans); err != nil {
		return nil, err
	}
	if orphans > 0 {
		counts[domain.StatusPending] += orphans
	}
	return counts, nil
}

func (r *statsRepository) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	const query = `SELECT categorie_service, COUNT(*) FROM tickets GROUP BY categorie_service`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var categorie string
		var count int64
		if err := rows.Scan(&categorie, &count); err != nil {
			return nil, err
		}
		counts[categorie] = count
	}
	return counts, rows.Err()
}

func (r *statsRepository) AgentTicketCounts(ctx context.Context) (map[int64]int64, error) {
	const query = `SELECT agent_id, COUNT(*) FROM tickets GROUP BY agent_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var agentID, count int64
		if err := rows.Scan(&agentID, &count); err != nil {
			return nil, err
		}
		counts[agentID] = count
	}
	return counts, rows.Err()
}

func (r *statsRepository) TicketsPerDay(ctx context.Context) ([]DayCount, error) {
	const query = `
        SELECT date_creation::date AS day, COUNT(*)
        FROM tickets GROUP BY day ORDER BY day`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		result = append(result, dc)
	}
	return result, rows.Err()
}

// AvgResolutionSeconds measures the mean delay between a ticket's first
// pending event and its first done event. Nil when no ticket is resolved.
func (r *statsRepository) AvgResolutionSeconds(ctx context.Context) (*float64, error) {
	const query = `
        SELECT AVG(EXTRACT(EPOCH FROM d.first_done - p.first_pending))
        FROM (SELECT ticket_id, MIN(heure) AS first_pending
              FROM ticket_events WHERE statut='pending' GROUP BY ticket_id) p
        JOIN (SELECT ticket_id, MIN(heure) AS first_done
              FROM ticket_events WHERE statut='done' GROUP BY ticket_id) d
        USING (ticket_id)`
	var avg *float64
	if err := r.pool.QueryRow(ctx, query).Scan(&avg); err != nil {
		return nil, err
	}
	return avg, nil
}
