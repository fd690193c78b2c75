package handlers_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/repository"
)

// memStore is an in-memory stand-in for the three tables, with agent deletion
// cascading tickets and events like the schema's foreign keys.
type memStore struct {
	nextAgentID  int64
	nextTicketID int64
	nextEventID  int64
	agents       map[int64]domain.Agent
	tickets      map[int64]domain.Ticket
	events       []domain.TicketEvent
}

func newMemStore() *memStore {
	return &memStore{
		agents:  make(map[int64]domain.Agent),
		tickets: make(map[int64]domain.Ticket),
	}
}

func (s *memStore) appendEvent(event *domain.TicketEvent) {
	s.nextEventID++
	event.ID = s.nextEventID
	now := time.Now()
	event.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	event.Heure = now
	s.events = append(s.events, *event)
}

type memAgentRepo struct{ s *memStore }

func (r *memAgentRepo) Create(ctx context.Context, agent *domain.Agent) error {
	r.s.nextAgentID++
	agent.ID = r.s.nextAgentID
	agent.DateEnregistrement = time.Now()
	r.s.agents[agent.ID] = *agent
	return nil
}

func (r *memAgentRepo) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	agent, ok := r.s.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &agent, nil
}

func (r *memAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	for _, agent := range r.s.agents {
		if agent.Email == email {
			a := agent
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAgentRepo) List(ctx context.Context, offset, limit int) ([]domain.Agent, error) {
	if limit <= 0 {
		limit = 100
	}
	var result []domain.Agent
	for id := int64(1); id <= r.s.nextAgentID; id++ {
		if agent, ok := r.s.agents[id]; ok {
			result = append(result, agent)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memAgentRepo) Update(ctx context.Context, agent *domain.Agent) error {
	existing, ok := r.s.agents[agent.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	agent.DateEnregistrement = existing.DateEnregistrement
	r.s.agents[agent.ID] = *agent
	return nil
}

func (r *memAgentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.s.agents[id]; !ok {
		return false, nil
	}
	delete(r.s.agents, id)
	deletedTickets := map[int64]bool{}
	for ticketID, ticket := range r.s.tickets {
		if ticket.AgentID == id {
			deletedTickets[ticketID] = true
			delete(r.s.tickets, ticketID)
		}
	}
	kept := r.s.events[:0]
	for _, event := range r.s.events {
		if event.AgentID == id || deletedTickets[event.TicketID] {
			continue
		}
		kept = append(kept, event)
	}
	r.s.events = kept
	return true, nil
}

type memTicketRepo struct{ s *memStore }

func (r *memTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.s.nextTicketID++
	ticket.ID = r.s.nextTicketID
	ticket.DateCreation = time.Now()
	r.s.tickets[ticket.ID] = *ticket
	r.s.appendEvent(&domain.TicketEvent{
		AgentID:  ticket.AgentID,
		TicketID: ticket.ID,
		Statut:   domain.StatusPending,
	})
	return nil
}

func (r *memTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := r.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *memTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var result []domain.Ticket
	for id := int64(1); id <= r.s.nextTicketID; id++ {
		ticket, ok := r.s.tickets[id]
		if !ok {
			continue
		}
		if filter.AgentID != nil && ticket.AgentID != *filter.AgentID {
			continue
		}
		if filter.Categorie != nil && ticket.CategorieService != *filter.Categorie {
			continue
		}
		result = append(result, ticket)
	}
	if filter.Offset >= len(result) {
		return nil, nil
	}
	result = result[filter.Offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	existing, ok := r.s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.DateCreation = existing.DateCreation
	r.s.tickets[ticket.ID] = *ticket
	return nil
}

type memStatsRepo struct{ s *memStore }

func (r *memStatsRepo) StatusCounts(ctx context.Context) (map[domain.TicketStatus]int64, error) {
	counts := make(map[domain.TicketStatus]int64)
	for id := range r.s.tickets {
		var history []domain.TicketEvent
		for _, event := range r.s.events {
			if event.TicketID == id {
				history = append(history, event)
			}
		}
		counts[domain.CurrentStatus(history)]++
	}
	return counts, nil
}

func (r *memStatsRepo) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, ticket := range r.s.tickets {
		counts[ticket.CategorieService]++
	}
	return counts, nil
}

func (r *memStatsRepo) AgentTicketCounts(ctx context.Context) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, ticket := range r.s.tickets {
		counts[ticket.AgentID]++
	}
	return counts, nil
}

func (r *memStatsRepo) TicketsPerDay(ctx context.Context) ([]repository.DayCount, error) {
	perDay := make(map[time.Time]int64)
	for _, ticket := range r.s.tickets {
		day := ticket.DateCreation.Truncate(24 * time.Hour)
		perDay[day]++
	}
	var result []repository.DayCount
	for day, count := range perDay {
		result = append(result, repository.DayCount{Day: day, Count: count})
	}
	return result, nil
}

func (r *memStatsRepo) AvgResolutionSeconds(ctx context.Context) (*float64, error) {
	return nil, nil
}

type memEventRepo struct{ s *memStore }

func (r *memEventRepo) Create(ctx context.Context, event *domain.TicketEvent) error {
	r.s.appendEvent(event)
	return nil
}

func (r *memEventRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketEvent, error) {
	var result []domain.TicketEvent
	for _, event := range r.s.events {
		if event.TicketID == ticketID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (r *memEventRepo) LatestByTicket(ctx context.Context, ticketID int64) (*domain.TicketEvent, error) {
	events, _ := r.ListByTicket(ctx, ticketID)
	latest := domain.LatestEvent(events)
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return latest, nil
}
