package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/repository"
)

// fakeStore backs the in-memory repository fakes used across service tests.
// Agent deletion cascades tickets and events the way the schema's foreign
// keys do.
type fakeStore struct {
	nextAgentID  int64
	nextTicketID int64
	nextEventID  int64
	agents       map[int64]domain.Agent
	tickets      map[int64]domain.Ticket
	events       []domain.TicketEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		agents:  make(map[int64]domain.Agent),
		tickets: make(map[int64]domain.Ticket),
	}
}

type fakeAgentRepo struct{ s *fakeStore }

func (f *fakeAgentRepo) Create(ctx context.Context, agent *domain.Agent) error {
	f.s.nextAgentID++
	agent.ID = f.s.nextAgentID
	agent.DateEnregistrement = time.Now()
	f.s.agents[agent.ID] = *agent
	return nil
}

func (f *fakeAgentRepo) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	agent, ok := f.s.agents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &agent, nil
}

func (f *fakeAgentRepo) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	for _, agent := range f.s.agents {
		if agent.Email == email {
			a := agent
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgentRepo) List(ctx context.Context, offset, limit int) ([]domain.Agent, error) {
	if limit <= 0 {
		limit = 100
	}
	var result []domain.Agent
	for id := int64(1); id <= f.s.nextAgentID; id++ {
		if agent, ok := f.s.agents[id]; ok {
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

func (f *fakeAgentRepo) Update(ctx context.Context, agent *domain.Agent) error {
	existing, ok := f.s.agents[agent.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	agent.DateEnregistrement = existing.DateEnregistrement
	f.s.agents[agent.ID] = *agent
	return nil
}

func (f *fakeAgentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.s.agents[id]; !ok {
		return false, nil
	}
	delete(f.s.agents, id)
	deletedTickets := map[int64]bool{}
	for ticketID, ticket := range f.s.tickets {
		if ticket.AgentID == id {
			deletedTickets[ticketID] = true
			delete(f.s.tickets, ticketID)
		}
	}
	kept := f.s.events[:0]
	for _, event := range f.s.events {
		if event.AgentID == id || deletedTickets[event.TicketID] {
			continue
		}
		kept = append(kept, event)
	}
	f.s.events = kept
	return true, nil
}

type fakeTicketRepo struct{ s *fakeStore }

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	f.s.nextTicketID++
	ticket.ID = f.s.nextTicketID
	ticket.DateCreation = time.Now()
	f.s.tickets[ticket.ID] = *ticket
	f.s.appendEvent(&domain.TicketEvent{
		AgentID:  ticket.AgentID,
		TicketID: ticket.ID,
		Statut:   domain.StatusPending,
	})
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var result []domain.Ticket
	for id := int64(1); id <= f.s.nextTicketID; id++ {
		ticket, ok := f.s.tickets[id]
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

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	existing, ok := f.s.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.DateCreation = existing.DateCreation
	f.s.tickets[ticket.ID] = *ticket
	return nil
}

type fakeEventRepo struct{ s *fakeStore }

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.TicketEvent) error {
	f.s.appendEvent(event)
	return nil
}

func (f *fakeEventRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketEvent, error) {
	var result []domain.TicketEvent
	for _, event := range f.s.events {
		if event.TicketID == ticketID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeEventRepo) LatestByTicket(ctx context.Context, ticketID int64) (*domain.TicketEvent, error) {
	events, _ := f.ListByTicket(ctx, ticketID)
	latest := domain.LatestEvent(events)
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	return latest, nil
}

func (s *fakeStore) appendEvent(event *domain.TicketEvent) {
	s.nextEventID++
	event.ID = s.nextEventID
	now := time.Now()
	event.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	event.Heure = now
	s.events = append(s.events, *event)
}
