package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/events"
	"github.com/smart-agence/agence-api/internal/persistence"
	"github.com/smart-agence/agence-api/internal/repository"
	apperrors "github.com/smart-agence/agence-api/pkg/util"
)

// TicketService coordinates ticket and status-event workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	ticketEvts repository.TicketEventRepository
	cache      *redis.Client
	statusTTL  time.Duration
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	EventRepo  repository.TicketEventRepository
	Cache      *redis.Client
	StatusTTL  time.Duration
	Dispatcher events.Dispatcher
}

// TicketInput describes ticket create/replace payloads.
type TicketInput struct {
	AgentID          int64
	CategorieService string
	Description      *string
}

// StatusInput describes a status-change request. The ticket id always comes
// from the URL path; AgentID records who made the change.
type StatusInput struct {
	AgentID int64
	Statut  domain.TicketStatus
}

// TicketListFilter narrows ticket listings.
type TicketListFilter struct {
	AgentID   *int64
	Categorie *string
	Offset    int
	Limit     int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		ticketEvts: deps.EventRepo,
		cache:      deps.Cache,
		statusTTL:  deps.StatusTTL,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket inserts a ticket together with its initial pending event; the
// repository runs both writes in one transaction.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		AgentID:          input.AgentID,
		CategorieService: input.CategorieService,
		Description:      input.Description,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		AgentID:  ticket.AgentID,
		TicketID: ticket.ID,
		Statut:   domain.StatusPending,
	})
	return ticket, nil
}

// GetTicket fetches one ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
	}
	return ticket, err
}

// ListTickets returns tickets matching the optional equality filters.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, repository.TicketFilter{
		AgentID:   filter.AgentID,
		Categorie: filter.Categorie,
		Offset:    filter.Offset,
		Limit:     filter.Limit,
	})
}

// UpdateTicket replaces the mutable fields of a ticket. No event is emitted;
// status only ever changes through PostStatus.
func (s *TicketService) UpdateTicket(ctx context.Context, id int64, input TicketInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		ID:               id,
		AgentID:          input.AgentID,
		CategorieService: input.CategorieService,
		Description:      input.Description,
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}
	return s.GetTicket(ctx, id)
}

// PostStatus appends a status event to an existing ticket. Any status may
// follow any other; done and canceled are not enforced as terminal.
func (s *TicketService) PostStatus(ctx context.Context, ticketID int64, input StatusInput) (*domain.TicketEvent, error) {
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return nil, err
	}

	event := &domain.TicketEvent{
		AgentID:  input.AgentID,
		TicketID: ticketID,
		Statut:   input.Statut,
	}
	if err := s.ticketEvts.Create(ctx, event); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		AgentID:  event.AgentID,
		TicketID: ticketID,
		Statut:   event.Statut,
	})
	return event, nil
}

// ListEvents returns the full event history of a ticket in insertion order.
func (s *TicketService) ListEvents(ctx context.Context, ticketID int64) ([]domain.TicketEvent, error) {
	return s.ticketEvts.ListByTicket(ctx, ticketID)
}

// CurrentStatus resolves a ticket's derived status: the latest event's status
// or pending when no event exists. Results are cached until the next status
// post invalidates them.
func (s *TicketService) CurrentStatus(ctx context.Context, ticketID int64) (domain.TicketStatus, error) {
	if _, err := s.GetTicket(ctx, ticketID); err != nil {
		return "", err
	}

	key := persistence.TicketStatusKey(ticketID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			return domain.TicketStatus(cached), nil
		}
	}

	status := domain.StatusPending
	latest, err := s.ticketEvts.LatestByTicket(ctx, ticketID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	if latest != nil {
		status = latest.Statut
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, string(status), s.statusTTL).Err()
	}
	return status, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
