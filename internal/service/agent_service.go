package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/events"
	"github.com/smart-agence/agence-api/internal/repository"
	apperrors "github.com/smart-agence/agence-api/pkg/util"
)

// AgentService coordinates agent workflows.
type AgentService struct {
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
}

// AgentDependencies bundles collaborators for the agent service.
type AgentDependencies struct {
	AgentRepo  repository.AgentRepository
	Dispatcher events.Dispatcher
}

// AgentInput describes agent create/replace payloads. Identifier and
// registration timestamp are always server-assigned.
type AgentInput struct {
	Nom            string
	Prenoms        string
	AnneeNaissance int
	Categorie      domain.AgentCategory
	Email          string
	Telephone      *string
}

// NewAgentService constructs the service.
func NewAgentService(deps AgentDependencies) *AgentService {
	return &AgentService{
		agents:     deps.AgentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateAgent inserts a new agent, rejecting duplicate emails.
func (s *AgentService) CreateAgent(ctx context.Context, input AgentInput) (*domain.Agent, error) {
	email := strings.TrimSpace(input.Email)
	existing, err := s.agents.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateEmail(email)
	}

	agent := &domain.Agent{
		Nom:            strings.TrimSpace(input.Nom),
		Prenoms:        strings.TrimSpace(input.Prenoms),
		AnneeNaissance: input.AnneeNaissance,
		Categorie:      input.Categorie,
		Email:          email,
		Telephone:      input.Telephone,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventAgentCreated,
		AgentID: agent.ID,
	})
	return agent, nil
}

// GetAgent fetches one agent by id.
func (s *AgentService) GetAgent(ctx context.Context, id int64) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": id})
	}
	return agent, err
}

// ListAgents returns a page of agents.
func (s *AgentService) ListAgents(ctx context.Context, offset, limit int) ([]domain.Agent, error) {
	return s.agents.List(ctx, offset, limit)
}

// UpdateAgent replaces every mutable field of an existing agent.
func (s *AgentService) UpdateAgent(ctx context.Context, id int64, input AgentInput) (*domain.Agent, error) {
	agent := &domain.Agent{
		ID:             id,
		Nom:            strings.TrimSpace(input.Nom),
		Prenoms:        strings.TrimSpace(input.Prenoms),
		AnneeNaissance: input.AnneeNaissance,
		Categorie:      input.Categorie,
		Email:          strings.TrimSpace(input.Email),
		Telephone:      input.Telephone,
	}
	if err := s.agents.Update(ctx, agent); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": id})
		}
		return nil, err
	}
	return s.GetAgent(ctx, id)
}

// DeleteAgent removes an agent; its tickets and events cascade away with it.
func (s *AgentService) DeleteAgent(ctx context.Context, id int64) error {
	deleted, err := s.agents.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("agent", map[string]any{"agent_id": id})
	}

	s.publish(ctx, events.Event{
		Type:    events.EventAgentDeleted,
		AgentID: id,
	})
	return nil
}

func (s *AgentService) publish(ctx context.Context, event events.Event) {
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
