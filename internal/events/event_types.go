package events

import (
	"time"

	"github.com/smart-agence/agence-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAgentCreated        EventType = "agent_created"
	EventAgentDeleted        EventType = "agent_deleted"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string              `json:"id"`
	Type      EventType           `json:"type"`
	AgentID   int64               `json:"agent_id,omitempty"`
	TicketID  int64               `json:"ticket_id,omitempty"`
	Statut    domain.TicketStatus `json:"statut,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}
