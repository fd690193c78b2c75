package dto

import (
	"strings"
	"time"

	"github.com/smart-agence/agence-api/internal/domain"
	apperrors "github.com/smart-agence/agence-api/pkg/util"
)

// TicketRequest is the create/replace payload for a ticket.
type TicketRequest struct {
	AgentID          int64   `json:"agent_id"`
	CategorieService string  `json:"categorie_service"`
	Description      *string `json:"description"`
}

// Validate checks required fields.
func (r TicketRequest) Validate() error {
	details := map[string]any{}
	if r.AgentID <= 0 {
		details["agent_id"] = "required"
	}
	if strings.TrimSpace(r.CategorieService) == "" {
		details["categorie_service"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid ticket payload", details)
	}
	return nil
}

// TicketResponse is the wire representation of a ticket.
type TicketResponse struct {
	TicketID         int64     `json:"ticket_id"`
	AgentID          int64     `json:"agent_id"`
	CategorieService string    `json:"categorie_service"`
	Description      *string   `json:"description"`
	DateCreation     time.Time `json:"date_creation"`
}

// FromTicket maps a domain ticket to its wire shape.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:         ticket.ID,
		AgentID:          ticket.AgentID,
		CategorieService: ticket.CategorieService,
		Description:      ticket.Description,
		DateCreation:     ticket.DateCreation,
	}
}

// TicketEventRequest is the status-post payload. The ticket_id field is
// accepted for wire compatibility but the URL path id is authoritative.
type TicketEventRequest struct {
	AgentID  int64  `json:"agent_id"`
	TicketID int64  `json:"ticket_id"`
	Statut   string `json:"statut"`
}

// Validate checks required fields and the status enum.
func (r TicketEventRequest) Validate() error {
	details := map[string]any{}
	if r.AgentID <= 0 {
		details["agent_id"] = "required"
	}
	if !domain.TicketStatus(r.Statut).Valid() {
		details["statut"] = "must be one of: pending, in_progress, done, canceled"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid event payload", details)
	}
	return nil
}

// TicketEventResponse is the wire representation of a status event.
type TicketEventResponse struct {
	EventID  int64     `json:"event_id"`
	AgentID  int64     `json:"agent_id"`
	TicketID int64     `json:"ticket_id"`
	Statut   string    `json:"statut"`
	Date     time.Time `json:"date"`
	Heure    time.Time `json:"heure"`
}

// FromTicketEvent maps a domain event to its wire shape.
func FromTicketEvent(event *domain.TicketEvent) TicketEventResponse {
	return TicketEventResponse{
		EventID:  event.ID,
		AgentID:  event.AgentID,
		TicketID: event.TicketID,
		Statut:   string(event.Statut),
		Date:     event.Date,
		Heure:    event.Heure,
	}
}

// CurrentStatusResponse is the server-computed status read.
type CurrentStatusResponse struct {
	TicketID int64  `json:"ticket_id"`
	Statut   string `json:"statut"`
}
