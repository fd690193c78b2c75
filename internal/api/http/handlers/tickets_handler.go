package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/smart-agence/agence-api/internal/api/dto"
	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/service"
	apperrors "github.com/smart-agence/agence-api/pkg/util"
)

// TicketsHandler manages ticket and status-event endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), ticketInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := service.TicketListFilter{
		Offset: queryInt(c, "skip", 0),
		Limit:  queryInt(c, "limit", 100),
	}
	if raw := c.Query("agent_id"); raw != "" {
		agentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid agent_id", map[string]any{"agent_id": raw})
		}
		filter.AgentID = &agentID
	}
	if categorie := c.Query("categorie"); categorie != "" {
		filter.Categorie = &categorie
	}

	tickets, err := h.service.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return c.JSON(items)
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// Update PUT /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), id, ticketInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// PostStatus POST /tickets/:id/status.
func (h *TicketsHandler) PostStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TicketEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	event, err := h.service.PostStatus(c.UserContext(), id, service.StatusInput{
		AgentID: req.AgentID,
		Statut:  domain.TicketStatus(req.Statut),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicketEvent(event))
}

// ListEvents GET /tickets/:id/events.
func (h *TicketsHandler) ListEvents(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	events, err := h.service.ListEvents(c.UserContext(), id)
	if err != nil {
		return err
	}
	items := make([]dto.TicketEventResponse, 0, len(events))
	for i := range events {
		items = append(items, dto.FromTicketEvent(&events[i]))
	}
	return c.JSON(items)
}

// CurrentStatus GET /tickets/:id/status.
func (h *TicketsHandler) CurrentStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.service.CurrentStatus(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.CurrentStatusResponse{TicketID: id, Statut: string(status)})
}

func ticketInput(req dto.TicketRequest) service.TicketInput {
	return service.TicketInput{
		AgentID:          req.AgentID,
		CategorieService: req.CategorieService,
		Description:      req.Description,
	}
}
