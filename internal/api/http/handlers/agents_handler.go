package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/smart-agence/agence-api/internal/api/dto"
	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/service"
	apperrors "github.com/smart-agence/agence-api/pkg/util"
)

// AgentsHandler manages agent endpoints.
type AgentsHandler struct {
	service *service.AgentService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(agentService *service.AgentService) *AgentsHandler {
	return &AgentsHandler{service: agentService}
}

// Create POST /agents.
func (h *AgentsHandler) Create(c *fiber.Ctx) error {
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	agent, err := h.service.CreateAgent(c.UserContext(), agentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAgent(agent))
}

// List GET /agents.
func (h *AgentsHandler) List(c *fiber.Ctx) error {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	agents, err := h.service.ListAgents(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	items := make([]dto.AgentResponse, 0, len(agents))
	for i := range agents {
		items = append(items, dto.FromAgent(&agents[i]))
	}
	return c.JSON(items)
}

// Get GET /agents/:id.
func (h *AgentsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	agent, err := h.service.GetAgent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAgent(agent))
}

// Update PUT /agents/:id.
func (h *AgentsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	agent, err := h.service.UpdateAgent(c.UserContext(), id, agentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.FromAgent(agent))
}

// Delete DELETE /agents/:id.
func (h *AgentsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteAgent(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"detail": "agent deleted"})
}

func agentInput(req dto.AgentRequest) service.AgentInput {
	return service.AgentInput{
		Nom:            req.Nom,
		Prenoms:        req.Prenoms,
		AnneeNaissance: req.AnneeNaissance,
		Categorie:      domain.AgentCategory(req.Categorie),
		Email:          req.Email,
		Telephone:      req.Telephone,
	}
}
