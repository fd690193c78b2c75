package dto

import (
	"strings"
	"time"

	"github.com/smart-agence/agence-api/internal/domain"
	apperrors "github.com/smart-agence/agence-api/pkg/util"
)

// AgentRequest is the create/replace payload for an agent. Field names are
// part of the wire compatibility contract.
type AgentRequest struct {
	Nom            string  `json:"nom"`
	Prenoms        string  `json:"prenoms"`
	AnneeNaissance int     `json:"annee_naissance"`
	Categorie      string  `json:"categorie"`
	Email          string  `json:"email"`
	Telephone      *string `json:"telephone"`
}

// Validate checks required fields and enum membership.
func (r AgentRequest) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(r.Nom) == "" {
		details["nom"] = "required"
	}
	if strings.TrimSpace(r.Prenoms) == "" {
		details["prenoms"] = "required"
	}
	if r.AnneeNaissance <= 0 {
		details["annee_naissance"] = "required"
	}
	if !domain.AgentCategory(r.Categorie).Valid() {
		details["categorie"] = "must be one of: transaction, conseil"
	}
	if strings.TrimSpace(r.Email) == "" {
		details["email"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid agent payload", details)
	}
	return nil
}

// AgentResponse is the wire representation of an agent.
type AgentResponse struct {
	AgentID            int64     `json:"agent_id"`
	Nom                string    `json:"nom"`
	Prenoms            string    `json:"prenoms"`
	AnneeNaissance     int       `json:"annee_naissance"`
	Categorie          string    `json:"categorie"`
	Email              string    `json:"email"`
	Telephone          *string   `json:"telephone"`
	DateEnregistrement time.Time `json:"date_enregistrement"`
}

// FromAgent maps a domain agent to its wire shape.
func FromAgent(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		AgentID:            agent.ID,
		Nom:                agent.Nom,
		Prenoms:            agent.Prenoms,
		AnneeNaissance:     agent.AnneeNaissance,
		Categorie:          string(agent.Categorie),
		Email:              agent.Email,
		Telephone:          agent.Telephone,
		DateEnregistrement: agent.DateEnregistrement,
	}
}
