package domain

import "time"

// AgentCategory enumerates an agent's specialty.
type AgentCategory string

const (
	AgentCategoryTransaction AgentCategory = "transaction"
	AgentCategoryConseil     AgentCategory = "conseil"
)

// Valid reports whether the category is a known value.
func (c AgentCategory) Valid() bool {
	return c == AgentCategoryTransaction || c == AgentCategoryConseil
}

// Agent is a service representative who owns tickets.
type Agent struct {
	ID                 int64
	Nom                string
	Prenoms            string
	AnneeNaissance     int
	Categorie          AgentCategory
	Email              string
	Telephone          *string
	DateEnregistrement time.Time
}
