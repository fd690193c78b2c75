package domain

import "time"

// Ticket is a customer-service request tied to one agent.
type Ticket struct {
	ID               int64
	AgentID          int64
	CategorieService string
	Description      *string
	DateCreation     time.Time
}
