package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStatusEmptyHistory(t *testing.T) {
	assert.Equal(t, StatusPending, CurrentStatus(nil))
	assert.Equal(t, StatusPending, CurrentStatus([]TicketEvent{}))
}

func TestCurrentStatusLatestTimestampWins(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []TicketEvent{
		{ID: 1, Statut: StatusPending, Heure: base},
		{ID: 3, Statut: StatusDone, Heure: base.Add(2 * time.Hour)},
		{ID: 2, Statut: StatusInProgress, Heure: base.Add(time.Hour)},
	}
	assert.Equal(t, StatusDone, CurrentStatus(events))
}

func TestCurrentStatusTieBreaksByEventID(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []TicketEvent{
		{ID: 5, Statut: StatusCanceled, Heure: ts},
		{ID: 4, Statut: StatusDone, Heure: ts},
	}
	// same heure: the later insertion (higher id) wins
	assert.Equal(t, StatusCanceled, CurrentStatus(events))
}

func TestLatestEventNilOnEmpty(t *testing.T) {
	assert.Nil(t, LatestEvent(nil))
}

func TestTicketStatusValid(t *testing.T) {
	for _, s := range []TicketStatus{StatusPending, StatusInProgress, StatusDone, StatusCanceled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TicketStatus("closed").Valid())
	assert.False(t, TicketStatus("").Valid())
}

func TestAgentCategoryValid(t *testing.T) {
	assert.True(t, AgentCategoryTransaction.Valid())
	assert.True(t, AgentCategoryConseil.Valid())
	assert.False(t, AgentCategory("advisory").Valid())
}
