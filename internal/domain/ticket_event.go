package domain

import "time"

// TicketStatus enumerates lifecycle states recorded in the event log.
type TicketStatus string

const (
	StatusPending    TicketStatus = "pending"
	StatusInProgress TicketStatus = "in_progress"
	StatusDone       TicketStatus = "done"
	StatusCanceled   TicketStatus = "canceled"
)

// Valid reports whether the status is a known value.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// TicketEvent is an immutable status record for a ticket. Events are only
// ever appended; a ticket's current status is derived from the latest one.
type TicketEvent struct {
	ID       int64
	AgentID  int64
	TicketID int64
	Statut   TicketStatus
	Date     time.Time
	Heure    time.Time
}

// LatestEvent returns the event with the maximum timestamp, breaking ties by
// event id so that the most recently inserted row wins. Returns nil when the
// slice is empty.
func LatestEvent(events []TicketEvent) *TicketEvent {
	var latest *TicketEvent
	for i := range events {
		e := &events[i]
		if latest == nil || e.Heure.After(latest.Heure) ||
			(e.Heure.Equal(latest.Heure) && e.ID > latest.ID) {
			latest = e
		}
	}
	return latest
}

// CurrentStatus reduces an event history to the ticket's displayed status,
// defaulting to pending when no event exists.
func CurrentStatus(events []TicketEvent) TicketStatus {
	if latest := LatestEvent(events); latest != nil {
		return latest.Statut
	}
	return StatusPending
}
