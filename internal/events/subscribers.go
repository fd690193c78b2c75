package events

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smart-agence/agence-api/internal/persistence"
)

// RegisterCacheInvalidation drops cached derived data whenever the event log
// or the ticket set changes.
func RegisterCacheInvalidation(dispatcher Dispatcher, client *redis.Client) {
	if client == nil {
		return
	}

	invalidateStatus := func(ctx context.Context, event Event) error {
		return client.Del(ctx,
			persistence.TicketStatusKey(event.TicketID),
			persistence.StatsOverviewKey,
		).Err()
	}
	invalidateStats := func(ctx context.Context, event Event) error {
		return client.Del(ctx, persistence.StatsOverviewKey).Err()
	}

	dispatcher.Subscribe(EventTicketStatusChanged, invalidateStatus)
	dispatcher.Subscribe(EventTicketCreated, invalidateStats)
	dispatcher.Subscribe(EventAgentDeleted, invalidateStats)
}

// RegisterAuditLog records every domain event on the structured log.
func RegisterAuditLog(dispatcher Dispatcher, logger *zap.Logger) {
	log := func(ctx context.Context, event Event) error {
		logger.Info("domain event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("agent_id", event.AgentID),
			zap.Int64("ticket_id", event.TicketID),
			zap.String("statut", string(event.Statut)),
		)
		return nil
	}

	for _, eventType := range []EventType{
		EventAgentCreated,
		EventAgentDeleted,
		EventTicketCreated,
		EventTicketStatusChanged,
	} {
		dispatcher.Subscribe(eventType, log)
	}
}
