package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smart-agence/agence-api/internal/domain"
	"github.com/smart-agence/agence-api/internal/persistence"
	"github.com/smart-agence/agence-api/internal/repository"
)

// StatsOverview aggregates the figures the dashboard charts are built from.
type StatsOverview struct {
	ParStatut            map[domain.TicketStatus]int64 `json:"par_statut"`
	ParCategorie         map[string]int64              `json:"par_categorie"`
	ParAgent             map[int64]int64               `json:"par_agent"`
	ParJour              []DayCount                    `json:"par_jour"`
	ResolutionMoyenneSec *float64                      `json:"resolution_moyenne_secondes"`
}

// DayCount is the wire shape of a per-day creation count.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// StatsService computes and caches the dashboard overview.
type StatsService struct {
	stats    repository.StatsRepository
	cache    *redis.Client
	statsTTL time.Duration
}

// StatsDependencies bundles collaborators for the stats service.
type StatsDependencies struct {
	StatsRepo repository.StatsRepository
	Cache     *redis.Client
	StatsTTL  time.Duration
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{
		stats:    deps.StatsRepo,
		cache:    deps.Cache,
		statsTTL: deps.StatsTTL,
	}
}

// Overview runs the aggregation queries, serving a cached copy when fresh.
func (s *StatsService) Overview(ctx context.Context) (*StatsOverview, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, persistence.StatsOverviewKey).Result(); err == nil {
			var overview StatsOverview
			if err := json.Unmarshal([]byte(cached), &overview); err == nil {
				return &overview, nil
			}
		}
	}

	statusCounts, err := s.stats.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	categoryCounts, err := s.stats.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	agentCounts, err := s.stats.AgentTicketCounts(ctx)
	if err != nil {
		return nil, err
	}
	perDay, err := s.stats.TicketsPerDay(ctx)
	if err != nil {
		return nil, err
	}
	avgResolution, err := s.stats.AvgResolutionSeconds(ctx)
	if err != nil {
		return nil, err
	}

	days := make([]DayCount, 0, len(perDay))
	for _, dc := range perDay {
		days = append(days, DayCount{
			Date:  dc.Day.Format("2006-01-02"),
			Count: dc.Count,
		})
	}

	overview := &StatsOverview{
		ParStatut:            statusCounts,
		ParCategorie:         categoryCounts,
		ParAgent:             agentCounts,
		ParJour:              days,
		ResolutionMoyenneSec: avgResolution,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(overview); err == nil {
			_ = s.cache.Set(ctx, persistence.StatsOverviewKey, payload, s.statsTTL).Err()
		}
	}
	return overview, nil
}
