package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/DukeRupert/fireaudit/internal/cache"
	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/DukeRupert/fireaudit/internal/metrics"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
)

// DashboardCacheKey is the cache key of the dashboard snapshot.
const DashboardCacheKey = "dashboard"

// UpcomingListLimit caps the Upcoming action list.
const UpcomingListLimit = 10

// DashboardService builds the compliance dashboard.
type DashboardService interface {
	// Get returns the dashboard, served from the cache while fresh.
	Get(ctx context.Context) (*domain.Dashboard, error)

	// Invalidate drops the cached snapshot.
	Invalidate(ctx context.Context)
}

type dashboardService struct {
	store  repository.Store
	cache  cache.Cache
	ttl    time.Duration
	clock  schedule.Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	store repository.Store,
	c cache.Cache,
	ttl time.Duration,
	clock schedule.Clock,
	loc *time.Location,
	logger *slog.Logger,
) DashboardService {
	return &dashboardService{
		store:  store,
		cache:  c,
		ttl:    ttl,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

func (s *dashboardService) Get(ctx context.Context) (*domain.Dashboard, error) {
	const op = "dashboard.get"

	var cached domain.Dashboard
	hit, err := s.cache.Get(ctx, DashboardCacheKey, &cached)
	if err != nil {
		// A broken cache degrades to recomputing.
		s.logger.Warn("dashboard cache read failed", "error", err)
	}
	if hit {
		metrics.DashboardCache("hit")
		return &cached, nil
	}
	metrics.DashboardCache("miss")

	stats, err := s.store.InspectionStats(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load inspection stats")
	}

	rows, err := s.store.ListScheduledClients(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list scheduled clients")
	}

	now := s.clock.Now().In(s.loc)
	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		client, err := rowToClient(row, s.loc)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to decode client")
		}
		clients = append(clients, *client)
	}

	dashboard := &domain.Dashboard{
		Stats:       BuildStats(stats),
		Actions:     BuildActionLists(clients, now),
		GeneratedAt: now,
	}

	if err := s.cache.Set(ctx, DashboardCacheKey, dashboard, s.ttl); err != nil {
		s.logger.Warn("dashboard cache write failed", "error", err)
	}
	return dashboard, nil
}

func (s *dashboardService) Invalidate(ctx context.Context) {
	invalidateDashboard(ctx, s.cache, s.logger)
}

// BuildStats derives the headline numbers. With no inspections the
// compliance rate is 100.
func BuildStats(row repository.InspectionStatsRow) domain.DashboardStats {
	rate := 100
	if row.Total > 0 {
		rate = int(math.Round(float64(row.Completed) / float64(row.Total) * 100))
	}
	return domain.DashboardStats{
		TotalInspections: row.Total,
		ComplianceRate:   rate,
		ActionRequired:   row.ActionRequired,
		CriticalOpen:     row.CriticalOpen,
	}
}

// BuildActionLists buckets scheduled clients by the status of their next
// inspection date. Clients without a date are ignored. Everything that is
// neither Urgent nor Pending lands in Upcoming, which is capped at
// UpcomingListLimit entries in input order.
func BuildActionLists(clients []domain.Client, now time.Time) domain.ActionLists {
	lists := domain.ActionLists{
		Urgent:   []domain.ActionItem{},
		Pending:  []domain.ActionItem{},
		Upcoming: []domain.ActionItem{},
	}

	for _, c := range clients {
		if c.NextInspectionDate == nil {
			continue
		}
		item := domain.ActionItem{
			ClientID:           c.ID,
			ClientName:         c.Name,
			Address:            c.Address,
			NextInspectionDate: *c.NextInspectionDate,
			Status:             schedule.StatusOf(c.NextInspectionDate, now),
		}

		switch item.Status {
		case schedule.StatusUrgent:
			item.OverdueDays = schedule.DaysBetween(*c.NextInspectionDate, now)
			lists.Urgent = append(lists.Urgent, item)
		case schedule.StatusPending:
			lists.Pending = append(lists.Pending, item)
		default:
			if len(lists.Upcoming) < UpcomingListLimit {
				lists.Upcoming = append(lists.Upcoming, item)
			}
		}
	}
	return lists
}

// invalidateDashboard drops the dashboard snapshot after a write. Failures
// are logged; the snapshot then expires on its own.
func invalidateDashboard(ctx context.Context, c cache.Cache, logger *slog.Logger) {
	if err := c.Delete(ctx, DashboardCacheKey); err != nil {
		logger.Warn("dashboard cache invalidation failed", "error", err)
	}
}
