package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

const statsCacheKeyAll = "stats:all"

func statsCacheKeyOwner(ownerID string) string {
	return "stats:owner:" + ownerID
}

func statsCacheKey(scope domain.Scope) string {
	if scope.IsUnrestricted() {
		return statsCacheKeyAll
	}
	return statsCacheKeyOwner(scope.OwnerID())
}

// StatsService computes dashboard aggregates under the caller's scope.
// Results are cached best-effort; a cache failure never fails the request.
type StatsService struct {
	customers ports.CustomerRepository
	leads     ports.LeadRepository
	cache     ports.StatsCache
	logger    zerolog.Logger
}

func NewStatsService(customers ports.CustomerRepository, leads ports.LeadRepository, cache ports.StatsCache, logger zerolog.Logger) *StatsService {
	return &StatsService{customers: customers, leads: leads, cache: cache, logger: logger}
}

func (s *StatsService) Stats(ctx context.Context, user *domain.User) (*ports.DashboardStats, error) {
	scope := domain.ScopeForUser(user)
	key := statsCacheKey(scope)

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache read failed")
	} else if ok {
		return cached, nil
	}

	totalCustomers, err := s.customers.Count(ctx, scope)
	if err != nil {
		return nil, err
	}

	var leads []*domain.Lead
	if scope.IsUnrestricted() {
		leads, err = s.leads.ListAll(ctx, "")
	} else {
		var ids []string
		ids, err = s.customers.IDs(ctx, scope)
		if err != nil {
			return nil, err
		}
		// Zero owned customers must stay a closed empty lead set; the
		// query is never widened to an unrestricted one.
		leads, err = s.leads.ListByCustomerIDs(ctx, ids, "")
	}
	if err != nil {
		return nil, err
	}

	// The breakdown covers the full status enumeration, not just the
	// statuses observed, so zero counts are explicit.
	byStatus := make(map[domain.LeadStatus]int64, len(domain.AllLeadStatuses))
	for _, status := range domain.AllLeadStatuses {
		byStatus[status] = 0
	}
	var totalValue float64
	for _, lead := range leads {
		byStatus[lead.Status]++
		totalValue += lead.Value
	}

	stats := &ports.DashboardStats{
		TotalCustomers: totalCustomers,
		TotalLeads:     int64(len(leads)),
		LeadsByStatus:  byStatus,
		TotalValue:     totalValue,
	}

	if err := s.cache.Set(ctx, key, stats); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}
