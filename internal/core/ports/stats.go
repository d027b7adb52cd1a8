package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// DashboardStats is the aggregate view returned to the dashboard.
// LeadsByStatus always contains all four statuses, zero-valued ones
// included, so clients can render a stable breakdown.
type DashboardStats struct {
	TotalCustomers int64                       `json:"total_customers"`
	TotalLeads     int64                       `json:"total_leads"`
	LeadsByStatus  map[domain.LeadStatus]int64 `json:"leads_by_status"`
	TotalValue     float64                     `json:"total_value"`
}

// StatsService computes dashboard statistics over the record set visible
// under the caller's scope.
type StatsService interface {
	Stats(ctx context.Context, user *domain.User) (*DashboardStats, error)
}

// StatsCache is a best-effort cache for dashboard aggregates. Callers
// treat every failure as a miss; a cache error never fails a request.
type StatsCache interface {
	Get(ctx context.Context, key string) (*DashboardStats, bool, error)
	Set(ctx context.Context, key string, stats *DashboardStats) error
	Invalidate(ctx context.Context, keys ...string) error
}
