package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

type statsFixture struct {
	customers *stubCustomerRepo
	leads     *stubLeadRepo
	cache     *stubStatsCache
	svc       *StatsService
}

func newStatsFixture() *statsFixture {
	customers := newStubCustomerRepo()
	leads := newStubLeadRepo()
	cache := newStubStatsCache()
	return &statsFixture{
		customers: customers,
		leads:     leads,
		cache:     cache,
		svc:       NewStatsService(customers, leads, cache, zerolog.Nop()),
	}
}

func (f *statsFixture) addCustomer(id, ownerID string) {
	f.customers.customers[id] = &domain.Customer{
		ID: id, Name: "c-" + id, OwnerID: ownerID, CreatedAt: time.Now().UTC(),
	}
}

func (f *statsFixture) addLead(id, customerID string, status domain.LeadStatus, value float64) {
	f.leads.leads[id] = &domain.Lead{
		ID: id, CustomerID: customerID, Status: status, Value: value,
	}
}

func TestStatsService_ScopedAggregates(t *testing.T) {
	f := newStatsFixture()
	f.addCustomer("ca1", testUserA.ID)
	f.addCustomer("ca2", testUserA.ID)
	f.addCustomer("cb1", testUserB.ID)

	f.addLead("l1", "ca1", domain.LeadStatusNew, 100)
	f.addLead("l2", "ca1", domain.LeadStatusContacted, 200)
	f.addLead("l3", "ca2", domain.LeadStatusConverted, 300)
	f.addLead("l4", "cb1", domain.LeadStatusNew, 1000)

	adminStats, err := f.svc.Stats(context.Background(), testAdmin)
	require.NoError(t, err)
	require.EqualValues(t, 3, adminStats.TotalCustomers)
	require.EqualValues(t, 4, adminStats.TotalLeads)
	require.Equal(t, 1600.0, adminStats.TotalValue)
	require.EqualValues(t, 2, adminStats.LeadsByStatus[domain.LeadStatusNew])

	aStats, err := f.svc.Stats(context.Background(), testUserA)
	require.NoError(t, err)
	require.EqualValues(t, 2, aStats.TotalCustomers)
	require.EqualValues(t, 3, aStats.TotalLeads)
	require.Equal(t, 600.0, aStats.TotalValue)

	bStats, err := f.svc.Stats(context.Background(), testUserB)
	require.NoError(t, err)
	require.EqualValues(t, 1, bStats.TotalCustomers)
	require.EqualValues(t, 1, bStats.TotalLeads)
	require.Equal(t, 1000.0, bStats.TotalValue)
}

func TestStatsService_BreakdownCoversAllStatuses(t *testing.T) {
	f := newStatsFixture()
	f.addCustomer("c1", testUserA.ID)
	f.addLead("l1", "c1", domain.LeadStatusNew, 50)

	stats, err := f.svc.Stats(context.Background(), testUserA)
	require.NoError(t, err)

	// Every status is present, zero-valued ones included.
	require.Len(t, stats.LeadsByStatus, len(domain.AllLeadStatuses))
	for _, status := range domain.AllLeadStatuses {
		_, ok := stats.LeadsByStatus[status]
		require.True(t, ok, "missing status %s", status)
	}
	require.EqualValues(t, 1, stats.LeadsByStatus[domain.LeadStatusNew])
	require.EqualValues(t, 0, stats.LeadsByStatus[domain.LeadStatusLost])
}

func TestStatsService_NoCustomersIsEmptyNotAll(t *testing.T) {
	f := newStatsFixture()
	f.addCustomer("cb1", testUserB.ID)
	f.addLead("l1", "cb1", domain.LeadStatusNew, 500)

	stats, err := f.svc.Stats(context.Background(), testUserA)
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.TotalCustomers)
	require.EqualValues(t, 0, stats.TotalLeads)
	require.Equal(t, 0.0, stats.TotalValue)
}

func TestStatsService_CacheHitSkipsStores(t *testing.T) {
	f := newStatsFixture()

	cached := &ports.DashboardStats{TotalCustomers: 42, TotalLeads: 7}
	f.cache.entries["stats:owner:"+testUserA.ID] = cached

	stats, err := f.svc.Stats(context.Background(), testUserA)
	require.NoError(t, err)
	require.Same(t, cached, stats)
}

func TestStatsService_ComputedResultIsCached(t *testing.T) {
	f := newStatsFixture()
	f.addCustomer("c1", testUserA.ID)

	_, err := f.svc.Stats(context.Background(), testUserA)
	require.NoError(t, err)

	_, ok := f.cache.entries["stats:owner:"+testUserA.ID]
	require.True(t, ok, "computed stats should be written to the cache")

	adminKeyBefore := len(f.cache.entries)
	_, err = f.svc.Stats(context.Background(), testAdmin)
	require.NoError(t, err)
	require.Equal(t, adminKeyBefore+1, len(f.cache.entries))
	_, ok = f.cache.entries["stats:all"]
	require.True(t, ok, "admin stats use the unrestricted key")
}
