package service

import (
	"context"
	"sort"
	"strings"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

// In-memory fakes that honor the same scoping semantics as the real
// repositories: scoped lookups report out-of-scope records as absent, and
// an empty customer-id set matches nothing.

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) delete(id string) {
	delete(r.users, id)
}

type stubCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func cloneCustomer(c *domain.Customer) *domain.Customer {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	r.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string, scope domain.Scope) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok || !scope.Allows(c.OwnerID) {
		return nil, domain.ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) List(_ context.Context, filter ports.ListCustomersFilter) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for _, c := range r.customers {
		if !filter.Scope.Allows(c.OwnerID) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Email), needle) &&
				!strings.Contains(strings.ToLower(c.Company), needle) {
				continue
			}
		}
		out = append(out, cloneCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Skip > 0 {
		if filter.Skip >= len(out) {
			return nil, nil
		}
		out = out[filter.Skip:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *stubCustomerRepo) UpdateFields(_ context.Context, id string, scope domain.Scope, fields ports.CustomerUpdate) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok || !scope.Allows(c.OwnerID) {
		return nil, domain.ErrCustomerNotFound
	}
	if fields.Name != nil {
		c.Name = *fields.Name
	}
	if fields.Email != nil {
		c.Email = *fields.Email
	}
	if fields.Phone != nil {
		c.Phone = *fields.Phone
	}
	if fields.Company != nil {
		c.Company = *fields.Company
	}
	return cloneCustomer(c), nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string, scope domain.Scope) error {
	c, ok := r.customers[id]
	if !ok || !scope.Allows(c.OwnerID) {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *stubCustomerRepo) Count(_ context.Context, scope domain.Scope) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if scope.Allows(c.OwnerID) {
			n++
		}
	}
	return n, nil
}

func (r *stubCustomerRepo) IDs(_ context.Context, scope domain.Scope) ([]string, error) {
	var ids []string
	for _, c := range r.customers {
		if scope.Allows(c.OwnerID) {
			ids = append(ids, c.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type stubLeadRepo struct {
	leads map[string]*domain.Lead
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{leads: make(map[string]*domain.Lead)}
}

func cloneLead(l *domain.Lead) *domain.Lead {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}

func (r *stubLeadRepo) Create(_ context.Context, l *domain.Lead) error {
	r.leads[l.ID] = cloneLead(l)
	return nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, id string) (*domain.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return cloneLead(l), nil
}

func (r *stubLeadRepo) ListByCustomer(_ context.Context, customerID string, status domain.LeadStatus) ([]*domain.Lead, error) {
	return r.collect(func(l *domain.Lead) bool {
		return l.CustomerID == customerID && (status == "" || l.Status == status)
	}), nil
}

func (r *stubLeadRepo) ListByCustomerIDs(_ context.Context, customerIDs []string, status domain.LeadStatus) ([]*domain.Lead, error) {
	allowed := make(map[string]struct{}, len(customerIDs))
	for _, id := range customerIDs {
		allowed[id] = struct{}{}
	}
	return r.collect(func(l *domain.Lead) bool {
		_, ok := allowed[l.CustomerID]
		return ok && (status == "" || l.Status == status)
	}), nil
}

func (r *stubLeadRepo) ListAll(_ context.Context, status domain.LeadStatus) ([]*domain.Lead, error) {
	return r.collect(func(l *domain.Lead) bool {
		return status == "" || l.Status == status
	}), nil
}

func (r *stubLeadRepo) UpdateFields(_ context.Context, id string, fields ports.LeadUpdate) (*domain.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	if fields.Title != nil {
		l.Title = *fields.Title
	}
	if fields.Description != nil {
		l.Description = *fields.Description
	}
	if fields.Status != nil {
		l.Status = *fields.Status
	}
	if fields.Value != nil {
		l.Value = *fields.Value
	}
	return cloneLead(l), nil
}

func (r *stubLeadRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return domain.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *stubLeadRepo) DeleteByCustomer(_ context.Context, customerID string) (int64, error) {
	var removed int64
	for id, l := range r.leads {
		if l.CustomerID == customerID {
			delete(r.leads, id)
			removed++
		}
	}
	return removed, nil
}

func (r *stubLeadRepo) collect(keep func(*domain.Lead) bool) []*domain.Lead {
	var out []*domain.Lead
	for _, l := range r.leads {
		if keep(l) {
			out = append(out, cloneLead(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// stubStatsCache records Set and Invalidate calls so tests can assert on
// cache behavior without Redis.
type stubStatsCache struct {
	entries     map[string]*ports.DashboardStats
	invalidated []string
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{entries: make(map[string]*ports.DashboardStats)}
}

func (c *stubStatsCache) Get(_ context.Context, key string) (*ports.DashboardStats, bool, error) {
	stats, ok := c.entries[key]
	return stats, ok, nil
}

func (c *stubStatsCache) Set(_ context.Context, key string, stats *ports.DashboardStats) error {
	c.entries[key] = stats
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
		c.invalidated = append(c.invalidated, key)
	}
	return nil
}
