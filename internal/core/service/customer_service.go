package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// CustomerService implements scoped CRUD over customers. Every query is
// pre-filtered by the caller's scope, so records outside it are absent
// rather than rejected.
type CustomerService struct {
	customers ports.CustomerRepository
	leads     ports.LeadRepository
	cache     ports.StatsCache
	logger    zerolog.Logger
}

func NewCustomerService(customers ports.CustomerRepository, leads ports.LeadRepository, cache ports.StatsCache, logger zerolog.Logger) *CustomerService {
	return &CustomerService{customers: customers, leads: leads, cache: cache, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, user *domain.User, input ports.CreateCustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Company:   input.Company,
		OwnerID:   user.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("customer_id", customer.ID).Str("owner_id", user.ID).Msg("customer created")
	s.invalidateStats(ctx, customer.OwnerID)
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, user *domain.User, input ports.ListCustomersInput) ([]*domain.Customer, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}

	return s.customers.List(ctx, ports.ListCustomersFilter{
		Scope:  domain.ScopeForUser(user),
		Search: input.Search,
		Skip:   skip,
		Limit:  limit,
	})
}

func (s *CustomerService) Get(ctx context.Context, user *domain.User, id string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id, domain.ScopeForUser(user))
}

func (s *CustomerService) Update(ctx context.Context, user *domain.User, id string, update ports.CustomerUpdate) (*domain.Customer, error) {
	updated, err := s.customers.UpdateFields(ctx, id, domain.ScopeForUser(user), update)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, updated.OwnerID)
	return updated, nil
}

// Delete removes the customer, then cascades to its leads. The cascade is
// a second store call with no compensating rollback: if it fails the
// error surfaces and orphaned leads remain until the next delete attempt.
func (s *CustomerService) Delete(ctx context.Context, user *domain.User, id string) error {
	scope := domain.ScopeForUser(user)

	customer, err := s.customers.FindByID(ctx, id, scope)
	if err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, id, scope); err != nil {
		return err
	}

	removed, err := s.leads.DeleteByCustomer(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("customer_id", id).
		Int64("leads_removed", removed).
		Msg("customer deleted")
	s.invalidateStats(ctx, customer.OwnerID)
	return nil
}

func (s *CustomerService) invalidateStats(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, statsCacheKeyAll, statsCacheKeyOwner(ownerID)); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
