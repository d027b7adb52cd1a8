package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

// LeadService implements lead operations. Leads carry no owner field, so
// every operation authorizes against the parent customer fetched under
// the caller's scope.
type LeadService struct {
	leads     ports.LeadRepository
	customers ports.CustomerRepository
	cache     ports.StatsCache
	logger    zerolog.Logger
}

func NewLeadService(leads ports.LeadRepository, customers ports.CustomerRepository, cache ports.StatsCache, logger zerolog.Logger) *LeadService {
	return &LeadService{leads: leads, customers: customers, cache: cache, logger: logger}
}

func (s *LeadService) Create(ctx context.Context, user *domain.User, customerID string, input ports.CreateLeadInput) (*domain.Lead, error) {
	// The scoped lookup both validates the parent reference and hides
	// customers the caller cannot see.
	customer, err := s.customers.FindByID(ctx, customerID, domain.ScopeForUser(user))
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.LeadStatusNew
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidLeadStatus
	}

	lead := &domain.Lead{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Value:       input.Value,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", lead.ID).Str("customer_id", customer.ID).Msg("lead created")
	s.invalidateStats(ctx, customer.OwnerID)
	return lead, nil
}

func (s *LeadService) ListByCustomer(ctx context.Context, user *domain.User, customerID string, status domain.LeadStatus) ([]*domain.Lead, error) {
	if _, err := s.customers.FindByID(ctx, customerID, domain.ScopeForUser(user)); err != nil {
		return nil, err
	}
	return s.leads.ListByCustomer(ctx, customerID, status)
}

func (s *LeadService) List(ctx context.Context, user *domain.User, status domain.LeadStatus) ([]*domain.Lead, error) {
	scope := domain.ScopeForUser(user)
	if scope.IsUnrestricted() {
		return s.leads.ListAll(ctx, status)
	}

	ids, err := s.customers.IDs(ctx, scope)
	if err != nil {
		return nil, err
	}
	// An owner with no customers queries an explicit empty set, never an
	// unrestricted one.
	return s.leads.ListByCustomerIDs(ctx, ids, status)
}

func (s *LeadService) Update(ctx context.Context, user *domain.User, id string, update ports.LeadUpdate) (*domain.Lead, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, domain.ErrInvalidLeadStatus
	}

	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.authorizeParent(ctx, user, lead)
	if err != nil {
		return nil, err
	}

	updated, err := s.leads.UpdateFields(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, customer.OwnerID)
	return updated, nil
}

func (s *LeadService) Delete(ctx context.Context, user *domain.User, id string) error {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return err
	}
	customer, err := s.authorizeParent(ctx, user, lead)
	if err != nil {
		return err
	}

	if err := s.leads.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("lead_id", id).Str("customer_id", lead.CustomerID).Msg("lead deleted")
	s.invalidateStats(ctx, customer.OwnerID)
	return nil
}

// authorizeParent fetches the lead's parent customer under the caller's
// scope. A parent outside the scope reports the lead as absent rather
// than confirming it exists.
func (s *LeadService) authorizeParent(ctx context.Context, user *domain.User, lead *domain.Lead) (*domain.Customer, error) {
	customer, err := s.customers.FindByID(ctx, lead.CustomerID, domain.ScopeForUser(user))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *LeadService) invalidateStats(ctx context.Context, ownerID string) {
	if err := s.cache.Invalidate(ctx, statsCacheKeyAll, statsCacheKeyOwner(ownerID)); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
