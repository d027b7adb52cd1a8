package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// CreateLeadInput carries the data needed to create a lead under a
// customer. An empty Status defaults to domain.LeadStatusNew.
type CreateLeadInput struct {
	Title       string
	Description string
	Status      domain.LeadStatus
	Value       float64
}

// LeadService defines use-case operations for leads. All operations
// authorize against the parent customer under the caller's scope; a
// parent outside the scope makes the lead behave as absent.
type LeadService interface {
	Create(ctx context.Context, user *domain.User, customerID string, input CreateLeadInput) (*domain.Lead, error)
	ListByCustomer(ctx context.Context, user *domain.User, customerID string, status domain.LeadStatus) ([]*domain.Lead, error)
	List(ctx context.Context, user *domain.User, status domain.LeadStatus) ([]*domain.Lead, error)
	Update(ctx context.Context, user *domain.User, id string, update LeadUpdate) (*domain.Lead, error)
	Delete(ctx context.Context, user *domain.User, id string) error
}
