package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// LeadUpdate lists the mutable lead fields. A nil field is left unchanged.
type LeadUpdate struct {
	Title       *string
	Description *string
	Status      *domain.LeadStatus
	Value       *float64
}

// LeadRepository defines persistence operations for leads. Leads carry no
// owner field, so lookups are unscoped; authorization happens in the
// service layer against the parent customer. A zero-value status argument
// means "any status".
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	ListByCustomer(ctx context.Context, customerID string, status domain.LeadStatus) ([]*domain.Lead, error)
	// ListByCustomerIDs returns leads whose customer is in customerIDs.
	// An empty slice is an explicit closed set matching nothing — it is
	// never widened to an unrestricted query.
	ListByCustomerIDs(ctx context.Context, customerIDs []string, status domain.LeadStatus) ([]*domain.Lead, error)
	ListAll(ctx context.Context, status domain.LeadStatus) ([]*domain.Lead, error)
	UpdateFields(ctx context.Context, id string, fields LeadUpdate) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
	// DeleteByCustomer removes every lead of the customer and returns the
	// number removed.
	DeleteByCustomer(ctx context.Context, customerID string) (int64, error)
}
