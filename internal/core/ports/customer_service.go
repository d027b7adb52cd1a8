package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// CreateCustomerInput carries the data needed to create a customer. The
// owner is always the authenticated caller.
type CreateCustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// ListCustomersInput carries the caller-supplied list parameters. The
// scope itself is derived from the authenticated user, never from input.
type ListCustomersInput struct {
	Search string
	Skip   int
	Limit  int
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	Create(ctx context.Context, user *domain.User, input CreateCustomerInput) (*domain.Customer, error)
	List(ctx context.Context, user *domain.User, input ListCustomersInput) ([]*domain.Customer, error)
	Get(ctx context.Context, user *domain.User, id string) (*domain.Customer, error)
	Update(ctx context.Context, user *domain.User, id string, update CustomerUpdate) (*domain.Customer, error)
	// Delete removes the customer and cascades to its leads. The cascade
	// is two sequential store calls with no cross-record transaction.
	Delete(ctx context.Context, user *domain.User, id string) error
}
