package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// ListCustomersFilter carries all query parameters for listing customers.
// Scope is always supplied by the service layer; the repository folds it
// into the store filter so out-of-scope records are never fetched.
type ListCustomersFilter struct {
	Scope  domain.Scope
	Search string // optional: case-insensitive partial match on name, email or company
	Skip   int
	Limit  int
}

// CustomerUpdate lists the mutable customer fields. A nil field is left
// unchanged.
type CustomerUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

// CustomerRepository defines persistence operations for customers. Every
// single-record operation takes the caller's scope: a record outside the
// scope behaves exactly like an absent one.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.Customer, error)
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, error)
	UpdateFields(ctx context.Context, id string, scope domain.Scope, fields CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, id string, scope domain.Scope) error
	Count(ctx context.Context, scope domain.Scope) (int64, error)
	// IDs returns the ids of all customers visible under scope.
	IDs(ctx context.Context, scope domain.Scope) ([]string, error)
}
