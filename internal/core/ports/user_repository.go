package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// UserRepository is the credential store adapter: it persists user
// profiles together with their password hashes.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
