package ports

import (
	"context"

	"github.com/minicrm/crm-api/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account. An empty
// Role defaults to domain.RoleUser.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is returned by Register and Login: a signed bearer token plus
// the account it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements registration, login, and per-request identity
// resolution.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Resolve validates a bearer token and looks the subject up in the
	// credential store. The lookup happens on every call; a valid token
	// for a deleted account is not authenticated.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
