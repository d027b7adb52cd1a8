package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/core/domain"
)

const userContextKey = "current_user"

// Resolver turns a presented bearer token into the authenticated user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// Auth extracts the bearer token and resolves the caller's identity,
// storing the user in the request context. The identity is resolved
// fresh on every request — tokens reference an account, they never
// cache one, so a deleted account fails here immediately.
func Auth(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Auth, or nil when the request
// did not pass through it.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
