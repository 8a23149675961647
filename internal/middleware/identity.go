// Package middleware provides reusable HTTP middleware: identity
// resolution from bearer tokens, role gating, Redis response caching and
// rate limiting.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/honeyflow/hive-api/internal/auth"
)

// identityKey is the context key under which the resolved identity is
// stored for downstream handlers.
const identityKey = "identity"

// ResolveIdentity returns middleware that extracts the authenticated
// identity from the Authorization header and stores it in the Echo context.
// It never rejects a request: endpoints decide whether an identity is
// required. Invalid or missing credentials simply leave no identity behind,
// so ambiguous tokens fail closed to "unauthenticated".
func ResolveIdentity(ext *auth.Extractor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := ext.FromRequest(c.Request()); id != nil {
				SetIdentity(c, id)
			}
			return next(c)
		}
	}
}

// RequireIdentity returns middleware that rejects requests lacking a
// resolved identity with 401 before the handler runs. It assumes
// ResolveIdentity ran earlier in the chain.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c) == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}

// RequireRole returns middleware that enforces that the authenticated user
// holds one of the given roles, responding 403 otherwise. It assumes
// ResolveIdentity ran earlier in the chain.
func RequireRole(roles ...auth.Role) echo.MiddlewareFunc {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id == nil || !allowed[id.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
			}
			return next(c)
		}
	}
}

// SetIdentity stores the identity for downstream handlers. It is the only
// writer of the identity key; handler tests use it to authenticate a
// context without minting tokens.
func SetIdentity(c echo.Context, id *auth.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by ResolveIdentity, or nil when
// the request is unauthenticated.
func IdentityFrom(c echo.Context) *auth.Identity {
	if id, ok := c.Get(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
