package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/domain"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// RequireSection lets the request through only when the caller's role can open section.
func RequireSection(section Section) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !CanAccess(principal.Role(), section) {
			return apperrors.NewForbidden("role " + string(principal.Role()) + " cannot access " + string(section))
		}
		return c.Next()
	}
}

// RequireRole ensures the caller has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
