package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/domain"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

// Gate is a named predicate over the role flags carried by a session.
type Gate struct {
	Name    string
	Message string
	Allow   func(domain.Roles) bool
}

func anyOf(roles ...domain.Role) func(domain.Roles) bool {
	return func(set domain.Roles) bool {
		return set.HasAny(roles...)
	}
}

var (
	GateAdmin = Gate{
		Name:    "admin",
		Message: "Access denied - Admin privileges required",
		Allow:   anyOf(domain.RoleAdmin),
	}
	GateAdminOrManager = Gate{
		Name:    "admin_or_manager",
		Message: "Access denied - Admin or Manager privileges required",
		Allow:   anyOf(domain.RoleAdmin, domain.RoleManager),
	}
	GateManager = Gate{
		Name:    "manager",
		Message: "Access denied - Manager privileges required",
		Allow:   anyOf(domain.RoleManager, domain.RoleAdmin),
	}
	GateAccountant = Gate{
		Name:    "accountant",
		Message: "Access denied - Accountant privileges required",
		Allow:   anyOf(domain.RoleAccountant, domain.RoleAdmin),
	}
	GateCreativeStaff = Gate{
		Name:    "creative_staff",
		Message: "Access denied - Creative staff privileges required",
		Allow:   anyOf(domain.RoleCreativeStaff, domain.RoleAdmin),
	}
	GateWaiter = Gate{
		Name:    "waiter",
		Message: "Access denied - Waiter privileges required",
		Allow:   anyOf(domain.RoleWaiter, domain.RoleAdmin),
	}
	GateReception = Gate{
		Name:    "reception",
		Message: "Access denied - Reception privileges required",
		Allow:   anyOf(domain.RoleReception, domain.RoleAdmin),
	}
	GateStaff = Gate{
		Name:    "staff",
		Message: "Access denied - Staff privileges required",
		Allow: anyOf(domain.RoleAdmin, domain.RoleManager, domain.RoleAccountant,
			domain.RoleCreativeStaff, domain.RoleWaiter, domain.RoleReception),
	}
)

// Gates returns every predefined gate.
func Gates() []Gate {
	return []Gate{GateAdmin, GateAdminOrManager, GateManager, GateAccountant,
		GateCreativeStaff, GateWaiter, GateReception, GateStaff}
}

// Handler turns the gate into fiber middleware. It must run after AuthMiddleware.
func (g Gate) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgNoCredential)
		}
		if !g.Allow(claims.Roles) {
			return apperrors.NewForbidden(g.Message)
		}
		return c.Next()
	}
}

// RequireAdmin allows admins only.
func RequireAdmin() fiber.Handler {
	return GateAdmin.Handler()
}

// RequireAdminOrManager allows admins and managers.
func RequireAdminOrManager() fiber.Handler {
	return GateAdminOrManager.Handler()
}
