package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/events"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

// requestContext returns the request context carrying the authenticated actor, if any.
func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if claims, ok := auth.ClaimsFromContext(c); ok {
		ctx = events.WithActor(ctx, events.Actor{ID: claims.ID, StaffID: claims.StaffID})
	}
	return ctx
}

func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}
