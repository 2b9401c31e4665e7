package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agate-ltd/agency-crm/internal/api/http/handlers"
	"github.com/agate-ltd/agency-crm/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Clients        *handlers.ClientsHandler
	Campaigns      *handlers.CampaignsHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Guards are attached per route so public
// endpoints can share a prefix with protected ones.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	session := cfg.AuthMiddleware.Handle
	admin := auth.RequireAdmin()
	adminOrManager := auth.RequireAdminOrManager()

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", session, admin, cfg.Auth.SignUp)
	authGroup.Post("/signin", cfg.Auth.SignIn)
	authGroup.Post("/refresh", session, cfg.Auth.Refresh)

	users := api.Group("/user")
	users.Post("/signout", cfg.Auth.SignOut)
	users.Get("/getusers", session, admin, cfg.Staff.List)
	users.Get("/getUsersPP", session, admin, cfg.Staff.Avatars)
	users.Put("/update-permissions/:id", session, admin, cfg.Staff.UpdatePermissions)
	users.Put("/update/:id", session, admin, cfg.Staff.Update)
	users.Delete("/delete/:id", session, admin, cfg.Staff.Delete)
	users.Get("/staff/:staffId", session, cfg.Staff.GetByStaffID)
	users.Get("/:id", session, cfg.Staff.GetByID)

	clients := api.Group("/clients")
	clients.Get("/get-clients", session, cfg.Clients.List)
	clients.Post("/create-client", session, adminOrManager, cfg.Clients.Create)
	clients.Put("/update-client/:id", session, adminOrManager, cfg.Clients.Update)
	clients.Delete("/delete-client/:id", session, adminOrManager, cfg.Clients.Delete)

	campaigns := api.Group("/campaigns")
	campaigns.Get("/get-campaigns", session, cfg.Campaigns.List)
	campaigns.Post("/create-campaign", session, adminOrManager, cfg.Campaigns.Create)
	campaigns.Put("/update-campaign/:id", session, adminOrManager, cfg.Campaigns.Update)
	campaigns.Delete("/delete-campaign/:id", session, adminOrManager, cfg.Campaigns.Delete)

	contact := api.Group("/contact")
	contact.Post("/createContact", cfg.Contact.Create)
	contact.Get("/getContacts", session, adminOrManager, cfg.Contact.List)
}
