package app

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/agate-ltd/agency-crm/internal/api/http"
	"github.com/agate-ltd/agency-crm/internal/api/http/handlers"
	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/config"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/observability"
	"github.com/agate-ltd/agency-crm/internal/persistence"
	"github.com/agate-ltd/agency-crm/internal/service"
	"github.com/agate-ltd/agency-crm/internal/worker"
)

// Dependencies are the long-lived resources the HTTP application is built on.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *persistence.Store
	// Redis enables sign-in throttling when non-nil and configured.
	Redis *persistence.Redis
	// AuditSink receives audit events after they are logged; optional.
	AuditSink service.AuditSink
}

// Application is the assembled fiber app plus the services behind it.
type Application struct {
	Fiber    *fiber.App
	Tokens   *auth.TokenManager
	Metrics  *observability.Metrics
	Auth     *service.AuthService
	Staff    *service.StaffService
	Clients  *service.ClientService
	Campaign *service.CampaignService
	Contacts *service.ContactService
}

// New wires services, handlers and routes.
func New(deps Dependencies) (*Application, error) {
	if deps.Config == nil || deps.Store == nil {
		return nil, errors.New("app: config and store are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	if err != nil {
		return nil, err
	}

	var limiter auth.AttemptLimiter = auth.NoopAttemptLimiter{}
	var redisPinger handlers.Pinger
	if deps.Redis.Enabled() {
		limiter = auth.NewRedisAttemptLimiter(deps.Redis.Client, cfg.Auth.SignInMaxAttempts, cfg.Auth.SignInWindow())
		redisPinger = deps.Redis
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, deps.AuditSink, logger.Named("audit")))

	repos := deps.Store.Repositories
	application := &Application{
		Tokens:  tokens,
		Metrics: observability.NewMetrics(),
		Auth: service.NewAuthService(*cfg, service.AuthDependencies{
			StaffRepo:  repos.Staff,
			Tokens:     tokens,
			Limiter:    limiter,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		Staff:    service.NewStaffService(*cfg, repos.Staff, dispatcher),
		Clients:  service.NewClientService(repos.Clients, repos.Campaigns, dispatcher, logger),
		Campaign: service.NewCampaignService(repos.Campaigns, repos.Clients, dispatcher),
		Contacts: service.NewContactService(repos.Contacts, dispatcher),
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        application.Metrics,
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	cookie := auth.CookieOptions{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.App.IsProduction(),
		TTL:    tokens.TTL(),
	}
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Store, redisPinger, application.Metrics),
		Auth:           handlers.NewAuthHandler(application.Auth, cookie),
		Staff:          handlers.NewStaffHandler(application.Staff),
		Clients:        handlers.NewClientsHandler(application.Clients),
		Campaigns:      handlers.NewCampaignsHandler(application.Campaign),
		Contact:        handlers.NewContactHandler(application.Contacts),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, cfg.Auth.CookieName),
	})

	application.Fiber = app
	return application, nil
}
