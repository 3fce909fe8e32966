package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hfletcher/jobsite/internal/api/handlers"
	"github.com/hfletcher/jobsite/internal/api/middleware"
	"github.com/hfletcher/jobsite/internal/config"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/pkg/logger"
	"github.com/hfletcher/jobsite/internal/pkg/metrics"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Client        *handlers.ClientHandler
	Project       *handlers.ProjectHandler
	Task          *handlers.TaskHandler
	Budget        *handlers.BudgetHandler
	Update        *handlers.UpdateHandler
	UpdateRequest *handlers.UpdateRequestHandler
	Billing       *handlers.BillingHandler
	Accounting    *handlers.AccountingHandler
	Portal        *handlers.PortalHandler
	Dashboard     *handlers.DashboardHandler

	// Users backs the entitlement gate on the app routes.
	Users user.Service
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Auth
		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.Refresh)

		// Payment processor webhook. Authenticated by signature, not by JWT.
		r.Post("/api/v1/billing/webhook", h.Billing.Webhook)

		// Accounting OAuth callback. Identity is carried in the state param.
		r.Get("/api/v1/accounting/callback", h.Accounting.Callback)

		// Client portal login
		r.Post("/api/v1/portal/login", h.Portal.Login)
	})

	// Contractor routes that stay reachable after the trial runs out:
	// the account itself, billing, and the accounting connection. A
	// locked-out user still needs these to subscribe or disconnect.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/v1/auth/me", h.Auth.Me)
		r.Put("/api/v1/auth/me", h.Auth.UpdateProfile)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)

		r.Route("/api/v1/billing", func(r chi.Router) {
			r.Get("/plans", h.Billing.Plans)
			r.Post("/subscribe", h.Billing.Subscribe)
			r.Get("/info", h.Billing.Info)
			r.Get("/entitlement", h.Billing.Entitlement)
		})

		r.Route("/api/v1/accounting", func(r chi.Router) {
			r.Post("/connect", h.Accounting.Connect)
			r.Get("/status", h.Accounting.Status)
			r.Delete("/connection", h.Accounting.Disconnect)
		})
	})

	// Application routes (require authentication and an active plan or trial)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		r.Use(middleware.EntitlementGate(h.Users))

		r.Get("/api/v1/dashboard", h.Dashboard.Stats)

		// Clients and their portal logins
		r.Route("/api/v1/clients", func(r chi.Router) {
			r.Get("/", h.Client.List)
			r.Post("/", h.Client.Create)
			r.Get("/{clientID}", h.Client.Get)
			r.Put("/{clientID}", h.Client.Update)
			r.Delete("/{clientID}", h.Client.Delete)
			r.Post("/{clientID}/sync", h.Accounting.SyncClient)
			r.Get("/{clientID}/portal-users", h.Portal.Logins)
			r.Delete("/{clientID}/portal-users/{portalUserID}", h.Portal.Revoke)
		})
		r.Post("/api/v1/portal-users", h.Portal.Invite)

		// Projects and everything nested under them
		r.Route("/api/v1/projects", func(r chi.Router) {
			r.Get("/", h.Project.List)
			r.Post("/", h.Project.Create)
			r.Get("/{projectID}", h.Project.Get)
			r.Put("/{projectID}", h.Project.Update)
			r.Delete("/{projectID}", h.Project.Delete)
			r.Get("/{projectID}/report", h.Project.Report)
			r.Post("/{projectID}/sync", h.Accounting.SyncProject)

			r.Route("/{projectID}/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Put("/{taskID}", h.Task.Update)
				r.Delete("/{taskID}", h.Task.Delete)
			})

			r.Route("/{projectID}/budget", func(r chi.Router) {
				r.Get("/", h.Budget.List)
				r.Post("/", h.Budget.Create)
				r.Put("/{itemID}", h.Budget.Update)
				r.Delete("/{itemID}", h.Budget.Delete)
			})

			r.Route("/{projectID}/updates", func(r chi.Router) {
				r.Get("/", h.Update.List)
				r.Post("/", h.Update.Create)
				r.Get("/{updateID}", h.Update.Get)
				r.Delete("/{updateID}", h.Update.Delete)
				r.Post("/{updateID}/photos", h.Update.AddPhoto)
			})
		})

		// Update requests filed by clients
		r.Route("/api/v1/update-requests", func(r chi.Router) {
			r.Get("/", h.UpdateRequest.List)
			r.Get("/{requestID}", h.UpdateRequest.Get)
			r.Put("/{requestID}/status", h.UpdateRequest.SetStatus)
			r.Put("/{requestID}/reply", h.UpdateRequest.SetReply)
		})
	})

	// Client portal routes (portal token domain)
	r.Group(func(r chi.Router) {
		r.Use(middleware.PortalAuthMiddleware(cfg.Portal.JWTSecret))

		r.Route("/api/v1/portal", func(r chi.Router) {
			r.Get("/projects", h.Portal.Projects)
			r.Get("/projects/{projectID}/updates", h.Portal.Updates)
			r.Post("/update-requests", h.Portal.CreateRequest)
			r.Get("/update-requests", h.Portal.MyRequests)
		})
	})

	return r
}
