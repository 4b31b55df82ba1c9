package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kirnagrma/console/internal/admin"
	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/api/handler"
	"github.com/kirnagrma/console/internal/api/middleware"
	"github.com/kirnagrma/console/internal/authz"
	"github.com/kirnagrma/console/internal/platform"
	"github.com/kirnagrma/console/internal/prompts"
	"github.com/kirnagrma/console/internal/session"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AdminCredential admin.Credential
	Agents          *agent.Store
	Sessions        *session.Manager
	Queue           *prompts.Queue
	Platform        *platform.Client
	Store           handler.StorePinger
	Version         string
	CORSOrigins     []string
	LoginRateLimit  int
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. The route table mirrors the dashboard's guard tree: one group per
// requirement, each re-evaluated on every request.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Principal(deps.Sessions))

	healthHandler := handler.NewHealthHandler(deps.Store, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	authHandler := handler.NewAuthHandler(deps.AdminCredential, deps.Agents, deps.Sessions)
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimit(deps.LoginRateLimit))
		r.Post("/api/login", authHandler.Login)
	})
	r.Post("/api/logout", authHandler.Logout)
	r.Get("/api/session", authHandler.Session)

	// Any authenticated principal.
	dashboardHandler := handler.NewDashboardHandler()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthenticated())
		r.Get("/api/dashboard/metrics", dashboardHandler.Metrics)
		r.Get("/api/dashboard/series", dashboardHandler.Series)
	})

	// Admin only: agent account management.
	agentHandler := handler.NewAgentHandler(deps.Agents)
	r.Route("/api/agents", func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Get("/", agentHandler.List)
		r.Post("/", agentHandler.Create)
		r.Put("/{id}", agentHandler.Update)
		r.Patch("/{id}/active", agentHandler.Toggle)
		r.Delete("/{id}", agentHandler.Delete)
	})

	// Capability gated: prompt review queue.
	promptHandler := handler.NewPromptHandler(deps.Queue)
	r.Route("/api/prompts", func(r chi.Router) {
		r.Use(middleware.RequireAgent(authz.CapabilityPrompts))
		r.Get("/", promptHandler.List)
		r.Get("/approved", promptHandler.ListApproved)
		r.Get("/{id}", promptHandler.Get)
		r.Post("/{id}/approve", promptHandler.Approve)
		r.Post("/{id}/reject", promptHandler.Reject)
		r.Post("/{id}/modify", promptHandler.RequestModification)
	})

	// Capability gated: ads and currency sections.
	sectionHandler := handler.NewSectionHandler()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAgent(authz.CapabilityAds))
		r.Get("/api/ads", sectionHandler.Ads)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAgent(authz.CapabilityCurrency))
		r.Get("/api/currency", sectionHandler.Currency)
	})

	creditsHandler := handler.NewCreditsHandler(deps.Platform)
	r.Route("/api/credits/settings", func(r chi.Router) {
		r.Use(middleware.RequireAgent(authz.CapabilityCurrency))
		r.Get("/", creditsHandler.Get)
		r.Put("/", creditsHandler.Update)
	})

	// Any active agent, no specific capability required.
	aiCreatorHandler := handler.NewAICreatorHandler(deps.Platform)
	r.Route("/api/ai-creators", func(r chi.Router) {
		r.Use(middleware.RequireAgent(""))
		r.Get("/", aiCreatorHandler.List)
		r.Post("/{id}/approve", aiCreatorHandler.Approve)
		r.Post("/{id}/reject", aiCreatorHandler.Reject)
	})

	return r
}
