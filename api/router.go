package api

import (
	"net/http"

	"github.com/Arihaan/ZKShop/api/middleware"
	"github.com/Arihaan/ZKShop/config"
	"github.com/Arihaan/ZKShop/handling"
	"github.com/Arihaan/ZKShop/services"
	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App builds the HTTP router around already constructed services.
func App(cfg *structs.Config, logger *gecho.Logger, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// request logs carry no caller
	mwLogger := config.NewLogger(false)

	mw := middleware.NewMiddleware(cfg, mwLogger, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	if cfg.Server.TrustProxy {
		r.Use(chiware.RealIP)
	}
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())

	// CORS (must be before the admin guard)
	r.Use(mw.SetupCORS().Handler)

	r.Use(middleware.MetricsMiddleware)
	r.Use(mw.RateLimitMiddleware())

	NewRouterManager(logger, sm, mw.RequireAdmin()).RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handling.Respond(w, r, http.StatusNotFound, map[string]string{"error": "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handling.Respond(w, r, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	return r
}
