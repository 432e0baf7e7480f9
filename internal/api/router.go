package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avandyk/wealth-analytics/internal/api/handlers"
	custommiddleware "github.com/avandyk/wealth-analytics/internal/api/middleware"
	"github.com/avandyk/wealth-analytics/internal/config"
	"github.com/avandyk/wealth-analytics/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System       *service.SystemService
	Account      *service.AccountService
	Return       *service.ReturnService
	Wealth       *service.WealthService
	Materialized *service.MaterializedService
	Import       *service.ImportService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/accounts", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(services.Account)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{accountID}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateAccountIDMiddleware)
				r.Get("/snapshots", accountHandler.Snapshots)
				r.Post("/snapshots", accountHandler.UpsertSnapshot)
			})
		})

		r.Route("/returns", func(r chi.Router) {
			returnHandler := handlers.NewReturnHandler(services.Return)
			r.Get("/", returnHandler.Return)
			r.Get("/curve", returnHandler.ReturnCurve)
		})

		r.Route("/wealth", func(r chi.Router) {
			wealthHandler := handlers.NewWealthHandler(services.Wealth, services.Materialized)
			r.Get("/", wealthHandler.Wealth)
			r.Get("/curve", wealthHandler.WealthCurve)
		})

		r.Route("/import", func(r chi.Router) {
			importHandler := handlers.NewImportHandler(services.Import)
			r.Post("/snapshots", importHandler.ImportSnapshots)
			r.Post("/valuations", importHandler.ImportValuations)
		})
	})

	return r
}
