package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"demoqual/app"
	"demoqual/domain/demography"
	"demoqual/internal"
	"demoqual/internal/analysis/quality"
)

// App serves the computed report over HTTP
type App struct {
	router   *chi.Mux
	service  *app.QualityService
	table    *demography.Table
	defaults quality.Params
	logger   *internal.Logger
	formulas []byte
}

// Config holds UI application configuration
type Config struct {
	Port     string
	Defaults quality.Params
}

// NewApp creates the HTTP application. The table is loaded by the caller
// and never modified; every request recomputes its report from it.
func NewApp(config Config, service *app.QualityService, table *demography.Table, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	a := &App{
		router:   chi.NewRouter(),
		service:  service,
		table:    table,
		defaults: config.Defaults,
		logger:   logger,
		formulas: renderFormulas(),
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/formulas", a.handleFormulas)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/report", a.handleReport)
		r.Get("/report/groups/{group}", a.handleGroupReport)
		r.Get("/report.xlsx", a.handleReportWorkbook)
		r.Get("/benford", a.handleBenford)
		r.Get("/export/{format}", a.handleExport)
	})
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router exposes the configured router
func (a *App) Router() *chi.Mux {
	return a.router
}
