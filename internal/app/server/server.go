// Package server wires the admin front-end: configuration, the remote API
// client, the query cache, the domain services and the web routes.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrmadmin/internal/domain/auth"
	"hrmadmin/internal/domain/employee"
	"hrmadmin/internal/domain/reference"
	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/platform/cache"
	"hrmadmin/internal/platform/config"
	"hrmadmin/internal/platform/metrics"
	authhandler "hrmadmin/internal/transport/http/handlers/auth"
	employeehandler "hrmadmin/internal/transport/http/handlers/employees"
	reportshandler "hrmadmin/internal/transport/http/handlers/reports"
	"hrmadmin/internal/transport/http/middleware"
	"hrmadmin/internal/transport/http/web"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("templates failed: %v", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	client := apiclient.New(cfg.APIBaseURL, apiclient.WithMetrics(collector))
	queryCache := cache.New(cfg.CacheFreshFor, cfg.CacheRetainFor)

	employees := employee.NewService(client, queryCache, collector, cfg.ReadRetryAttempts, cfg.WriteRetryAttempts)
	refs := reference.NewServices(client, queryCache, cfg.ReadRetryAttempts)
	authService := auth.NewService(client)

	router := NewRouter(cfg, renderer, collector, employees, refs, authService)

	log.Printf("admin front-end listening on %s, remote API %s", cfg.Addr, cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// NewRouter builds the route tree. Split from Run so tests can exercise the
// full middleware and handler stack without a listener.
func NewRouter(cfg config.Config, renderer *web.Renderer, collector *metrics.Collector, employees *employee.Service, refs *reference.Services, authService *auth.Service) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(collector.Snapshot())
		})
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		authHandler := authhandler.NewHandler(authService, renderer)
		r.Get("/login", authHandler.HandleLoginPage)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/employees", http.StatusSeeOther)
		})

		employeeHandler := employeehandler.NewHandler(employees, refs, renderer)
		r.Get("/employees", employeeHandler.HandleList)
		r.Post("/employees", employeeHandler.HandleCreate)
		r.Get("/employees/new", employeeHandler.HandleNew)
		r.Get("/employees/export.pdf", reportshandler.NewHandler(employees, renderer).HandleExportPDF)
		r.Get("/employees/{id}", employeeHandler.HandleDetail)
		r.Post("/employees/{id}", employeeHandler.HandleUpdate)
		r.Get("/employees/{id}/delete", employeeHandler.HandleConfirmDelete)
		r.Post("/employees/{id}/delete", employeeHandler.HandleDelete)
	})

	return router
}
