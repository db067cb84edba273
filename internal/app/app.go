package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"wagelens/internal/config"
	apierrors "wagelens/internal/errors"
	"wagelens/internal/infrastructure"
	"wagelens/internal/middleware"
	"wagelens/internal/services"
	transport "wagelens/internal/transport/http"
	"wagelens/internal/validation"
)

// Version is the build version, overridable via -ldflags.
var Version = "dev"

// Application wires the configuration, the loaded dataset and the HTTP
// surface together.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *infrastructure.Metrics
	Dashboard *services.DashboardService
	Router    chi.Router

	server *http.Server
}

// New builds the application: config, logger, workbook validation, dataset
// load, services, and router. frontendFS serves the embedded dashboard page.
func New(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateWorkbook(cfg.Workbook.Path, cfg.Workbook.MaxSizeBytes); err != nil {
		return nil, err
	}

	dashboard, err := services.NewDashboardService(cfg, logger)
	if err != nil {
		return nil, err
	}

	metrics := infrastructure.NewMetrics()
	metrics.DatasetRecords.Set(float64(dashboard.RecordCount()))
	metrics.DroppedRecords.Set(float64(dashboard.ParseStats().DroppedBadDate))

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Dashboard: dashboard,
	}
	app.setupRouter(frontendFS)
	app.createServer()

	return app, nil
}

// setupRouter configures the middleware chain and routes. Ordering:
// RequestID, RealIP, TraceContext, logging, recovery, then the rest.
func (a *Application) setupRouter(frontendFS fs.FS) {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceContext)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.HTTPMetrics(a.Metrics))

	if a.Config.Security.EnableCORS {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         time.Hour,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	// Prometheus endpoint outside the API timeout group
	r.Handle("/metrics", a.Metrics.Handler())

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(middleware.Timeout(a.Config.Server.ReadTimeout))

		healthHandler := transport.NewHealthHandler(a.Dashboard, a.Logger, Version)
		r.Get("/health", healthHandler.HealthCheck)

		dashboardHandler := transport.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	if frontendFS != nil {
		a.setupFrontend(r, frontendFS)
	}

	a.Router = r
}

// setupFrontend serves the embedded single-page dashboard.
func (a *Application) setupFrontend(r chi.Router, frontendFS fs.FS) {
	fileServer := http.FileServer(http.FS(frontendFS))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		req.URL.Path = "/static/"
		fileServer.ServeHTTP(w, req)
	})
	r.Get("/static/*", fileServer.ServeHTTP)
}

// createServer builds the http.Server with the configured timeouts.
func (a *Application) createServer() {
	a.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the server and blocks until shutdown completes. SIGINT and
// SIGTERM trigger a graceful shutdown bounded by the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("dashboard server starting",
			slog.Int("port", a.Config.Server.Port),
			slog.Int("records", a.Dashboard.RecordCount()),
			slog.String("workbook", a.Config.Workbook.Path))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		a.Logger.Info("shutting down dashboard server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.Logger.Info("dashboard server stopped")
	return infrastructure.CloseLogFile()
}
