package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/collabhub/platform/project-service/config"
	"github.com/collabhub/platform/project-service/handlers"
	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting service",
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := config.BuildDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to build dependencies", zap.Error(err))
	}

	if deps.EventSubscriber != nil {
		if err := deps.EventSubscriber.Subscribe(ctx, events.TeamMemberRemovedEvent, deps.ProjectEventHandlers); err != nil {
			logger.Error("failed to start event subscriber", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down", zap.String("service", cfg.ServiceName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if err := deps.Close(shutdownCtx); err != nil {
		logger.Error("error closing dependencies", zap.Error(err))
	}

	logger.Info("stopped", zap.String("service", cfg.ServiceName))
}

func setupRouter(deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	if deps.Telemetry != nil {
		r.Use(telemetry.Middleware(deps.Telemetry))
	}

	r.Get("/health", handlers.NewHealthHandler(deps.Registry))
	r.Handle("/metrics", handlers.NewMetricsHandler())

	deps.ProjectHandlers.RegisterRoutes(r)
	deps.SagaHandlers.RegisterRoutes(r)

	return r
}
