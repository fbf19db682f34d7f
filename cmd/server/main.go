package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tmap-route-service/internal/adapters/tmap"
	"tmap-route-service/internal/api"
	"tmap-route-service/internal/api/handlers"
	"tmap-route-service/internal/config"
	"tmap-route-service/internal/platform/logger"
	"tmap-route-service/internal/render"
	"tmap-route-service/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires the Tmap adapter behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, "tmap-route-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}
	if cfg.PredictionTime != nil {
		log.Warn("route prediction time is pinned", zap.Time("prediction_time", *cfg.PredictionTime))
	}

	provider, err := tmap.NewTmapProvider(cfg, log)
	if err != nil {
		log.Fatal("failed to create tmap provider", zap.Error(err))
	}

	svc, err := services.NewRouteLookupService(provider, cfg, log)
	if err != nil {
		log.Fatal("failed to create lookup service", zap.Error(err))
	}

	renderer, err := render.NewRenderer(cfg.APIKey)
	if err != nil {
		log.Fatal("failed to create renderer", zap.Error(err))
	}

	router := api.NewRouter(&handlers.RouteHandler{
		Service:  svc,
		Renderer: renderer,
		Log:      log,
	}, log)

	// Write timeout covers three sequential provider calls.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      3*cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
			_ = srv.Close()
		}
	}

	log.Info("server stopped")
}
