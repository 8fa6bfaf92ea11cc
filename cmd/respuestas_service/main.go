package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/alertavecinal/respuestas-service/internal/platform/config"
	"github.com/alertavecinal/respuestas-service/internal/platform/database"
	"github.com/alertavecinal/respuestas-service/internal/platform/logger"
	"github.com/alertavecinal/respuestas-service/internal/platform/messagebroker"

	respuestasApp "github.com/alertavecinal/respuestas-service/internal/respuestas_service/app"
	fsrepo "github.com/alertavecinal/respuestas-service/internal/respuestas_service/repository/firestore"
	httptransport "github.com/alertavecinal/respuestas-service/internal/respuestas_service/transport/http"
)

const (
	serviceName     = "respuestas_service"
	shutdownTimeout = 15 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger = appLogger.With("service", serviceName)
	appLogger.Info("Starting service...")

	appLogger.Info("Configuration loaded",
		"log_level", cfg.LogLevel,
		"server_port", cfg.ServerPort,
		"firestore_project_id", cfg.FirestoreProjectID,
		"nats_url", cfg.NATSURL,
	)

	// Initialize Firestore. The client is constructed here and injected into
	// the repositories; there is no implicit global connection.
	fsClient, err := database.NewFirestoreClient(mainCtx, database.FirestoreCredentials{
		ProjectID:       cfg.FirestoreProjectID,
		ClientEmail:     cfg.FirestoreClientEmail,
		PrivateKey:      cfg.FirestorePrivateKey,
		CredentialsFile: cfg.FirestoreCredentialsFile,
	})
	if err != nil {
		appLogger.Error("Failed to initialize Firestore client", "error", err)
		os.Exit(1)
	}
	defer fsClient.Close()
	appLogger.Info("Firestore client initialized")

	// NATS is optional; without it replies are still written, just not announced.
	var events respuestasApp.EventPublisher
	if cfg.NATSURL != "" {
		natsClient, err := messagebroker.NewNATSClient(cfg.NATSURL, appLogger, serviceName)
		if err != nil {
			appLogger.Error("Failed to connect to NATS, continuing without event publishing", "url", cfg.NATSURL, "error", err)
		} else {
			defer natsClient.Close()
			events = natsClient
			appLogger.Info("NATS client connected", "url", cfg.NATSURL)
		}
	} else {
		appLogger.Info("NATS URL not configured, event publishing disabled")
	}

	usuarioRepo := fsrepo.NewFsUsuarioRepository(fsClient, appLogger)
	respuestaRepo := fsrepo.NewFsRespuestaRepository(fsClient, appLogger)
	application := respuestasApp.NewApplication(usuarioRepo, respuestaRepo, events, appLogger)

	validate := httptransport.NewValidator()
	respuestaHandler := httptransport.NewRespuestaHandler(application, appLogger, validate)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(httptransport.PrometheusMetricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"Respuestas service is healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	respuestaHandler.RegisterRoutes(r)

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: r}

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		stopSignal := make(chan os.Signal, 1)
		signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
			return nil
		case <-groupCtx.Done():
			return nil
		}
	})

	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown of HTTP server...")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("HTTP server shutdown failed", "error", err)
			return err
		}
		appLogger.Info("HTTP server shut down gracefully.")
		return nil
	})

	appLogger.Info("Service is ready and running.")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Service group encountered an error", "error", err)
	}
	appLogger.Info("Service shutdown complete.")
}
