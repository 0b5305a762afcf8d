package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aquawatch/aquawatch/internal/api/handlers"
	"github.com/aquawatch/aquawatch/internal/api/router"
	"github.com/aquawatch/aquawatch/internal/config"
	"github.com/aquawatch/aquawatch/internal/ml"
	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/pkg/validator"
	"github.com/aquawatch/aquawatch/internal/repository/sqlstore"
	"github.com/aquawatch/aquawatch/internal/services"
	"github.com/aquawatch/aquawatch/internal/worker"
	"github.com/aquawatch/aquawatch/internal/ws"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	log.WithFields(map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Environment,
	}).Info("Starting AquaWatch API")

	db, err := sqlstore.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlstore.Bootstrap(db); err != nil {
		log.Fatalf("Failed to bootstrap schema: %v", err)
	}

	// Repositories
	readingRepo := sqlstore.NewReadingRepository(db, cfg.Database.Driver)
	symptomRepo := sqlstore.NewSymptomRepository(db, cfg.Database.Driver)
	alertRepo := sqlstore.NewAlertRepository(db, cfg.Database.Driver)

	// External classifier
	classifier := ml.NewClient(ml.Config{
		URL:     cfg.ML.URL,
		Timeout: cfg.ML.Timeout,
	}, log)

	// Services
	alertSvc := services.NewAlertService(alertRepo, symptomRepo, log)
	readingSvc := services.NewReadingService(readingRepo, classifier, alertSvc, log)
	symptomSvc := services.NewSymptomService(symptomRepo, alertSvc, log)
	dashboardSvc := services.NewDashboardService(readingRepo, symptomRepo, alertRepo, log)

	// Live feed
	hub := ws.NewHub(log)
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Live.Enabled {
		feed := worker.NewLiveFeed(readingSvc, dashboardSvc, hub, cfg.Live.Schedule, log)
		if err := feed.Start(ctx); err != nil {
			log.Fatalf("Failed to start live feed: %v", err)
		}
	}

	// HTTP layer
	val := validator.New()
	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(db, classifier, version),
		Reading:   handlers.NewReadingHandler(readingSvc, log, val),
		Symptom:   handlers.NewSymptomHandler(symptomSvc, log, val),
		Alert:     handlers.NewAlertHandler(alertSvc, log, val),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc, log),
		Live:      handlers.NewLiveHandler(hub, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
	log.Info("Server stopped")
}
