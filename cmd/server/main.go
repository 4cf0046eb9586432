// Package main provides the entry point for the prediction API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitch-predictor/internal/api"
	"github.com/yourusername/pitch-predictor/internal/config"
	"github.com/yourusername/pitch-predictor/internal/database"
	"github.com/yourusername/pitch-predictor/internal/dataset"
	"github.com/yourusername/pitch-predictor/internal/health"
	"github.com/yourusername/pitch-predictor/internal/logger"
	"github.com/yourusername/pitch-predictor/internal/metrics"
	"github.com/yourusername/pitch-predictor/internal/normalizer"
	"github.com/yourusername/pitch-predictor/internal/predictor"
	"github.com/yourusername/pitch-predictor/internal/scheduler"
	"github.com/yourusername/pitch-predictor/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("PITCH_PREDICTOR_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment":    cfg.App.Environment,
		"log_level":      cfg.App.LogLevel,
		"dataset_source": cfg.Dataset.Source,
		"version":        Version,
	}).Info("Pitch Predictor starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database connection is only needed when the dataset lives in Postgres.
	var db *database.DB
	if cfg.Dataset.Source == "postgres" {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		appLog.Info("Database connection established")
	}

	source, err := dataset.New(cfg, db, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create dataset source")
	}

	metrics.InitRegistry()

	norm := normalizer.New(cfg.CompetitorCodes(), appLog)
	engine := predictor.NewEngine(cfg.Prediction, nil, appLog)
	audit := logger.NewPredictionAuditLogger(appLog)
	reloadSvc := service.NewReloadService(source, norm, engine, appLog, audit)

	// The service cannot start without a dataset. A missing or empty
	// source is fatal here; reload failures later keep the old table.
	if err := reloadSvc.Reload(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to load dataset")
	}

	hub := api.NewHub(appLog)
	go hub.Run(ctx)

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        strconv.Itoa(cfg.Server.HealthPort),
		Logger:      appLog,
		DB:          databasePinger(db),
		TableRows: func() int {
			if t := engine.Table(); t != nil {
				return t.Len()
			}
			return 0
		},
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLog.WithField("addr", metricsServer.Addr).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	apiServer := api.NewServer(cfg, engine, hub, appLog)
	apiServer.Start(ctx)

	var sched *scheduler.Scheduler
	if cfg.Dataset.ReloadEnabled {
		sched = scheduler.NewScheduler(appLog)
		if err := sched.ScheduleReload(cfg.Dataset.ReloadCron, reloadSvc); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule dataset reload")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
	}

	healthServer.SetReady(true)
	appLog.Info("Pitch Predictor ready")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	healthServer.SetReady(false)

	if sched != nil {
		sched.Stop()
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Metrics server shutdown error")
		}
		shutdownCancel()
	}
	if err := apiServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("API server shutdown error")
	}
	cancel()

	appLog.Info("Pitch Predictor stopped")
}

// databasePinger converts a possibly-nil *database.DB to the health
// check interface without producing a non-nil interface holding nil.
func databasePinger(db *database.DB) health.DatabasePinger {
	if db == nil {
		return nil
	}
	return db
}
