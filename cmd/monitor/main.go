package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"argus-monitor-go/internal/api"
	"argus-monitor-go/internal/config"
	"argus-monitor-go/internal/logging"
	"argus-monitor-go/internal/logstore"
	"argus-monitor-go/internal/services/alerting"
	"argus-monitor-go/internal/services/describer"
	"argus-monitor-go/internal/services/messaging"
	"argus-monitor-go/internal/services/surveillance"
)

// @title Argus Monitor API
// @version 1.0
// @description CCTV surveillance monitor exposing a rolling log of frame descriptions
// @BasePath /
func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = time.RFC3339
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = log.Output(consoleWriter)

	// Load configuration
	cfg := config.Load()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Tee logs into the embedded Logdy UI when enabled
	if cfg.LogdyEnabled {
		if writer, _, lerr := logging.StartLogdy(cfg); lerr == nil {
			log.Logger = log.Output(zerolog.MultiLevelWriter(consoleWriter, writer))
		} else {
			log.Warn().Err(lerr).Msg("Failed to start Logdy UI")
		}
	}

	log.Info().
		Str("monitor_id", cfg.MonitorID).
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Str("camera_url", cfg.CameraURL).
		Str("model", cfg.ModelName).
		Int("port", cfg.Port).
		Bool("alerts_enabled", cfg.AlertsEnabled).
		Msg("Starting Argus Monitor")

	store := logstore.New(cfg.LogCapacity)
	describeSvc := describer.NewService(cfg)

	// NATS alerting is optional; a broker outage degrades to plain
	// monitoring instead of blocking startup.
	var alerter surveillance.Alerter
	var natsSvc *messaging.Service
	if cfg.AlertsEnabled {
		natsSvc, err = messaging.NewService(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, continuing without alerts")
			natsSvc = nil
		} else {
			alerter = alerting.NewService(cfg, natsSvc)
		}
	}

	loop := surveillance.New(cfg, store, describeSvc, alerter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start surveillance loop in background
	go func() {
		if err := loop.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("Surveillance loop failed to start")
		}
	}()

	// Create and start HTTP server
	server := api.NewServer(cfg, store)
	server.Setup()

	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown: stop the loop, drain the server, release NATS
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-loop.Done():
		log.Info().Msg("Surveillance loop stopped")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Timed out waiting for surveillance loop to stop")
	}

	if natsSvc != nil {
		natsSvc.Shutdown(shutdownCtx)
	}

	log.Info().Msg("Shutdown complete")
}
