package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/thanhnp/psbt-apis/internal/api"
	"github.com/thanhnp/psbt-apis/internal/config"
	"github.com/thanhnp/psbt-apis/internal/storage"
	"github.com/thanhnp/psbt-apis/pkg/semver"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	serverLog := log.WithField("component", "server")
	serverLog.WithFields(log.Fields{
		"version": semver.AppVersion(),
		"network": cfg.DefaultNetwork,
	}).Info("starting PSBT APIs server")

	// History is optional; the service runs without a database
	var store *storage.SummaryStore
	if cfg.History.Enabled {
		serverLog.WithField("path", cfg.Pebble.Path).Info("opening summary history")
		store, err = storage.OpenSummaryStore(cfg.Pebble.Path)
		if err != nil {
			serverLog.WithError(err).Fatal("failed to open pebble database")
		}
	}

	router := api.NewRouter(cfg, store, semver.AppVersion())

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in goroutine
	go func() {
		serverLog.WithField("addr", addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLog.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	serverLog.Info("shutting down...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		serverLog.WithError(err).Error("HTTP server shutdown error")
	}

	if store != nil {
		if err := store.Close(); err != nil {
			serverLog.WithError(err).Error("error closing pebble database")
		}
	}

	serverLog.Info("server stopped")
}
