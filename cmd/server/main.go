// Command server runs the plant tracker HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ckonkol1/plant-tracker/internal/app"
	"github.com/ckonkol1/plant-tracker/internal/config"
	"github.com/ckonkol1/plant-tracker/internal/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := os.Getenv("PLANT_TRACKER_CONFIG")
	if configPath == "" {
		configPath = "config/server.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.NewDefault("server").WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	log := logging.New("plant-tracker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg.Storage)
	if err != nil {
		log.WithError(err).Error("failed to open plant store")
		os.Exit(1)
	}
	log.WithField("driver", cfg.Storage.Driver).Info("plant store opened")

	application := app.New(app.Stores{Plants: store}, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      application.Router(cfg),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown failed")
	}
}
