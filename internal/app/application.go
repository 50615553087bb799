// Package app wires the plant service, its store and the HTTP router into a
// runnable application.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ckonkol1/plant-tracker/internal/app/httpapi"
	"github.com/ckonkol1/plant-tracker/internal/app/services/plants"
	"github.com/ckonkol1/plant-tracker/internal/app/storage"
	"github.com/ckonkol1/plant-tracker/internal/app/storage/dynamo"
	"github.com/ckonkol1/plant-tracker/internal/app/storage/memory"
	"github.com/ckonkol1/plant-tracker/internal/config"
	"github.com/ckonkol1/plant-tracker/internal/logging"
)

// Stores encapsulates persistence dependencies. A nil store defaults to the
// in-memory implementation.
type Stores struct {
	Plants storage.PlantStore
}

// Application ties the plant service together with its HTTP surface.
type Application struct {
	log *logging.Logger

	Plants *plants.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logging.Logger) *Application {
	if log == nil {
		log = logging.NewDefault("app")
	}
	if stores.Plants == nil {
		stores.Plants = memory.New(nil)
	}

	return &Application{
		log:    log,
		Plants: plants.New(stores.Plants, log),
	}
}

// OpenStore selects a PlantStore implementation from the storage
// configuration. Supported drivers: dynamo, memory.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (storage.PlantStore, error) {
	switch cfg.Driver {
	case "dynamo":
		return dynamo.New(ctx, dynamo.Config{
			Table:    cfg.Table,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		}, nil)
	case "memory", "":
		return memory.New(nil), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Router returns the HTTP handler exposing the application.
func (a *Application) Router(cfg *config.Config) http.Handler {
	return httpapi.NewRouter(a.Plants, a.log, httpapi.Options{
		JWTSecret:       []byte(cfg.Auth.JWTSecret),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
	})
}
