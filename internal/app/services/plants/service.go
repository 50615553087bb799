// Package plants provides the application service over the plant store. It
// carries no business rules of its own: it forwards to the store and maps
// domain records to their API projections.
package plants

import (
	"context"
	"strings"
	"time"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
	"github.com/ckonkol1/plant-tracker/internal/app/storage"
	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
	"github.com/ckonkol1/plant-tracker/internal/logging"
	"github.com/ckonkol1/plant-tracker/internal/metrics"
)

// Service adapts the plant store for the HTTP layer.
type Service struct {
	store storage.PlantStore
	log   *logging.Logger
}

// New creates a plant service backed by the provided store.
func New(store storage.PlantStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("plants")
	}
	return &Service{store: store, log: log}
}

// GetAll returns every stored plant as a response projection.
func (s *Service) GetAll(ctx context.Context) ([]plant.Response, error) {
	start := time.Now()
	records, err := s.store.ListPlants(ctx)
	metrics.RecordStoreOperation("list", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	result := make([]plant.Response, 0, len(records))
	for _, p := range records {
		result = append(result, p.ToResponse())
	}
	return result, nil
}

// GetByID returns the plant with the given id.
func (s *Service) GetByID(ctx context.Context, id string) (plant.Response, error) {
	if strings.TrimSpace(id) == "" {
		return plant.Response{}, apperrors.BadArgument("plant id is required")
	}

	start := time.Now()
	p, err := s.store.GetPlant(ctx, id)
	metrics.RecordStoreOperation("get", err, time.Since(start))
	if err != nil {
		return plant.Response{}, err
	}
	return p.ToResponse(), nil
}

// Create persists a new plant and returns its generated id.
func (s *Service) Create(ctx context.Context, p plant.Plant) (string, error) {
	start := time.Now()
	id, err := s.store.CreatePlant(ctx, p)
	metrics.RecordStoreOperation("create", err, time.Since(start))
	if err != nil {
		return "", err
	}

	s.log.WithContext(ctx).WithField("plant_id", id).Info("plant created")
	return id, nil
}

// Update merges the supplied fields into the stored plant and returns the
// merged projection.
func (s *Service) Update(ctx context.Context, p plant.Plant) (plant.Response, error) {
	if strings.TrimSpace(p.ID) == "" {
		return plant.Response{}, apperrors.BadArgument("plant id is required")
	}

	start := time.Now()
	merged, err := s.store.UpdatePlant(ctx, p)
	metrics.RecordStoreOperation("update", err, time.Since(start))
	if err != nil {
		return plant.Response{}, err
	}

	s.log.WithContext(ctx).WithField("plant_id", p.ID).Info("plant updated")
	return merged.ToResponse(), nil
}

// Delete removes the plant with the given id. Missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.BadArgument("plant id is required")
	}

	start := time.Now()
	err := s.store.DeletePlant(ctx, id)
	metrics.RecordStoreOperation("delete", err, time.Since(start))
	if err != nil {
		return err
	}

	s.log.WithContext(ctx).WithField("plant_id", id).Info("plant deleted")
	return nil
}
