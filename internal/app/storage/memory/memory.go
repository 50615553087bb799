// Package memory provides an in-memory PlantStore. It is safe for concurrent
// use and is primarily intended for tests and local development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
	"github.com/ckonkol1/plant-tracker/internal/app/storage"
	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
)

// Store is the in-memory PlantStore implementation.
type Store struct {
	mu     sync.RWMutex
	plants map[string]plant.Plant
	clock  storage.Clock
}

var _ storage.PlantStore = (*Store)(nil)

// New creates an empty store. A nil clock defaults to time.Now in UTC.
func New(clock storage.Clock) *Store {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Store{
		plants: make(map[string]plant.Plant),
		clock:  clock,
	}
}

// CreatePlant assigns a fresh id and timestamps and stores the record.
func (s *Store) CreatePlant(_ context.Context, p plant.Plant) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	now := s.clock()
	p.CreatedAt = now
	p.ModifiedAt = now
	p.Age = cloneAge(p.Age)

	s.plants[p.ID] = p
	return p.ID, nil
}

// GetPlant returns the record by id.
func (s *Store) GetPlant(_ context.Context, id string) (plant.Plant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plants[id]
	if !ok {
		return plant.Plant{}, apperrors.NotFound("Plant Id: %s was not found", id)
	}
	return clonePlant(p), nil
}

// ListPlants returns every stored record.
func (s *Store) ListPlants(_ context.Context) ([]plant.Plant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]plant.Plant, 0, len(s.plants))
	for _, p := range s.plants {
		result = append(result, clonePlant(p))
	}
	return result, nil
}

// UpdatePlant merges the supplied fields over the stored record and writes
// the whole merged record back.
func (s *Store) UpdatePlant(_ context.Context, p plant.Plant) (plant.Plant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.plants[p.ID]
	if !ok {
		return plant.Plant{}, apperrors.NotFound("Plant With Id %s was not found", p.ID)
	}

	merged := storage.Merge(existing, p)
	merged.CreatedAt = existing.CreatedAt
	merged.ModifiedAt = s.clock()

	s.plants[merged.ID] = merged
	return clonePlant(merged), nil
}

// DeletePlant removes the record; deleting a missing id is a no-op.
func (s *Store) DeletePlant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.plants, id)
	return nil
}

func clonePlant(p plant.Plant) plant.Plant {
	p.Age = cloneAge(p.Age)
	return p
}

func cloneAge(age *int) *int {
	if age == nil {
		return nil
	}
	v := *age
	return &v
}
