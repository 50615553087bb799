// Package storage defines the persistence contract for plant records.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
)

// Clock supplies the current time. Stores take it explicitly so tests can pin
// timestamps.
type Clock func() time.Time

// PlantStore persists plant records in a key-value backend addressed by id.
// The backend only supports whole-item writes; partial-update semantics are
// implemented by the stores as read-merge-write, which makes two concurrent
// updates to the same id a last-writer-wins race.
type PlantStore interface {
	// CreatePlant assigns a fresh id and both timestamps, persists the full
	// record and returns the generated id.
	CreatePlant(ctx context.Context, p plant.Plant) (string, error)

	// GetPlant returns the record by id, or a not-found error when absent.
	GetPlant(ctx context.Context, id string) (plant.Plant, error)

	// ListPlants returns every stored record.
	ListPlants(ctx context.Context) ([]plant.Plant, error)

	// UpdatePlant loads the record for p.ID, merges the supplied fields over
	// it (empty fields keep the stored value), stamps ModifiedAt and writes
	// the whole merged record back. Missing ids are a not-found error; there
	// are no upsert semantics.
	UpdatePlant(ctx context.Context, p plant.Plant) (plant.Plant, error)

	// DeletePlant removes the record unconditionally. Deleting a missing id
	// is not an error.
	DeletePlant(ctx context.Context, id string) error
}

// Merge applies the field-level merge rules shared by every backend: string
// fields overwrite only when non-whitespace, duration only when defined and
// different, age only when explicitly provided. Timestamps are untouched;
// the caller stamps ModifiedAt.
func Merge(existing, incoming plant.Plant) plant.Plant {
	merged := existing

	if hasText(incoming.CommonName) {
		merged.CommonName = incoming.CommonName
	}
	if hasText(incoming.ScientificName) {
		merged.ScientificName = incoming.ScientificName
	}
	if incoming.Duration.Defined() && incoming.Duration != existing.Duration {
		merged.Duration = incoming.Duration
	}
	if hasText(incoming.URL) {
		merged.URL = incoming.URL
	}
	if incoming.Age != nil {
		age := *incoming.Age
		merged.Age = &age
	}

	return merged
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
