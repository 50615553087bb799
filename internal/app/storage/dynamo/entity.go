package dynamo

import (
	"time"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
)

// timestampFormat is the fixed string layout for persisted timestamps.
const timestampFormat = time.RFC3339Nano

// plantEntity is the persisted table row. Duration is stored as its member
// name and timestamps as fixed-format strings, matching the single-table
// layout with id as the partition key.
type plantEntity struct {
	ID             string `dynamodbav:"id"`
	CommonName     string `dynamodbav:"commonName"`
	ScientificName string `dynamodbav:"scientificName"`
	Age            int    `dynamodbav:"age"`
	Duration       string `dynamodbav:"duration"`
	URL            string `dynamodbav:"url"`
	CreatedAt      string `dynamodbav:"createdAt"`
	ModifiedAt     string `dynamodbav:"modifiedAt"`
}

func toEntity(p plant.Plant) plantEntity {
	age := 0
	if p.Age != nil {
		age = *p.Age
	}
	return plantEntity{
		ID:             p.ID,
		CommonName:     p.CommonName,
		ScientificName: p.ScientificName,
		Age:            age,
		Duration:       p.Duration.String(),
		URL:            p.URL,
		CreatedAt:      p.CreatedAt.UTC().Format(timestampFormat),
		ModifiedAt:     p.ModifiedAt.UTC().Format(timestampFormat),
	}
}

func (e plantEntity) toPlant() (plant.Plant, error) {
	createdAt, err := time.Parse(timestampFormat, e.CreatedAt)
	if err != nil {
		return plant.Plant{}, apperrors.Mapping("failed to parse createdAt for plant "+e.ID, err)
	}
	modifiedAt, err := time.Parse(timestampFormat, e.ModifiedAt)
	if err != nil {
		return plant.Plant{}, apperrors.Mapping("failed to parse modifiedAt for plant "+e.ID, err)
	}

	age := e.Age
	return plant.Plant{
		ID:             e.ID,
		CommonName:     e.CommonName,
		ScientificName: e.ScientificName,
		Age:            &age,
		// Invalid stored values degrade to Unknown instead of failing the read.
		Duration:   plant.DurationFromStorage(e.Duration),
		URL:        e.URL,
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
	}, nil
}
