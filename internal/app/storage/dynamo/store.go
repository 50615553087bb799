// Package dynamo provides the DynamoDB-backed PlantStore. The table holds one
// item per plant keyed by id; all writes are whole-item puts, so the partial
// update is a read-merge-write at this layer.
package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
	"github.com/ckonkol1/plant-tracker/internal/app/storage"
	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
)

// API is the subset of the DynamoDB client used by the store. Tests stub it.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements storage.PlantStore on DynamoDB.
type Store struct {
	client API
	table  string
	clock  storage.Clock
}

var _ storage.PlantStore = (*Store)(nil)

// Config holds explicit construction parameters.
type Config struct {
	Table    string
	Region   string
	Endpoint string // optional, for DynamoDB Local
}

// New creates a Store from Config using the default AWS credential chain.
func New(ctx context.Context, cfg Config, clock storage.Clock) (*Store, error) {
	if cfg.Table == "" {
		return nil, apperrors.Internal("dynamo table required", nil)
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, apperrors.Internal("failed to load AWS configuration", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewWithClient(client, cfg.Table, clock), nil
}

// NewWithClient creates a Store over an existing client. A nil clock defaults
// to time.Now in UTC.
func NewWithClient(client API, table string, clock storage.Clock) *Store {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Store{client: client, table: table, clock: clock}
}

// CreatePlant assigns a fresh id and timestamps and puts the full item.
func (s *Store) CreatePlant(ctx context.Context, p plant.Plant) (string, error) {
	p.ID = uuid.NewString()
	now := s.clock()
	p.CreatedAt = now
	p.ModifiedAt = now

	if err := s.put(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// GetPlant loads the item by id.
func (s *Store) GetPlant(ctx context.Context, id string) (plant.Plant, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return plant.Plant{}, apperrors.Internal("failed to load plant from the database", err)
	}
	if out.Item == nil {
		return plant.Plant{}, apperrors.NotFound("Plant Id: %s was not found", id)
	}

	var entity plantEntity
	if err := attributevalue.UnmarshalMap(out.Item, &entity); err != nil {
		return plant.Plant{}, apperrors.Mapping("failed to unmarshal plant "+id, err)
	}
	return entity.toPlant()
}

// ListPlants scans the whole table.
func (s *Store) ListPlants(ctx context.Context) ([]plant.Plant, error) {
	var (
		plants  []plant.Plant
		lastKey map[string]types.AttributeValue
	)

	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, apperrors.Internal("Failed to Connect to the Database.", err)
		}

		for _, item := range out.Items {
			var entity plantEntity
			if err := attributevalue.UnmarshalMap(item, &entity); err != nil {
				return nil, apperrors.Mapping("failed to unmarshal plant item", err)
			}
			p, err := entity.toPlant()
			if err != nil {
				return nil, err
			}
			plants = append(plants, p)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return plants, nil
}

// UpdatePlant loads the current item, merges the supplied fields over it and
// puts the whole merged item back. Two concurrent updates to the same id race
// last-writer-wins; there is no conditional write guarding the sequence.
func (s *Store) UpdatePlant(ctx context.Context, p plant.Plant) (plant.Plant, error) {
	existing, err := s.GetPlant(ctx, p.ID)
	if err != nil {
		return plant.Plant{}, err
	}

	merged := storage.Merge(existing, p)
	merged.CreatedAt = existing.CreatedAt
	merged.ModifiedAt = s.clock()

	if err := s.put(ctx, merged); err != nil {
		return plant.Plant{}, err
	}
	return merged, nil
}

// DeletePlant deletes the item unconditionally; missing ids are a no-op.
func (s *Store) DeletePlant(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return apperrors.Internal("failed to delete plant from the database", err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, p plant.Plant) error {
	item, err := attributevalue.MarshalMap(toEntity(p))
	if err != nil {
		return apperrors.Mapping("failed to marshal plant "+p.ID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return apperrors.Internal("failed to save plant to the database", err)
	}
	return nil
}
