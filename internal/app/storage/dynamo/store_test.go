package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/ckonkol1/plant-tracker/internal/app/domain/plant"
	apperrors "github.com/ckonkol1/plant-tracker/internal/errors"
)

// fakeClient stores items in a map and mimics the DynamoDB calls the store
// issues. Setting err makes every call fail.
type fakeClient struct {
	items map[string]map[string]types.AttributeValue
	err   error
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := params.Item["id"].(*types.AttributeValueMemberS).Value
	f.items[id] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeClient) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &dynamodb.ScanOutput{}
	for _, item := range f.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func fixedClock() func() time.Time {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		t := base.Add(time.Duration(calls) * time.Second)
		calls++
		return t
	}
}

func intPtr(v int) *int { return &v }

func seedPlant() plant.Plant {
	return plant.Plant{
		CommonName:     "Rose",
		ScientificName: "Rosa rubiginosa",
		Age:            intPtr(2),
		Duration:       plant.DurationPerennial,
		URL:            plant.UsdaProfileURLPrefix + "/ROSA",
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	store := NewWithClient(newFakeClient(), "plants", fixedClock())
	ctx := context.Background()

	id, err := store.CreatePlant(ctx, seedPlant())
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetPlant(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.CommonName != "Rose" || got.Duration != plant.DurationPerennial || *got.Age != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if !got.CreatedAt.Equal(got.ModifiedAt) {
		t.Fatalf("fresh timestamps differ: %v vs %v", got.CreatedAt, got.ModifiedAt)
	}
}

func TestGetMissingItem(t *testing.T) {
	store := NewWithClient(newFakeClient(), "plants", nil)

	_, err := store.GetPlant(context.Background(), uuid.NewString())
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestInvalidStoredDurationReadsAsUnknown(t *testing.T) {
	client := newFakeClient()
	store := NewWithClient(client, "plants", fixedClock())
	ctx := context.Background()

	id, err := store.CreatePlant(ctx, seedPlant())
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the stored duration out of band.
	client.items[id]["duration"] = &types.AttributeValueMemberS{Value: "Biennial"}

	got, err := store.GetPlant(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Duration != plant.DurationUnknown {
		t.Fatalf("corrupt duration must read as Unknown, got %v", got.Duration)
	}
}

func TestCorruptTimestampIsMappingError(t *testing.T) {
	client := newFakeClient()
	store := NewWithClient(client, "plants", fixedClock())
	ctx := context.Background()

	id, err := store.CreatePlant(ctx, seedPlant())
	if err != nil {
		t.Fatal(err)
	}
	client.items[id]["createdAt"] = &types.AttributeValueMemberS{Value: "yesterday"}

	_, err = store.GetPlant(ctx, id)
	svcErr := apperrors.GetServiceError(err)
	if svcErr == nil || svcErr.Code != apperrors.CodeMapping {
		t.Fatalf("expected mapping error, got %v", err)
	}
}

func TestListPlants(t *testing.T) {
	store := NewWithClient(newFakeClient(), "plants", fixedClock())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.CreatePlant(ctx, seedPlant()); err != nil {
			t.Fatal(err)
		}
	}

	plants, err := store.ListPlants(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(plants) != 3 {
		t.Fatalf("expected 3 items, got %d", len(plants))
	}
}

func TestListScanFailure(t *testing.T) {
	client := newFakeClient()
	client.err = errors.New("connection reset")
	store := NewWithClient(client, "plants", nil)

	_, err := store.ListPlants(context.Background())
	svcErr := apperrors.GetServiceError(err)
	if svcErr == nil || svcErr.Code != apperrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestUpdateMergesOverStoredItem(t *testing.T) {
	store := NewWithClient(newFakeClient(), "plants", fixedClock())
	ctx := context.Background()

	id, err := store.CreatePlant(ctx, seedPlant())
	if err != nil {
		t.Fatal(err)
	}
	created, _ := store.GetPlant(ctx, id)

	merged, err := store.UpdatePlant(ctx, plant.Plant{
		ID:       id,
		Duration: plant.DurationFromPayload(""),
		Age:      intPtr(9),
	})
	if err != nil {
		t.Fatal(err)
	}
	if merged.Duration != plant.DurationPerennial {
		t.Fatalf("undefined duration overwrote stored value: %v", merged.Duration)
	}
	if *merged.Age != 9 || merged.CommonName != "Rose" {
		t.Fatalf("unexpected merge result: %+v", merged)
	}
	if !merged.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v vs %v", merged.CreatedAt, created.CreatedAt)
	}
	if !merged.ModifiedAt.After(created.ModifiedAt) {
		t.Fatalf("ModifiedAt did not advance")
	}
}

func TestUpdateMissingItem(t *testing.T) {
	store := NewWithClient(newFakeClient(), "plants", nil)

	_, err := store.UpdatePlant(context.Background(), plant.Plant{ID: uuid.NewString()})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store := NewWithClient(newFakeClient(), "plants", fixedClock())
	ctx := context.Background()

	id, err := store.CreatePlant(ctx, seedPlant())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeletePlant(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := store.DeletePlant(ctx, id); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
}

func TestEntityMarshalShape(t *testing.T) {
	p := seedPlant()
	p.ID = "abc"
	p.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p.ModifiedAt = p.CreatedAt

	item, err := attributevalue.MarshalMap(toEntity(p))
	if err != nil {
		t.Fatal(err)
	}
	if got := item["duration"].(*types.AttributeValueMemberS).Value; got != "Perennial" {
		t.Fatalf("duration stored as %q", got)
	}
	if got := item["createdAt"].(*types.AttributeValueMemberS).Value; got != "2024-03-01T12:00:00Z" {
		t.Fatalf("createdAt stored as %q", got)
	}
}
