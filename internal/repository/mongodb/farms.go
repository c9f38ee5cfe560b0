package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
)

// CreateFarm inserts a new farm and returns it with its assigned id.
func (r *Repository) CreateFarm(ctx context.Context, farm models.Farm) (models.Farm, error) {
	now := time.Now().UTC()
	farm.ID = primitive.NewObjectID()
	farm.CreatedAt = now
	farm.UpdatedAt = now

	if _, err := r.collection(farmsCollection).InsertOne(ctx, farm); err != nil {
		return models.Farm{}, fmt.Errorf("insert farm: %w", err)
	}
	return farm, nil
}

// ListFarms returns all farms, newest first.
func (r *Repository) ListFarms(ctx context.Context) ([]models.Farm, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(farmsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}

	var farms []models.Farm
	if err := cursor.All(ctx, &farms); err != nil {
		return nil, fmt.Errorf("decode farms: %w", err)
	}
	return farms, nil
}

// GetFarm fetches a farm by id.
func (r *Repository) GetFarm(ctx context.Context, id primitive.ObjectID) (*models.Farm, error) {
	var farm models.Farm
	err := r.collection(farmsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&farm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get farm %s: %w", id.Hex(), err)
	}
	return &farm, nil
}

// DeleteFarm removes a farm together with its cached observations and
// advisories.
func (r *Repository) DeleteFarm(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(farmsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete farm %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	if _, err := r.collection(weatherCollection).DeleteMany(ctx, bson.M{"farm_id": id}); err != nil {
		return fmt.Errorf("delete farm %s observations: %w", id.Hex(), err)
	}
	if _, err := r.collection(advisoriesCollection).DeleteMany(ctx, bson.M{"farm_id": id}); err != nil {
		return fmt.Errorf("delete farm %s advisories: %w", id.Hex(), err)
	}

	return nil
}
