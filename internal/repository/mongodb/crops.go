package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
)

// EnsureCropCatalog upserts the given profiles, keyed by crop kind. Already
// seeded profiles are left untouched so manual tuning survives restarts.
func (r *Repository) EnsureCropCatalog(ctx context.Context, catalog []models.CropProfile) error {
	coll := r.collection(cropsCollection)

	for _, crop := range catalog {
		if err := crop.Validate(); err != nil {
			return fmt.Errorf("invalid catalog entry: %w", err)
		}

		filter := bson.M{"kind": crop.Kind}
		update := bson.M{"$setOnInsert": crop}
		opts := options.Update().SetUpsert(true)
		if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("seed crop %s: %w", crop.Kind, err)
		}
	}

	return nil
}

// ListCrops returns the full crop catalog.
func (r *Repository) ListCrops(ctx context.Context) ([]models.CropProfile, error) {
	cursor, err := r.collection(cropsCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "kind", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}

	var crops []models.CropProfile
	if err := cursor.All(ctx, &crops); err != nil {
		return nil, fmt.Errorf("decode crops: %w", err)
	}
	return crops, nil
}

// GetCrop fetches a single crop profile by id.
func (r *Repository) GetCrop(ctx context.Context, id primitive.ObjectID) (*models.CropProfile, error) {
	var crop models.CropProfile
	err := r.collection(cropsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&crop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get crop %s: %w", id.Hex(), err)
	}
	return &crop, nil
}
