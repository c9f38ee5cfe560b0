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

// SaveObservation stores a single current-conditions record.
func (r *Repository) SaveObservation(ctx context.Context, obs models.WeatherObservation) error {
	obs.ID = primitive.NewObjectID()
	if _, err := r.collection(weatherCollection).InsertOne(ctx, obs); err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// ReplaceForecast drops every stored observation for the farm from the given
// instant onwards and inserts the fresh forecast rows.
func (r *Repository) ReplaceForecast(ctx context.Context, farmID primitive.ObjectID, from time.Time, window []models.WeatherObservation) error {
	coll := r.collection(weatherCollection)

	filter := bson.M{"farm_id": farmID, "timestamp": bson.M{"$gte": from}}
	if _, err := coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("clear forecast for farm %s: %w", farmID.Hex(), err)
	}

	if len(window) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(window))
	for _, obs := range window {
		obs.ID = primitive.NewObjectID()
		obs.FarmID = farmID
		docs = append(docs, obs)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert forecast for farm %s: %w", farmID.Hex(), err)
	}

	return nil
}

// LatestObservation returns the most recent record at or before the given
// instant, or ErrNotFound when the farm has no past observations.
func (r *Repository) LatestObservation(ctx context.Context, farmID primitive.ObjectID, at time.Time) (*models.WeatherObservation, error) {
	filter := bson.M{"farm_id": farmID, "timestamp": bson.M{"$lte": at}}
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var obs models.WeatherObservation
	err := r.collection(weatherCollection).FindOne(ctx, filter, opts).Decode(&obs)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest observation for farm %s: %w", farmID.Hex(), err)
	}
	return &obs, nil
}

// ForecastWindow returns up to limit observations from the given instant
// onwards, ordered by timestamp ascending.
func (r *Repository) ForecastWindow(ctx context.Context, farmID primitive.ObjectID, from time.Time, limit int) ([]models.WeatherObservation, error) {
	filter := bson.M{"farm_id": farmID, "timestamp": bson.M{"$gte": from}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection(weatherCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("forecast window for farm %s: %w", farmID.Hex(), err)
	}

	var window []models.WeatherObservation
	if err := cursor.All(ctx, &window); err != nil {
		return nil, fmt.Errorf("decode forecast window: %w", err)
	}
	return window, nil
}
