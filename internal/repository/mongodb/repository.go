// Package mongodb persists farms, the crop catalog, cached weather
// observations and generated advisories.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

const (
	farmsCollection      = "farms"
	cropsCollection      = "crops"
	weatherCollection    = "weather_observations"
	advisoriesCollection = "advisories"
)

// Repository implements all storage operations on top of MongoDB.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &Repository{client: client, dbName: dbName}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	weatherIdx := mongo.IndexModel{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "timestamp", Value: 1}}}
	if _, err := r.collection(weatherCollection).Indexes().CreateOne(ctx, weatherIdx); err != nil {
		return fmt.Errorf("create weather index: %w", err)
	}

	advisoryIdx := mongo.IndexModel{Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "valid_until", Value: 1}}}
	if _, err := r.collection(advisoriesCollection).Indexes().CreateOne(ctx, advisoryIdx); err != nil {
		return fmt.Errorf("create advisory index: %w", err)
	}

	cropIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "kind", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection(cropsCollection).Indexes().CreateOne(ctx, cropIdx); err != nil {
		return fmt.Errorf("create crop index: %w", err)
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
