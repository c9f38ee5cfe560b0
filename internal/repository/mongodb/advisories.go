package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
)

var advisoryDisplaySort = bson.D{{Key: "priority", Value: -1}, {Key: "valid_from", Value: 1}}

// ReplaceForFarm deletes every advisory stored for the farm, expired or not,
// and inserts the freshly generated set. Regeneration is a full replace so a
// farm never accumulates stale advisories.
func (r *Repository) ReplaceForFarm(ctx context.Context, farmID primitive.ObjectID, advisories []models.Advisory) error {
	coll := r.collection(advisoriesCollection)

	if _, err := coll.DeleteMany(ctx, bson.M{"farm_id": farmID}); err != nil {
		return fmt.Errorf("clear advisories for farm %s: %w", farmID.Hex(), err)
	}

	if len(advisories) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(advisories))
	for _, advisory := range advisories {
		advisory.ID = primitive.NewObjectID()
		advisory.FarmID = farmID
		docs = append(docs, advisory)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert advisories for farm %s: %w", farmID.Hex(), err)
	}

	return nil
}

// ActiveAdvisories returns the still-valid advisories for a farm, sorted by
// priority descending then valid_from ascending.
func (r *Repository) ActiveAdvisories(ctx context.Context, farmID primitive.ObjectID, now time.Time, limit int) ([]models.Advisory, error) {
	filter := bson.M{"farm_id": farmID, "valid_until": bson.M{"$gte": now}}
	opts := options.Find().SetSort(advisoryDisplaySort)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection(advisoriesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("active advisories for farm %s: %w", farmID.Hex(), err)
	}

	var advisories []models.Advisory
	if err := cursor.All(ctx, &advisories); err != nil {
		return nil, fmt.Errorf("decode advisories: %w", err)
	}
	return advisories, nil
}

// ListAdvisories returns every stored advisory for a farm in display order.
func (r *Repository) ListAdvisories(ctx context.Context, farmID primitive.ObjectID) ([]models.Advisory, error) {
	cursor, err := r.collection(advisoriesCollection).Find(ctx, bson.M{"farm_id": farmID}, options.Find().SetSort(advisoryDisplaySort))
	if err != nil {
		return nil, fmt.Errorf("list advisories for farm %s: %w", farmID.Hex(), err)
	}

	var advisories []models.Advisory
	if err := cursor.All(ctx, &advisories); err != nil {
		return nil, fmt.Errorf("decode advisories: %w", err)
	}
	return advisories, nil
}
