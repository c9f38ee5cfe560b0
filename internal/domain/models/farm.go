package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farm represents a farmer's location and crop selection. A farm owns its
// forecast window and advisory set; both are removed with the farm.
type Farm struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Latitude     float64             `bson:"latitude" json:"latitude"`
	Longitude    float64             `bson:"longitude" json:"longitude"`
	LocationName string              `bson:"location_name" json:"location_name"`
	CropID       *primitive.ObjectID `bson:"crop_id,omitempty" json:"-"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`

	// Crop is the resolved profile for CropID, attached at load time.
	// Nil when the farm has no crop selected.
	Crop *CropProfile `bson:"-" json:"crop,omitempty"`
}
