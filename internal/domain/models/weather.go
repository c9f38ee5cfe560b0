package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeatherObservation is a single cached weather record for a farm, either the
// current conditions or one 3-hour forecast step. Observations are ordered by
// timestamp ascending within a farm.
type WeatherObservation struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmID        primitive.ObjectID `bson:"farm_id" json:"-"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	Temperature   float64            `bson:"temperature" json:"temperature"`
	FeelsLike     float64            `bson:"feels_like" json:"feels_like"`
	Humidity      float64            `bson:"humidity" json:"humidity"`
	Pressure      float64            `bson:"pressure" json:"pressure"`
	WindSpeed     float64            `bson:"wind_speed" json:"wind_speed"`
	Precipitation float64            `bson:"precipitation" json:"precipitation"`
	Condition     string             `bson:"condition" json:"weather_condition"`
	Description   string             `bson:"description" json:"weather_description"`
	Clouds        float64            `bson:"clouds" json:"clouds"`
	FetchedAt     time.Time          `bson:"fetched_at" json:"-"`
}
