package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CropKind identifies one of the supported crop types.
type CropKind string

const (
	CropTomato  CropKind = "TOMATO"
	CropPotato  CropKind = "POTATO"
	CropPepper  CropKind = "PEPPER"
	CropWheat   CropKind = "WHEAT"
	CropRice    CropKind = "RICE"
	CropCorn    CropKind = "CORN"
	CropCotton  CropKind = "COTTON"
	CropSoybean CropKind = "SOYBEAN"
)

// WaterRequirement classifies how much irrigation a crop needs.
type WaterRequirement string

const (
	WaterLow    WaterRequirement = "LOW"
	WaterMedium WaterRequirement = "MEDIUM"
	WaterHigh   WaterRequirement = "HIGH"
)

// CropProfile is the tolerance envelope for a crop type. Profiles are seeded
// reference data, shared by farms and read-only at insight-generation time.
type CropProfile struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind               CropKind           `bson:"kind" json:"kind"`
	Label              string             `bson:"label" json:"name"`
	OptimalTempMin     float64            `bson:"optimal_temp_min" json:"optimal_temp_min"`
	OptimalTempMax     float64            `bson:"optimal_temp_max" json:"optimal_temp_max"`
	OptimalHumidityMin float64            `bson:"optimal_humidity_min" json:"optimal_humidity_min"`
	OptimalHumidityMax float64            `bson:"optimal_humidity_max" json:"optimal_humidity_max"`
	WaterRequirement   WaterRequirement   `bson:"water_requirement" json:"water_requirement"`
	FrostTolerant      bool               `bson:"frost_tolerant" json:"frost_tolerant"`
	GrowingSeasonDays  int                `bson:"growing_season_days" json:"growing_season_days"`
}

// Validate checks the range invariants of the profile.
func (c CropProfile) Validate() error {
	if c.Kind == "" {
		return fmt.Errorf("crop profile missing kind")
	}
	if c.OptimalTempMin > c.OptimalTempMax {
		return fmt.Errorf("crop %s: optimal temp min %.1f exceeds max %.1f", c.Kind, c.OptimalTempMin, c.OptimalTempMax)
	}
	if c.OptimalHumidityMin > c.OptimalHumidityMax {
		return fmt.Errorf("crop %s: optimal humidity min %.1f exceeds max %.1f", c.Kind, c.OptimalHumidityMin, c.OptimalHumidityMax)
	}
	return nil
}

// DefaultCropCatalog returns the seeded tolerance profiles for the eight
// supported crops.
func DefaultCropCatalog() []CropProfile {
	return []CropProfile{
		{Kind: CropTomato, Label: "Tomato", OptimalTempMin: 18, OptimalTempMax: 29, OptimalHumidityMin: 60, OptimalHumidityMax: 80, WaterRequirement: WaterMedium, FrostTolerant: false, GrowingSeasonDays: 75},
		{Kind: CropPotato, Label: "Potato", OptimalTempMin: 15, OptimalTempMax: 20, OptimalHumidityMin: 70, OptimalHumidityMax: 85, WaterRequirement: WaterMedium, FrostTolerant: true, GrowingSeasonDays: 90},
		{Kind: CropPepper, Label: "Pepper (Bell)", OptimalTempMin: 20, OptimalTempMax: 30, OptimalHumidityMin: 60, OptimalHumidityMax: 75, WaterRequirement: WaterMedium, FrostTolerant: false, GrowingSeasonDays: 70},
		{Kind: CropWheat, Label: "Wheat", OptimalTempMin: 12, OptimalTempMax: 25, OptimalHumidityMin: 50, OptimalHumidityMax: 70, WaterRequirement: WaterLow, FrostTolerant: true, GrowingSeasonDays: 120},
		{Kind: CropRice, Label: "Rice", OptimalTempMin: 20, OptimalTempMax: 35, OptimalHumidityMin: 80, OptimalHumidityMax: 90, WaterRequirement: WaterHigh, FrostTolerant: false, GrowingSeasonDays: 120},
		{Kind: CropCorn, Label: "Corn", OptimalTempMin: 18, OptimalTempMax: 32, OptimalHumidityMin: 60, OptimalHumidityMax: 75, WaterRequirement: WaterMedium, FrostTolerant: false, GrowingSeasonDays: 90},
		{Kind: CropCotton, Label: "Cotton", OptimalTempMin: 21, OptimalTempMax: 35, OptimalHumidityMin: 50, OptimalHumidityMax: 65, WaterRequirement: WaterMedium, FrostTolerant: false, GrowingSeasonDays: 150},
		{Kind: CropSoybean, Label: "Soybean", OptimalTempMin: 20, OptimalTempMax: 30, OptimalHumidityMin: 60, OptimalHumidityMax: 75, WaterRequirement: WaterMedium, FrostTolerant: false, GrowingSeasonDays: 100},
	}
}
