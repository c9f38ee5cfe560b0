// Package insight derives rule-based farming recommendations from a crop's
// tolerance profile and a farm's forecast window.
package insight

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
)

// AdvisoryStore persists the output of a generation pass. ReplaceForFarm must
// delete every advisory stored for the farm before inserting the new set.
type AdvisoryStore interface {
	ReplaceForFarm(ctx context.Context, farmID primitive.ObjectID, advisories []models.Advisory) error
}

const (
	rainyDayThresholdMM  = 2.0
	rainyDaysForSkip     = 3
	offRangeObsThreshold = 3
	frostThresholdC      = 2.0
	highWindThresholdMS  = 15.0
	drySpellRainMM       = 5.0
	drySpellHumidityPct  = 60.0

	plantingSliceLen = 8  // ~1 day at 3-hour granularity
	wateringSliceLen = 24 // ~3 days

	defaultValidity   = 5 * 24 * time.Hour
	shortValidity     = 3 * 24 * time.Hour
	rainyDayKeyLayout = "2006-01-02"
)

// Generator evaluates forecast windows against crop profiles and replaces the
// farm's stored advisory set with the result.
type Generator struct {
	store  AdvisoryStore
	logger *zap.Logger
	now    func() time.Time

	locks sync.Map // farm id hex -> *sync.Mutex
}

// NewGenerator wires a new insight generator.
func NewGenerator(store AdvisoryStore, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Generate runs all rule evaluators over the forecast window and atomically
// replaces the farm's stored advisories with the result. The window must be
// ordered by timestamp ascending. A farm without a crop profile or an empty
// window is a no-op: nothing is generated and existing advisories are kept.
func (g *Generator) Generate(ctx context.Context, farm models.Farm, window []models.WeatherObservation) ([]models.Advisory, error) {
	if farm.Crop == nil {
		g.logger.Debug("farm has no crop profile, skipping insights", zap.String("farm_id", farm.ID.Hex()))
		return nil, nil
	}
	if len(window) == 0 {
		g.logger.Debug("empty forecast window, skipping insights", zap.String("farm_id", farm.ID.Hex()))
		return nil, nil
	}

	// Concurrent passes for the same farm would interleave the delete+insert
	// pair, so the whole pass holds a per-farm lock.
	mu := g.farmLock(farm.ID)
	mu.Lock()
	defer mu.Unlock()

	now := g.now()
	crop := *farm.Crop

	var advisories []models.Advisory
	advisories = append(advisories, g.checkRainfall(farm, crop, window, now)...)
	advisories = append(advisories, g.checkTemperature(farm, crop, window, now)...)
	advisories = append(advisories, g.checkFrost(farm, crop, window, now)...)
	advisories = append(advisories, g.checkPlantingWindow(farm, crop, window, now)...)
	advisories = append(advisories, g.checkWateringNeeds(farm, crop, window, now)...)

	if err := g.store.ReplaceForFarm(ctx, farm.ID, advisories); err != nil {
		return nil, fmt.Errorf("replace advisories for farm %s: %w", farm.ID.Hex(), err)
	}

	g.logger.Info("insights generated",
		zap.String("farm_id", farm.ID.Hex()),
		zap.String("crop", string(crop.Kind)),
		zap.Int("observations", len(window)),
		zap.Int("advisories", len(advisories)))

	return advisories, nil
}

func (g *Generator) farmLock(farmID primitive.ObjectID) *sync.Mutex {
	v, _ := g.locks.LoadOrStore(farmID.Hex(), &sync.Mutex{})
	return v.(*sync.Mutex)
}

// checkRainfall counts rainy calendar dates across the whole window. A date is
// rainy when its summed precipitation exceeds 2mm or any of its observations
// reports a rain condition. Three or more rainy dates suggest skipping
// irrigation; zero suggest regular irrigation. One or two rainy dates emit
// nothing.
func (g *Generator) checkRainfall(farm models.Farm, crop models.CropProfile, window []models.WeatherObservation, now time.Time) []models.Advisory {
	type dayWeather struct {
		precipitation float64
		rainCondition bool
	}

	days := make(map[string]*dayWeather)
	for _, obs := range window {
		key := obs.Timestamp.Format(rainyDayKeyLayout)
		day, ok := days[key]
		if !ok {
			day = &dayWeather{}
			days[key] = day
		}
		day.precipitation += obs.Precipitation
		if strings.Contains(strings.ToLower(obs.Condition), "rain") {
			day.rainCondition = true
		}
	}

	rainyDays := 0
	for _, day := range days {
		if day.precipitation > rainyDayThresholdMM || day.rainCondition {
			rainyDays++
		}
	}

	validUntil := windowEnd(window, now)

	switch {
	case rainyDays >= rainyDaysForSkip:
		return []models.Advisory{{
			FarmID: farm.ID,
			Kind:   models.AdvisoryWatering,
			Title:  "Heavy Rainfall Expected",
			Description: fmt.Sprintf("Rain is expected for %d days in the next 5 days. "+
				"You can skip irrigation during this period. Ensure proper drainage "+
				"to prevent waterlogging, especially for %s.", rainyDays, crop.Label),
			Priority:   models.PriorityMedium,
			ValidFrom:  now,
			ValidUntil: validUntil,
			CreatedAt:  now,
		}}
	case rainyDays == 0:
		return []models.Advisory{{
			FarmID: farm.ID,
			Kind:   models.AdvisoryWatering,
			Title:  "No Rainfall Expected",
			Description: fmt.Sprintf("No significant rainfall expected in the next 5 days. "+
				"Ensure regular irrigation for your %s crop. "+
				"Water requirement: %s.", crop.Label, crop.WaterRequirement),
			Priority:   models.PriorityMedium,
			ValidFrom:  now,
			ValidUntil: validUntil,
			CreatedAt:  now,
		}}
	default:
		// 1-2 rainy days are considered unremarkable.
		return nil
	}
}

// checkTemperature counts observations strictly outside the crop's optimal
// range over the whole window. High and low alerts fire independently.
func (g *Generator) checkTemperature(farm models.Farm, crop models.CropProfile, window []models.WeatherObservation, now time.Time) []models.Advisory {
	var highTempObs, lowTempObs int
	for _, obs := range window {
		if obs.Temperature > crop.OptimalTempMax {
			highTempObs++
		}
		if obs.Temperature < crop.OptimalTempMin {
			lowTempObs++
		}
	}

	validUntil := windowEnd(window, now)

	var advisories []models.Advisory
	if highTempObs >= offRangeObsThreshold {
		advisories = append(advisories, models.Advisory{
			FarmID: farm.ID,
			Kind:   models.AdvisoryWarning,
			Title:  "High Temperature Alert",
			Description: fmt.Sprintf("Temperatures above optimal range (%.1f°C) "+
				"expected for %d periods. Increase irrigation frequency "+
				"and consider shade protection for %s.", crop.OptimalTempMax, highTempObs, crop.Label),
			Priority:   models.PriorityHigh,
			ValidFrom:  now,
			ValidUntil: validUntil,
			CreatedAt:  now,
		})
	}
	if lowTempObs >= offRangeObsThreshold {
		advisories = append(advisories, models.Advisory{
			FarmID: farm.ID,
			Kind:   models.AdvisoryWarning,
			Title:  "Low Temperature Alert",
			Description: fmt.Sprintf("Temperatures below optimal range (%.1f°C) "+
				"expected for %d periods. Consider protective measures "+
				"for %s.", crop.OptimalTempMin, lowTempObs, crop.Label),
			Priority:   models.PriorityHigh,
			ValidFrom:  now,
			ValidUntil: validUntil,
			CreatedAt:  now,
		})
	}

	return advisories
}

// checkFrost warns when any observation drops below 2°C and the crop is not
// frost-tolerant.
func (g *Generator) checkFrost(farm models.Farm, crop models.CropProfile, window []models.WeatherObservation, now time.Time) []models.Advisory {
	if crop.FrostTolerant {
		return nil
	}

	frostRisk := false
	for _, obs := range window {
		if obs.Temperature < frostThresholdC {
			frostRisk = true
			break
		}
	}
	if !frostRisk {
		return nil
	}

	return []models.Advisory{{
		FarmID: farm.ID,
		Kind:   models.AdvisoryWarning,
		Title:  "Frost Risk Warning",
		Description: fmt.Sprintf("Frost conditions expected! %s is not frost-tolerant. "+
			"Take immediate protective measures: cover plants, use frost blankets, "+
			"or consider temporary heating solutions.", crop.Label),
		Priority:   models.PriorityHigh,
		ValidFrom:  now,
		ValidUntil: windowEnd(window, now),
		CreatedAt:  now,
	}}
}

// checkPlantingWindow judges the next day (first 8 observations) for sowing.
// Humidity-only or wind-only violations with temperature in range emit
// nothing.
func (g *Generator) checkPlantingWindow(farm models.Farm, crop models.CropProfile, window []models.WeatherObservation, now time.Time) []models.Advisory {
	slice := window
	if len(slice) > plantingSliceLen {
		slice = slice[:plantingSliceLen]
	}

	avgTemp := meanTemperature(slice)
	avgHumidity := meanHumidity(slice)

	tempGood := crop.OptimalTempMin <= avgTemp && avgTemp <= crop.OptimalTempMax
	humidityGood := crop.OptimalHumidityMin <= avgHumidity && avgHumidity <= crop.OptimalHumidityMax
	calmWinds := true
	for _, obs := range slice {
		if obs.WindSpeed > highWindThresholdMS {
			calmWinds = false
			break
		}
	}

	switch {
	case tempGood && humidityGood && calmWinds:
		return []models.Advisory{{
			FarmID: farm.ID,
			Kind:   models.AdvisoryPlanting,
			Title:  "Favorable Planting Conditions",
			Description: fmt.Sprintf("Current weather conditions are optimal for planting %s. "+
				"Temperature: %.1f°C, Humidity: %.1f%%. "+
				"Next few days look promising for seed germination.", crop.Label, avgTemp, avgHumidity),
			Priority:   models.PriorityMedium,
			ValidFrom:  now,
			ValidUntil: now.Add(shortValidity),
			CreatedAt:  now,
		}}
	case !tempGood:
		return []models.Advisory{{
			FarmID: farm.ID,
			Kind:   models.AdvisoryPlanting,
			Title:  "Wait for Better Temperature",
			Description: fmt.Sprintf("Current temperature (%.1f°C) is outside optimal range "+
				"(%.1f-%.1f°C) for %s. "+
				"Consider waiting for more favorable conditions.", avgTemp, crop.OptimalTempMin, crop.OptimalTempMax, crop.Label),
			Priority:   models.PriorityLow,
			ValidFrom:  now,
			ValidUntil: now.Add(shortValidity),
			CreatedAt:  now,
		}}
	default:
		return nil
	}
}

// checkWateringNeeds inspects the next three days (first 24 observations) and
// recommends extra irrigation for high-requirement crops facing a dry spell.
// Low and medium requirement crops are covered by the rainfall rule instead.
func (g *Generator) checkWateringNeeds(farm models.Farm, crop models.CropProfile, window []models.WeatherObservation, now time.Time) []models.Advisory {
	if crop.WaterRequirement != models.WaterHigh {
		return nil
	}

	slice := window
	if len(slice) > wateringSliceLen {
		slice = slice[:wateringSliceLen]
	}

	var totalRain float64
	for _, obs := range slice {
		totalRain += obs.Precipitation
	}
	avgHumidity := meanHumidity(slice)

	if totalRain >= drySpellRainMM || avgHumidity >= drySpellHumidityPct {
		return nil
	}

	return []models.Advisory{{
		FarmID: farm.ID,
		Kind:   models.AdvisoryWatering,
		Title:  "Increase Irrigation",
		Description: fmt.Sprintf("%s requires high water. With low rainfall (%.1fmm) "+
			"and humidity (%.1f%%) expected, increase irrigation frequency. "+
			"Best time: Early morning or evening.", crop.Label, totalRain, avgHumidity),
		Priority:   models.PriorityMedium,
		ValidFrom:  now,
		ValidUntil: now.Add(shortValidity),
		CreatedAt:  now,
	}}
}

// windowEnd returns the timestamp of the last observation, falling back to
// five days from now when the window is empty.
func windowEnd(window []models.WeatherObservation, now time.Time) time.Time {
	if len(window) == 0 {
		return now.Add(defaultValidity)
	}
	return window[len(window)-1].Timestamp
}

func meanTemperature(window []models.WeatherObservation) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, obs := range window {
		sum += obs.Temperature
	}
	return sum / float64(len(window))
}

func meanHumidity(window []models.WeatherObservation) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, obs := range window {
		sum += obs.Humidity
	}
	return sum / float64(len(window))
}
