// Package weather orchestrates forecast refreshes and assembles the farm
// weather summary served to clients.
package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
	"github.com/Josh-codes/AgriDroneX/internal/repository/mongodb"
)

const (
	// forecastWindowSize caps the window at ~5 days of 3-hour steps.
	forecastWindowSize = 40
	// summaryAdvisoryLimit caps advisories embedded in a summary response.
	summaryAdvisoryLimit = 10
)

// Repository defines the storage operations the service needs.
type Repository interface {
	SaveObservation(ctx context.Context, obs models.WeatherObservation) error
	ReplaceForecast(ctx context.Context, farmID primitive.ObjectID, from time.Time, window []models.WeatherObservation) error
	LatestObservation(ctx context.Context, farmID primitive.ObjectID, at time.Time) (*models.WeatherObservation, error)
	ForecastWindow(ctx context.Context, farmID primitive.ObjectID, from time.Time, limit int) ([]models.WeatherObservation, error)
	ActiveAdvisories(ctx context.Context, farmID primitive.ObjectID, now time.Time, limit int) ([]models.Advisory, error)
}

// ForecastClient fetches weather data from the upstream provider.
type ForecastClient interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (models.WeatherObservation, error)
	Forecast(ctx context.Context, lat, lon float64) ([]models.WeatherObservation, error)
}

// InsightGenerator runs a generation pass over a farm's forecast window.
type InsightGenerator interface {
	Generate(ctx context.Context, farm models.Farm, window []models.WeatherObservation) ([]models.Advisory, error)
}

// Service describes the operations the HTTP layer and scheduler can perform.
type Service interface {
	Refresh(ctx context.Context, farm models.Farm) error
	FarmWeather(ctx context.Context, farm models.Farm) (Summary, error)
}

// Summary is the typed weather response for one farm.
type Summary struct {
	Location  string             `json:"location"`
	Current   *CurrentConditions `json:"current"`
	Forecast  []ForecastEntry    `json:"forecast"`
	Insights  []AdvisoryView     `json:"insights"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// CurrentConditions mirrors the most recent observation.
type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"weather_condition"`
	Description string  `json:"weather_description"`
}

// ForecastEntry is one forecast step of the summary.
type ForecastEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Condition     string    `json:"weather_condition"`
	Description   string    `json:"weather_description"`
	Precipitation float64   `json:"precipitation"`
}

// AdvisoryView is the advisory projection embedded in a summary.
type AdvisoryView struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Kind        models.AdvisoryKind `json:"insight_type"`
	Priority    int                 `json:"priority"`
	ValidUntil  time.Time           `json:"valid_until"`
}

// ForecastService is the production implementation of Service.
type ForecastService struct {
	repo     Repository
	client   ForecastClient
	insights InsightGenerator
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new forecast service instance.
func NewService(repo Repository, client ForecastClient, insights InsightGenerator, logger *zap.Logger) *ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastService{
		repo:     repo,
		client:   client,
		insights: insights,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh pulls fresh data from the upstream provider, replaces the farm's
// forecast buffer and runs a generation pass. A fetch failure is downgraded
// to "no new data": the pass runs on whatever observations are stored.
func (s *ForecastService) Refresh(ctx context.Context, farm models.Farm) error {
	now := s.now()

	current, err := s.client.CurrentWeather(ctx, farm.Latitude, farm.Longitude)
	if err != nil {
		s.logger.Warn("current weather fetch failed", zap.String("farm_id", farm.ID.Hex()), zap.Error(err))
	} else {
		current.FarmID = farm.ID
		if err := s.repo.SaveObservation(ctx, current); err != nil {
			return fmt.Errorf("save current observation: %w", err)
		}
	}

	forecast, err := s.client.Forecast(ctx, farm.Latitude, farm.Longitude)
	if err != nil {
		s.logger.Warn("forecast fetch failed, using cached data", zap.String("farm_id", farm.ID.Hex()), zap.Error(err))
	} else if err := s.repo.ReplaceForecast(ctx, farm.ID, now, forecast); err != nil {
		return fmt.Errorf("replace forecast: %w", err)
	}

	window, err := s.repo.ForecastWindow(ctx, farm.ID, now, forecastWindowSize)
	if err != nil {
		return fmt.Errorf("load forecast window: %w", err)
	}

	if _, err := s.insights.Generate(ctx, farm, window); err != nil {
		return fmt.Errorf("generate insights: %w", err)
	}

	return nil
}

// FarmWeather refreshes the farm's data and assembles the summary response.
// Refresh failures are logged, never propagated: the summary is built from
// whatever is in storage.
func (s *ForecastService) FarmWeather(ctx context.Context, farm models.Farm) (Summary, error) {
	if err := s.Refresh(ctx, farm); err != nil {
		s.logger.Error("forecast refresh failed, serving stored data", zap.String("farm_id", farm.ID.Hex()), zap.Error(err))
	}

	now := s.now()
	summary := Summary{
		Location:  farm.LocationName,
		Forecast:  []ForecastEntry{},
		Insights:  []AdvisoryView{},
		FetchedAt: now,
	}

	latest, err := s.repo.LatestObservation(ctx, farm.ID, now)
	if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
		return Summary{}, fmt.Errorf("load latest observation: %w", err)
	}
	if latest != nil {
		summary.Current = &CurrentConditions{
			Temperature: latest.Temperature,
			FeelsLike:   latest.FeelsLike,
			Humidity:    latest.Humidity,
			Pressure:    latest.Pressure,
			WindSpeed:   latest.WindSpeed,
			Condition:   latest.Condition,
			Description: latest.Description,
		}
	}

	window, err := s.repo.ForecastWindow(ctx, farm.ID, now, forecastWindowSize)
	if err != nil {
		return Summary{}, fmt.Errorf("load forecast window: %w", err)
	}
	for _, obs := range window {
		summary.Forecast = append(summary.Forecast, ForecastEntry{
			Timestamp:     obs.Timestamp,
			Temperature:   obs.Temperature,
			Humidity:      obs.Humidity,
			Condition:     obs.Condition,
			Description:   obs.Description,
			Precipitation: obs.Precipitation,
		})
	}

	advisories, err := s.repo.ActiveAdvisories(ctx, farm.ID, now, summaryAdvisoryLimit)
	if err != nil {
		return Summary{}, fmt.Errorf("load advisories: %w", err)
	}
	for _, advisory := range advisories {
		summary.Insights = append(summary.Insights, AdvisoryView{
			Title:       advisory.Title,
			Description: advisory.Description,
			Kind:        advisory.Kind,
			Priority:    advisory.Priority,
			ValidUntil:  advisory.ValidUntil,
		})
	}

	return summary, nil
}
