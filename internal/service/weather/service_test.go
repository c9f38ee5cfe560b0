package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
	"github.com/Josh-codes/AgriDroneX/internal/repository/mongodb"
)

var testNow = time.Date(2026, 4, 10, 6, 0, 0, 0, time.UTC)

// fakeRepo keeps observations and advisories in memory.
type fakeRepo struct {
	observations []models.WeatherObservation
	advisories   []models.Advisory

	replaceForecastCalls int
	activeLimit          int
}

func (r *fakeRepo) SaveObservation(_ context.Context, obs models.WeatherObservation) error {
	r.observations = append(r.observations, obs)
	return nil
}

func (r *fakeRepo) ReplaceForecast(_ context.Context, farmID primitive.ObjectID, from time.Time, window []models.WeatherObservation) error {
	r.replaceForecastCalls++
	kept := r.observations[:0]
	for _, obs := range r.observations {
		if obs.FarmID != farmID || obs.Timestamp.Before(from) {
			kept = append(kept, obs)
		}
	}
	r.observations = kept
	for _, obs := range window {
		obs.FarmID = farmID
		r.observations = append(r.observations, obs)
	}
	return nil
}

func (r *fakeRepo) LatestObservation(_ context.Context, farmID primitive.ObjectID, at time.Time) (*models.WeatherObservation, error) {
	var latest *models.WeatherObservation
	for i := range r.observations {
		obs := r.observations[i]
		if obs.FarmID != farmID || obs.Timestamp.After(at) {
			continue
		}
		if latest == nil || obs.Timestamp.After(latest.Timestamp) {
			latest = &r.observations[i]
		}
	}
	if latest == nil {
		return nil, mongodb.ErrNotFound
	}
	return latest, nil
}

func (r *fakeRepo) ForecastWindow(_ context.Context, farmID primitive.ObjectID, from time.Time, limit int) ([]models.WeatherObservation, error) {
	var window []models.WeatherObservation
	for _, obs := range r.observations {
		if obs.FarmID == farmID && !obs.Timestamp.Before(from) {
			window = append(window, obs)
		}
	}
	if limit > 0 && len(window) > limit {
		window = window[:limit]
	}
	return window, nil
}

func (r *fakeRepo) ActiveAdvisories(_ context.Context, farmID primitive.ObjectID, now time.Time, limit int) ([]models.Advisory, error) {
	r.activeLimit = limit
	var active []models.Advisory
	for _, advisory := range r.advisories {
		if advisory.FarmID == farmID && advisory.ActiveAt(now) {
			active = append(active, advisory)
		}
	}
	models.SortAdvisoriesForDisplay(active)
	if limit > 0 && len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}

// fakeClient serves canned upstream responses or a failure.
type fakeClient struct {
	current  models.WeatherObservation
	forecast []models.WeatherObservation
	err      error
}

func (c *fakeClient) CurrentWeather(context.Context, float64, float64) (models.WeatherObservation, error) {
	if c.err != nil {
		return models.WeatherObservation{}, c.err
	}
	return c.current, nil
}

func (c *fakeClient) Forecast(context.Context, float64, float64) ([]models.WeatherObservation, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.forecast, nil
}

// fakeGenerator records the windows it was asked to evaluate.
type fakeGenerator struct {
	windows [][]models.WeatherObservation
	result  []models.Advisory
}

func (g *fakeGenerator) Generate(_ context.Context, farm models.Farm, window []models.WeatherObservation) ([]models.Advisory, error) {
	g.windows = append(g.windows, window)
	return g.result, nil
}

func upstreamForecast(n int) []models.WeatherObservation {
	window := make([]models.WeatherObservation, 0, n)
	for i := 0; i < n; i++ {
		window = append(window, models.WeatherObservation{
			Timestamp:   testNow.Add(time.Duration(i+1) * 3 * time.Hour),
			Temperature: 22,
			Humidity:    60,
			Condition:   "Clear",
		})
	}
	return window
}

func newTestService(repo *fakeRepo, client *fakeClient, gen *fakeGenerator) *ForecastService {
	svc := NewService(repo, client, gen, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestRefreshStoresForecastAndRunsGeneration(t *testing.T) {
	farm := models.Farm{ID: primitive.NewObjectID(), Name: "North Field", Crop: &models.CropProfile{Kind: models.CropWheat}}
	repo := &fakeRepo{}
	client := &fakeClient{
		current:  models.WeatherObservation{Timestamp: testNow.Add(-time.Hour), Temperature: 20},
		forecast: upstreamForecast(10),
	}
	gen := &fakeGenerator{}

	svc := newTestService(repo, client, gen)
	require.NoError(t, svc.Refresh(context.Background(), farm))

	assert.Equal(t, 1, repo.replaceForecastCalls)
	assert.Len(t, repo.observations, 11, "current conditions plus forecast rows")
	require.Len(t, gen.windows, 1)
	assert.Len(t, gen.windows[0], 10, "generation must see the forward window only")
}

func TestRefreshFetchFailureKeepsStoredWindow(t *testing.T) {
	farm := models.Farm{ID: primitive.NewObjectID(), Crop: &models.CropProfile{Kind: models.CropWheat}}
	repo := &fakeRepo{}
	for _, obs := range upstreamForecast(5) {
		obs.FarmID = farm.ID
		repo.observations = append(repo.observations, obs)
	}
	client := &fakeClient{err: errors.New("upstream down")}
	gen := &fakeGenerator{}

	svc := newTestService(repo, client, gen)
	require.NoError(t, svc.Refresh(context.Background(), farm))

	assert.Equal(t, 0, repo.replaceForecastCalls, "cached rows must survive a fetch failure")
	require.Len(t, gen.windows, 1)
	assert.Len(t, gen.windows[0], 5, "generation runs on whatever is stored")
}

func TestFarmWeatherAssemblesSummary(t *testing.T) {
	farm := models.Farm{ID: primitive.NewObjectID(), LocationName: "Thiès", Crop: &models.CropProfile{Kind: models.CropWheat}}
	repo := &fakeRepo{
		advisories: []models.Advisory{
			{FarmID: farm.ID, Kind: models.AdvisoryWatering, Title: "No Rainfall Expected", Priority: 2, ValidUntil: testNow.Add(48 * time.Hour)},
			{FarmID: farm.ID, Kind: models.AdvisoryWarning, Title: "Frost Risk Warning", Priority: 3, ValidUntil: testNow.Add(24 * time.Hour)},
			{FarmID: farm.ID, Kind: models.AdvisoryPlanting, Title: "Expired", Priority: 3, ValidUntil: testNow.Add(-time.Hour)},
		},
	}
	client := &fakeClient{
		current:  models.WeatherObservation{Timestamp: testNow.Add(-time.Hour), Temperature: 19.5, Condition: "Clouds"},
		forecast: upstreamForecast(3),
	}
	gen := &fakeGenerator{}

	svc := newTestService(repo, client, gen)
	summary, err := svc.FarmWeather(context.Background(), farm)
	require.NoError(t, err)

	assert.Equal(t, "Thiès", summary.Location)
	require.NotNil(t, summary.Current)
	assert.Equal(t, 19.5, summary.Current.Temperature)
	assert.Len(t, summary.Forecast, 3)

	// Expired advisories are excluded; the rest come highest priority first.
	require.Len(t, summary.Insights, 2)
	assert.Equal(t, "Frost Risk Warning", summary.Insights[0].Title)
	assert.Equal(t, "No Rainfall Expected", summary.Insights[1].Title)
	assert.Equal(t, summaryAdvisoryLimit, repo.activeLimit, "summary must cap embedded advisories")
}

func TestFarmWeatherSurvivesRefreshFailure(t *testing.T) {
	farm := models.Farm{ID: primitive.NewObjectID(), LocationName: "Thiès"}
	repo := &fakeRepo{}
	client := &fakeClient{err: errors.New("upstream down")}
	gen := &fakeGenerator{}

	svc := newTestService(repo, client, gen)
	summary, err := svc.FarmWeather(context.Background(), farm)
	require.NoError(t, err)

	assert.Nil(t, summary.Current)
	assert.Empty(t, summary.Forecast)
	assert.Empty(t, summary.Insights)
}
