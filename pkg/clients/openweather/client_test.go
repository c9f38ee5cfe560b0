package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Josh-codes/AgriDroneX/internal/config"
)

const forecastFixture = `{
  "list": [
    {
      "dt": 1767170400,
      "main": {"temp": 21.4, "feels_like": 20.9, "humidity": 62, "pressure": 1014},
      "weather": [{"main": "Rain", "description": "light rain"}],
      "wind": {"speed": 4.2},
      "clouds": {"all": 75},
      "rain": {"3h": 1.2},
      "snow": {"3h": 0.3}
    },
    {
      "dt": 1767181200,
      "main": {"temp": 19.0, "feels_like": 18.4, "humidity": 70, "pressure": 1015},
      "weather": [{"main": "Clouds", "description": "broken clouds"}],
      "wind": {"speed": 3.1},
      "clouds": {"all": 90}
    }
  ]
}`

func TestForecastParsesObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	client := NewClient(config.OpenWeatherConfig{APIKey: "test-key", BaseURL: srv.URL})

	window, err := client.Forecast(context.Background(), 14.7, -17.4)
	require.NoError(t, err)
	require.Len(t, window, 2)

	first := window[0]
	assert.Equal(t, 21.4, first.Temperature)
	assert.Equal(t, 62.0, first.Humidity)
	assert.Equal(t, "Rain", first.Condition)
	assert.Equal(t, "light rain", first.Description)
	assert.InDelta(t, 1.5, first.Precipitation, 1e-9, "rain and snow accumulate")

	second := window[1]
	assert.Equal(t, "Clouds", second.Condition)
	assert.Zero(t, second.Precipitation)
	assert.True(t, first.Timestamp.Before(second.Timestamp))
}

func TestForecastUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer srv.Close()

	client := NewClient(config.OpenWeatherConfig{APIKey: "bad-key", BaseURL: srv.URL})

	_, err := client.Forecast(context.Background(), 14.7, -17.4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestCurrentWeatherParsesObservation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"dt": 1767170400,
			"main": {"temp": 27.8, "feels_like": 29.1, "humidity": 58, "pressure": 1011},
			"weather": [{"main": "Clear", "description": "clear sky"}],
			"wind": {"speed": 6.5},
			"clouds": {"all": 5}
		}`))
	}))
	defer srv.Close()

	client := NewClient(config.OpenWeatherConfig{APIKey: "test-key", BaseURL: srv.URL})

	obs, err := client.CurrentWeather(context.Background(), 14.7, -17.4)
	require.NoError(t, err)
	assert.Equal(t, 27.8, obs.Temperature)
	assert.Equal(t, 29.1, obs.FeelsLike)
	assert.Equal(t, "Clear", obs.Condition)
	assert.Equal(t, 6.5, obs.WindSpeed)
}
