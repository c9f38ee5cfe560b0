// Package openweather wraps the OpenWeatherMap current-weather and 5-day
// forecast endpoints.
package openweather

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/Josh-codes/AgriDroneX/internal/config"
	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
)

// Client exposes the weather operations used by the application.
type Client interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (models.WeatherObservation, error)
	Forecast(ctx context.Context, lat, lon float64) ([]models.WeatherObservation, error)
}

// APIClient is a resty-backed implementation of Client. Calls run through a
// circuit breaker so a flapping upstream does not stall every request.
type APIClient struct {
	httpClient *resty.Client
	apiKey     string
	circuit    *gobreaker.CircuitBreaker
}

// NewClient builds an OpenWeatherMap client from the provided configuration.
func NewClient(cfg config.OpenWeatherConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetQueryParam("appid", cfg.APIKey).
		SetQueryParam("units", "metric").
		SetTimeout(10 * time.Second)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &APIClient{
		httpClient: restyClient,
		apiKey:     cfg.APIKey,
		circuit:    cb,
	}
}

// forecastItem mirrors one entry of the OpenWeatherMap response.
type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Rain struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
	Snow struct {
		ThreeHours float64 `json:"3h"`
	} `json:"snow"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type apiError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

func (i forecastItem) toObservation(fetchedAt time.Time) models.WeatherObservation {
	obs := models.WeatherObservation{
		Timestamp:     time.Unix(i.Dt, 0).UTC(),
		Temperature:   i.Main.Temp,
		FeelsLike:     i.Main.FeelsLike,
		Humidity:      i.Main.Humidity,
		Pressure:      i.Main.Pressure,
		WindSpeed:     i.Wind.Speed,
		Precipitation: i.Rain.ThreeHours + i.Snow.ThreeHours,
		Clouds:        i.Clouds.All,
		FetchedAt:     fetchedAt,
	}
	if len(i.Weather) > 0 {
		obs.Condition = i.Weather[0].Main
		obs.Description = i.Weather[0].Description
	}
	return obs
}

// CurrentWeather fetches the current conditions for a coordinate pair.
func (c *APIClient) CurrentWeather(ctx context.Context, lat, lon float64) (models.WeatherObservation, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		item := new(forecastItem)
		apiErr := new(apiError)

		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetQueryParam("lat", fmt.Sprintf("%f", lat)).
			SetQueryParam("lon", fmt.Sprintf("%f", lon)).
			SetResult(item).
			SetError(apiErr).
			Get("/weather")
		if err != nil {
			return nil, fmt.Errorf("fetch current weather: %w", err)
		}
		if resp.StatusCode() >= http.StatusBadRequest {
			return nil, fmt.Errorf("openweather api error: status=%d, message=%s", resp.StatusCode(), apiErr.Message)
		}

		return item.toObservation(time.Now().UTC()), nil
	})
	if err != nil {
		return models.WeatherObservation{}, err
	}

	return result.(models.WeatherObservation), nil
}

// Forecast fetches the rolling 5-day forecast at 3-hour granularity, ordered
// by timestamp ascending.
func (c *APIClient) Forecast(ctx context.Context, lat, lon float64) ([]models.WeatherObservation, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		body := new(forecastResponse)
		apiErr := new(apiError)

		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetQueryParam("lat", fmt.Sprintf("%f", lat)).
			SetQueryParam("lon", fmt.Sprintf("%f", lon)).
			SetResult(body).
			SetError(apiErr).
			Get("/forecast")
		if err != nil {
			return nil, fmt.Errorf("fetch forecast: %w", err)
		}
		if resp.StatusCode() >= http.StatusBadRequest {
			return nil, fmt.Errorf("openweather api error: status=%d, message=%s", resp.StatusCode(), apiErr.Message)
		}

		fetchedAt := time.Now().UTC()
		window := make([]models.WeatherObservation, 0, len(body.List))
		for _, item := range body.List {
			window = append(window, item.toObservation(fetchedAt))
		}
		return window, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.WeatherObservation), nil
}
