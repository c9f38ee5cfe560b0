package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/service/farms"
	"github.com/Josh-codes/AgriDroneX/internal/service/weather"
)

// WeatherHandler serves the per-farm weather summary endpoint.
type WeatherHandler struct {
	farmSvc    farms.Service
	weatherSvc weather.Service
	logger     *zap.Logger
}

// NewWeatherHandler constructs the HTTP handler adapter.
func NewWeatherHandler(farmSvc farms.Service, weatherSvc weather.Service, logger *zap.Logger) *WeatherHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherHandler{farmSvc: farmSvc, weatherSvc: weatherSvc, logger: logger}
}

// FarmWeather refreshes and returns the weather summary for one farm,
// including its still-valid advisories.
func (h *WeatherHandler) FarmWeather(c *gin.Context) {
	farm, err := h.farmSvc.GetFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, farms.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
			return
		}
		h.logger.Error("failed loading farm", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load farm"})
		return
	}

	summary, err := h.weatherSvc.FarmWeather(c.Request.Context(), *farm)
	if err != nil {
		h.logger.Error("failed building weather summary", zap.String("farm_id", farm.ID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load weather"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
