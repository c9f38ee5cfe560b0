package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/service/farms"
)

// FarmHandler serves the farm registry and crop catalog endpoints.
type FarmHandler struct {
	svc    farms.Service
	logger *zap.Logger
}

// NewFarmHandler constructs the HTTP handler adapter.
func NewFarmHandler(svc farms.Service, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, logger: logger}
}

// List returns all farms, newest first.
func (h *FarmHandler) List(c *gin.Context) {
	result, err := h.svc.ListFarms(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing farms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list farms"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Create registers a new farm.
func (h *FarmHandler) Create(c *gin.Context) {
	var input farms.CreateFarmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid farm payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	farm, err := h.svc.CreateFarm(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, farms.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown crop"})
			return
		}
		h.logger.Error("failed creating farm", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create farm"})
		return
	}

	c.JSON(http.StatusCreated, farm)
}

// Delete removes a farm together with its observations and advisories.
func (h *FarmHandler) Delete(c *gin.Context) {
	err := h.svc.DeleteFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, farms.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "farm not found"})
			return
		}
		h.logger.Error("failed deleting farm", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete farm"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "farm deleted"})
}

// Crops returns the crop catalog.
func (h *FarmHandler) Crops(c *gin.Context) {
	crops, err := h.svc.ListCrops(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing crops", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list crops"})
		return
	}

	c.JSON(http.StatusOK, crops)
}
