package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
	"github.com/Josh-codes/AgriDroneX/internal/service/farms"
)

// fakeFarmService implements farms.Service for handler tests.
type fakeFarmService struct {
	farms   []models.Farm
	crops   []models.CropProfile
	deleted []string
}

func (s *fakeFarmService) SeedCatalog(context.Context) error { return nil }

func (s *fakeFarmService) ListCrops(context.Context) ([]models.CropProfile, error) {
	return s.crops, nil
}

func (s *fakeFarmService) CreateFarm(_ context.Context, input farms.CreateFarmInput) (models.Farm, error) {
	if input.CropID == "unknown" {
		return models.Farm{}, farms.ErrNotFound
	}
	farm := models.Farm{
		ID:           primitive.NewObjectID(),
		Name:         input.Name,
		Latitude:     *input.Latitude,
		Longitude:    *input.Longitude,
		LocationName: input.LocationName,
	}
	s.farms = append(s.farms, farm)
	return farm, nil
}

func (s *fakeFarmService) ListFarms(context.Context) ([]models.Farm, error) {
	return s.farms, nil
}

func (s *fakeFarmService) GetFarm(_ context.Context, id string) (*models.Farm, error) {
	for i := range s.farms {
		if s.farms[i].ID.Hex() == id {
			return &s.farms[i], nil
		}
	}
	return nil, farms.ErrNotFound
}

func (s *fakeFarmService) DeleteFarm(_ context.Context, id string) error {
	for _, farm := range s.farms {
		if farm.ID.Hex() == id {
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return farms.ErrNotFound
}

func newTestRouter(svc farms.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFarmHandler(svc, nil)

	r := gin.New()
	r.GET("/api/farms", h.List)
	r.POST("/api/farms", h.Create)
	r.DELETE("/api/farms/:id", h.Delete)
	r.GET("/api/crops", h.Crops)
	return r
}

func TestCreateFarm(t *testing.T) {
	svc := &fakeFarmService{}
	r := newTestRouter(svc)

	body := `{"name": "North Field", "latitude": 14.7, "longitude": -17.4, "location_name": "Thiès"}`
	req := httptest.NewRequest(http.MethodPost, "/api/farms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Farm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "North Field", created.Name)
	assert.Len(t, svc.farms, 1)
}

func TestCreateFarmAcceptsZeroCoordinates(t *testing.T) {
	svc := &fakeFarmService{}
	r := newTestRouter(svc)

	// São Tomé sits on latitude 0; the required check must not reject it.
	body := `{"name": "Island Field", "latitude": 0, "longitude": 6.6, "location_name": "São Tomé"}`
	req := httptest.NewRequest(http.MethodPost, "/api/farms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Farm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Zero(t, created.Latitude)
	assert.Equal(t, 6.6, created.Longitude)
}

func TestCreateFarmRejectsMissingFields(t *testing.T) {
	r := newTestRouter(&fakeFarmService{})

	req := httptest.NewRequest(http.MethodPost, "/api/farms", strings.NewReader(`{"name": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFarmUnknownCrop(t *testing.T) {
	r := newTestRouter(&fakeFarmService{})

	body := `{"name": "North Field", "latitude": 14.7, "longitude": -17.4, "location_name": "Thiès", "crop": "unknown"}`
	req := httptest.NewRequest(http.MethodPost, "/api/farms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown crop")
}

func TestDeleteFarmNotFound(t *testing.T) {
	r := newTestRouter(&fakeFarmService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/farms/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCrops(t *testing.T) {
	svc := &fakeFarmService{crops: models.DefaultCropCatalog()}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/crops", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var crops []models.CropProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &crops))
	assert.Len(t, crops, 8)
}
