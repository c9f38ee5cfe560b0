// Package farms manages the farm registry and the crop catalog.
package farms

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Josh-codes/AgriDroneX/internal/domain/models"
	"github.com/Josh-codes/AgriDroneX/internal/repository/mongodb"
)

// ErrNotFound indicates the requested farm or crop does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines the storage operations the service needs.
type Repository interface {
	EnsureCropCatalog(ctx context.Context, catalog []models.CropProfile) error
	ListCrops(ctx context.Context) ([]models.CropProfile, error)
	GetCrop(ctx context.Context, id primitive.ObjectID) (*models.CropProfile, error)
	CreateFarm(ctx context.Context, farm models.Farm) (models.Farm, error)
	ListFarms(ctx context.Context) ([]models.Farm, error)
	GetFarm(ctx context.Context, id primitive.ObjectID) (*models.Farm, error)
	DeleteFarm(ctx context.Context, id primitive.ObjectID) error
}

// Service describes the operations the HTTP layer and scheduler can perform.
type Service interface {
	SeedCatalog(ctx context.Context) error
	ListCrops(ctx context.Context) ([]models.CropProfile, error)
	CreateFarm(ctx context.Context, input CreateFarmInput) (models.Farm, error)
	ListFarms(ctx context.Context) ([]models.Farm, error)
	GetFarm(ctx context.Context, id string) (*models.Farm, error)
	DeleteFarm(ctx context.Context, id string) error
}

// CreateFarmInput carries the fields required to register a farm. The
// coordinates are pointers so that 0 (equator, prime meridian) still passes
// the required check.
type CreateFarmInput struct {
	Name         string   `json:"name" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	LocationName string   `json:"location_name" binding:"required"`
	CropID       string   `json:"crop"`
}

// FarmService is the MongoDB-backed implementation of Service.
type FarmService struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new farm service instance.
func NewService(repo Repository, logger *zap.Logger) *FarmService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmService{repo: repo, logger: logger}
}

// SeedCatalog makes sure the eight default crop profiles exist.
func (s *FarmService) SeedCatalog(ctx context.Context) error {
	if err := s.repo.EnsureCropCatalog(ctx, models.DefaultCropCatalog()); err != nil {
		return fmt.Errorf("seed crop catalog: %w", err)
	}
	s.logger.Info("crop catalog seeded")
	return nil
}

// ListCrops returns the crop catalog.
func (s *FarmService) ListCrops(ctx context.Context) ([]models.CropProfile, error) {
	return s.repo.ListCrops(ctx)
}

// CreateFarm registers a new farm, resolving the optional crop selection.
func (s *FarmService) CreateFarm(ctx context.Context, input CreateFarmInput) (models.Farm, error) {
	if input.Latitude == nil || input.Longitude == nil {
		return models.Farm{}, errors.New("latitude and longitude are required")
	}

	farm := models.Farm{
		Name:         input.Name,
		Latitude:     *input.Latitude,
		Longitude:    *input.Longitude,
		LocationName: input.LocationName,
	}

	if input.CropID != "" {
		cropID, err := primitive.ObjectIDFromHex(input.CropID)
		if err != nil {
			return models.Farm{}, fmt.Errorf("crop %s: %w", input.CropID, ErrNotFound)
		}
		crop, err := s.repo.GetCrop(ctx, cropID)
		if err != nil {
			return models.Farm{}, mapStorageErr(err)
		}
		farm.CropID = &crop.ID
		farm.Crop = crop
	}

	created, err := s.repo.CreateFarm(ctx, farm)
	if err != nil {
		return models.Farm{}, err
	}
	created.Crop = farm.Crop

	s.logger.Info("farm created", zap.String("farm_id", created.ID.Hex()), zap.String("name", created.Name))
	return created, nil
}

// ListFarms returns all farms with their crop profiles attached.
func (s *FarmService) ListFarms(ctx context.Context) ([]models.Farm, error) {
	farms, err := s.repo.ListFarms(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := s.repo.ListCrops(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.CropProfile, len(catalog))
	for _, crop := range catalog {
		byID[crop.ID] = crop
	}

	for i := range farms {
		if farms[i].CropID == nil {
			continue
		}
		if crop, ok := byID[*farms[i].CropID]; ok {
			c := crop
			farms[i].Crop = &c
		}
	}

	return farms, nil
}

// GetFarm loads a farm by its hex id and attaches its crop profile.
func (s *FarmService) GetFarm(ctx context.Context, id string) (*models.Farm, error) {
	farmID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("farm %s: %w", id, ErrNotFound)
	}

	farm, err := s.repo.GetFarm(ctx, farmID)
	if err != nil {
		return nil, mapStorageErr(err)
	}

	if farm.CropID != nil {
		crop, err := s.repo.GetCrop(ctx, *farm.CropID)
		if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
			return nil, err
		}
		farm.Crop = crop
	}

	return farm, nil
}

// DeleteFarm removes a farm and everything it owns.
func (s *FarmService) DeleteFarm(ctx context.Context, id string) error {
	farmID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("farm %s: %w", id, ErrNotFound)
	}

	if err := s.repo.DeleteFarm(ctx, farmID); err != nil {
		return mapStorageErr(err)
	}

	s.logger.Info("farm deleted", zap.String("farm_id", id))
	return nil
}

func mapStorageErr(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
