package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/usecase/dto"
)

// SpotUseCase - пользовательские операции над коллекцией парковочных мест
type SpotUseCase struct {
	spotRepo repository.SpotRepository
	logger   *zap.Logger
}

// NewSpotUseCase - создание нового SpotUseCase
func NewSpotUseCase(spotRepo repository.SpotRepository, logger *zap.Logger) *SpotUseCase {
	return &SpotUseCase{
		spotRepo: spotRepo,
		logger:   logger,
	}
}

// AddSpot добавляет краудсорсинговое место с локально сгенерированным ID
func (uc *SpotUseCase) AddSpot(req dto.AddSpotRequest) (domain.ParkingSpot, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return domain.ParkingSpot{}, errors.ErrInvalidCoordinates
	}

	spot := domain.ParkingSpot{
		ID:         "local_" + uuid.NewString(),
		Lat:        req.Lat,
		Lng:        req.Lng,
		Status:     domain.StatusFree,
		ReportedAt: time.Now(),
		Source:     domain.SourceLocal,
		Name:       req.Name,
	}

	uc.spotRepo.Add(spot)

	uc.logger.Info("Crowdsourced spot added",
		zap.String("id", spot.ID),
		zap.Float64("lat", spot.Lat),
		zap.Float64("lng", spot.Lng))

	return spot, nil
}

// ReportStatus применяет пользовательский отчёт о статусе места
func (uc *SpotUseCase) ReportStatus(id string, status domain.SpotStatus) (domain.ParkingSpot, error) {
	if !status.Valid() {
		return domain.ParkingSpot{}, errors.ErrInvalidStatus
	}

	spot, ok := uc.spotRepo.UpdateStatus(id, status)
	if !ok {
		return domain.ParkingSpot{}, errors.ErrSpotNotFound.WithDetails(map[string]interface{}{
			"id": id,
		})
	}

	uc.logger.Info("Spot status reported",
		zap.String("id", id),
		zap.String("status", string(status)))

	return spot, nil
}

// ToggleFavorite переключает флаг избранного
func (uc *SpotUseCase) ToggleFavorite(id string) (domain.ParkingSpot, error) {
	spot, ok := uc.spotRepo.ToggleFavorite(id)
	if !ok {
		return domain.ParkingSpot{}, errors.ErrSpotNotFound.WithDetails(map[string]interface{}{
			"id": id,
		})
	}
	return spot, nil
}

// ListSpots возвращает коллекцию с опциональным фильтром по статусу.
// Если заданы координаты, места сортируются по удалённости от них.
func (uc *SpotUseCase) ListSpots(query dto.ListSpotsQuery) []domain.ParkingSpot {
	spots := uc.spotRepo.List()

	if query.Status != "" {
		filtered := make([]domain.ParkingSpot, 0, len(spots))
		for _, spot := range spots {
			if spot.Status == domain.SpotStatus(query.Status) {
				filtered = append(filtered, spot)
			}
		}
		spots = filtered
	}

	if query.Lat != nil && query.Lng != nil {
		lat, lng := *query.Lat, *query.Lng
		sort.SliceStable(spots, func(i, j int) bool {
			distI := utils.HaversineDistance(lat, lng, spots[i].Lat, spots[i].Lng)
			distJ := utils.HaversineDistance(lat, lng, spots[j].Lat, spots[j].Lng)
			return distI < distJ
		})
	}

	return spots
}
