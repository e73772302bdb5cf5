package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/infrastructure/googleplaces"
	"github.com/parking-microservice/internal/infrastructure/overpass"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
)

// AggregatorUseCase - оркестрация провайдеров парковочных данных.
// Оба клиента опрашиваются независимо; отказ одного не мешает результатам
// другого, отказ обоих оставляет существующую коллекцию валидной.
type AggregatorUseCase struct {
	osmRepo      repository.OSMRepository
	placesRepo   repository.PlacesRepository
	spotRepo     repository.SpotRepository
	logger       *zap.Logger
	osmRadius    int
	placesRadius int
}

// NewAggregatorUseCase - создание нового AggregatorUseCase
func NewAggregatorUseCase(
	osmRepo repository.OSMRepository,
	placesRepo repository.PlacesRepository,
	spotRepo repository.SpotRepository,
	logger *zap.Logger,
	osmRadius int,
	placesRadius int,
) *AggregatorUseCase {
	return &AggregatorUseCase{
		osmRepo:      osmRepo,
		placesRepo:   placesRepo,
		spotRepo:     spotRepo,
		logger:       logger,
		osmRadius:    osmRadius,
		placesRadius: placesRadius,
	}
}

// Refresh выполняет один цикл агрегации вокруг координат пользователя
// и возвращает полную объединённую коллекцию.
// Начатый цикл всегда доводится до конца: отдельные вызовы провайдеров
// сами прерываются по таймауту, но снаружи цикл не отменяется.
func (uc *AggregatorUseCase) Refresh(ctx context.Context, lat, lng float64) ([]domain.ParkingSpot, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	started := time.Now()

	var (
		wg            sync.WaitGroup
		osmSpots      []domain.OSMParkingSpot
		osmOutcome    domain.FetchOutcome
		places        []domain.GooglePlace
		placesOutcome domain.FetchOutcome
	)

	// Провайдеры независимы: нет общего состояния на фазе выборки,
	// порядок завершения не важен
	wg.Add(2)
	go func() {
		defer wg.Done()
		osmSpots, osmOutcome = uc.osmRepo.FetchParkingSpots(ctx, lat, lng, uc.osmRadius)
	}()
	go func() {
		defer wg.Done()
		places, placesOutcome = uc.placesRepo.FetchParkingSpots(ctx, lat, lng, uc.placesRadius)
	}()
	wg.Wait()

	now := time.Now()
	normalized := make([]domain.ParkingSpot, 0, len(osmSpots)+len(places))
	for _, raw := range osmSpots {
		normalized = append(normalized, overpass.Normalize(raw, now))
	}
	for _, raw := range places {
		normalized = append(normalized, googleplaces.Normalize(raw, now))
	}

	added := uc.spotRepo.MergeNew(normalized)

	uc.logger.Info("Aggregation cycle completed",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.String("osm_outcome", osmOutcome.String()),
		zap.Int("osm_spots", len(osmSpots)),
		zap.String("places_outcome", placesOutcome.String()),
		zap.Int("places_spots", len(places)),
		zap.Int("added", added),
		zap.Duration("took", time.Since(started)))

	return uc.spotRepo.List(), nil
}
