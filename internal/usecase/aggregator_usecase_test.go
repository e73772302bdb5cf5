package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/repository/memory"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// MockOSMRepository is a mock of OSMRepository
type MockOSMRepository struct {
	mock.Mock
}

func (m *MockOSMRepository) FetchParkingSpots(ctx context.Context, lat, lng float64, radius int) ([]domain.OSMParkingSpot, domain.FetchOutcome) {
	args := m.Called(ctx, lat, lng, radius)
	return args.Get(0).([]domain.OSMParkingSpot), args.Get(1).(domain.FetchOutcome)
}

// MockPlacesRepository is a mock of PlacesRepository
type MockPlacesRepository struct {
	mock.Mock
}

func (m *MockPlacesRepository) FetchParkingSpots(ctx context.Context, lat, lng float64, radius int) ([]domain.GooglePlace, domain.FetchOutcome) {
	args := m.Called(ctx, lat, lng, radius)
	return args.Get(0).([]domain.GooglePlace), args.Get(1).(domain.FetchOutcome)
}

func zurichOSMSpots() []domain.OSMParkingSpot {
	return []domain.OSMParkingSpot{
		{ID: "osm_42", Lat: 47.377, Lon: 8.542, Tags: map[string]string{"amenity": "parking"}},
	}
}

func zurichPlaces() []domain.GooglePlace {
	return []domain.GooglePlace{
		{
			PlaceID:  "p1",
			Name:     "Parkhaus Altstadt",
			Geometry: domain.Geometry{Location: domain.LatLng{Lat: 47.378, Lng: 8.543}},
			Rating:   4.2,
		},
	}
}

func TestAggregatorUseCase_Refresh(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("merges both providers into the shared collection", func(t *testing.T) {
		mockOSM := &MockOSMRepository{}
		mockPlaces := &MockPlacesRepository{}
		spotRepo := memory.NewSpotRepository(logger)
		uc := usecase.NewAggregatorUseCase(mockOSM, mockPlaces, spotRepo, logger, 500, 2000)

		mockOSM.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 500).
			Return(zurichOSMSpots(), domain.OutcomeSuccess)
		mockPlaces.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 2000).
			Return(zurichPlaces(), domain.OutcomeSuccess)

		spots, err := uc.Refresh(ctx, 47.3769, 8.5417)
		require.NoError(t, err)
		require.Len(t, spots, 2)

		assert.Equal(t, "osm_42", spots[0].ID)
		assert.Equal(t, domain.StatusFree, spots[0].Status)
		require.NotNil(t, spots[0].Name)
		assert.Equal(t, "Parkplatz 000042", *spots[0].Name)

		assert.Equal(t, "google_p1", spots[1].ID)
		assert.Equal(t, domain.StatusFree, spots[1].Status)
		require.NotNil(t, spots[1].Name)
		assert.Equal(t, "Parkhaus Altstadt", *spots[1].Name)

		mockOSM.AssertExpectations(t)
		mockPlaces.AssertExpectations(t)
	})

	t.Run("one provider failing does not block the other", func(t *testing.T) {
		mockOSM := &MockOSMRepository{}
		mockPlaces := &MockPlacesRepository{}
		spotRepo := memory.NewSpotRepository(logger)
		uc := usecase.NewAggregatorUseCase(mockOSM, mockPlaces, spotRepo, logger, 500, 2000)

		mockOSM.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 500).
			Return([]domain.OSMParkingSpot{}, domain.OutcomeTimeout)
		mockPlaces.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 2000).
			Return(zurichPlaces(), domain.OutcomeSuccess)

		spots, err := uc.Refresh(ctx, 47.3769, 8.5417)
		require.NoError(t, err)
		require.Len(t, spots, 1)
		assert.Equal(t, "google_p1", spots[0].ID)
	})

	t.Run("both providers empty keeps existing collection usable", func(t *testing.T) {
		mockOSM := &MockOSMRepository{}
		mockPlaces := &MockPlacesRepository{}
		spotRepo := memory.NewSpotRepository(logger)
		uc := usecase.NewAggregatorUseCase(mockOSM, mockPlaces, spotRepo, logger, 500, 2000)

		spotUC := usecase.NewSpotUseCase(spotRepo, logger)
		crowdsourced, err := spotUC.AddSpot(dto.AddSpotRequest{Lat: 47.37, Lng: 8.54})
		require.NoError(t, err)

		mockOSM.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 500).
			Return([]domain.OSMParkingSpot{}, domain.OutcomeTimeout)
		mockPlaces.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 2000).
			Return([]domain.GooglePlace{}, domain.OutcomeDisabled)

		spots, err := uc.Refresh(ctx, 47.3769, 8.5417)
		require.NoError(t, err)
		require.Len(t, spots, 1)
		assert.Equal(t, crowdsourced.ID, spots[0].ID)
	})

	t.Run("user status report survives later aggregation cycles", func(t *testing.T) {
		mockOSM := &MockOSMRepository{}
		mockPlaces := &MockPlacesRepository{}
		spotRepo := memory.NewSpotRepository(logger)
		uc := usecase.NewAggregatorUseCase(mockOSM, mockPlaces, spotRepo, logger, 500, 2000)
		spotUC := usecase.NewSpotUseCase(spotRepo, logger)

		// Provider supplies osm_42 as free on every cycle
		mockOSM.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 500).
			Return(zurichOSMSpots(), domain.OutcomeSuccess)
		mockPlaces.On("FetchParkingSpots", ctx, 47.3769, 8.5417, 2000).
			Return([]domain.GooglePlace{}, domain.OutcomeEmpty)

		_, err := uc.Refresh(ctx, 47.3769, 8.5417)
		require.NoError(t, err)

		_, err = spotUC.ReportStatus("osm_42", domain.StatusOccupied)
		require.NoError(t, err)

		spots, err := uc.Refresh(ctx, 47.3769, 8.5417)
		require.NoError(t, err)
		require.Len(t, spots, 1)
		assert.Equal(t, domain.StatusOccupied, spots[0].Status)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		mockOSM := &MockOSMRepository{}
		mockPlaces := &MockPlacesRepository{}
		spotRepo := memory.NewSpotRepository(logger)
		uc := usecase.NewAggregatorUseCase(mockOSM, mockPlaces, spotRepo, logger, 500, 2000)

		_, err := uc.Refresh(ctx, 95.0, 8.5417)
		assert.Equal(t, errors.ErrInvalidCoordinates, err)
		mockOSM.AssertNotCalled(t, "FetchParkingSpots")
	})
}
