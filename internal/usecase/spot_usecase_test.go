package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/repository/memory"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(s string) *string    { return &s }

func TestSpotUseCase_AddSpot(t *testing.T) {
	logger := zap.NewNop()

	t.Run("generates local id and defaults status to free", func(t *testing.T) {
		uc := usecase.NewSpotUseCase(memory.NewSpotRepository(logger), logger)

		spot, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.37, Lng: 8.54, Name: ptrString("Hinterhof")})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(spot.ID, "local_"))
		assert.Equal(t, domain.StatusFree, spot.Status)
		assert.Equal(t, domain.SourceLocal, spot.Source)
		assert.False(t, spot.ReportedAt.IsZero())
		require.NotNil(t, spot.Name)
		assert.Equal(t, "Hinterhof", *spot.Name)
	})

	t.Run("unique ids across additions", func(t *testing.T) {
		uc := usecase.NewSpotUseCase(memory.NewSpotRepository(logger), logger)

		first, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.37, Lng: 8.54})
		require.NoError(t, err)
		second, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.37, Lng: 8.54})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := usecase.NewSpotUseCase(memory.NewSpotRepository(logger), logger)

		_, err := uc.AddSpot(dto.AddSpotRequest{Lat: 91.0, Lng: 8.54})
		assert.Error(t, err)
	})
}

func TestSpotUseCase_ReportStatus(t *testing.T) {
	logger := zap.NewNop()
	repo := memory.NewSpotRepository(logger)
	uc := usecase.NewSpotUseCase(repo, logger)

	spot, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.37, Lng: 8.54})
	require.NoError(t, err)

	t.Run("updates status and reported time", func(t *testing.T) {
		updated, err := uc.ReportStatus(spot.ID, domain.StatusOccupied)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOccupied, updated.Status)
		assert.False(t, updated.ReportedAt.Before(spot.ReportedAt))
	})

	t.Run("unknown spot", func(t *testing.T) {
		_, err := uc.ReportStatus("osm_missing", domain.StatusFree)
		assert.Error(t, err)
	})

	t.Run("invalid status value", func(t *testing.T) {
		_, err := uc.ReportStatus(spot.ID, domain.SpotStatus("maybe"))
		assert.Error(t, err)
	})
}

func TestSpotUseCase_ListSpots(t *testing.T) {
	logger := zap.NewNop()
	repo := memory.NewSpotRepository(logger)
	uc := usecase.NewSpotUseCase(repo, logger)

	// Near spot occupied, far spot free
	near, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.3770, Lng: 8.5418})
	require.NoError(t, err)
	far, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.40, Lng: 8.60})
	require.NoError(t, err)
	_, err = uc.ReportStatus(near.ID, domain.StatusOccupied)
	require.NoError(t, err)

	t.Run("filters by status", func(t *testing.T) {
		spots := uc.ListSpots(dto.ListSpotsQuery{Status: "free"})
		require.Len(t, spots, 1)
		assert.Equal(t, far.ID, spots[0].ID)
	})

	t.Run("sorts by distance from origin", func(t *testing.T) {
		spots := uc.ListSpots(dto.ListSpotsQuery{
			Lat: ptrFloat64(47.3769),
			Lng: ptrFloat64(8.5417),
		})
		require.Len(t, spots, 2)
		assert.Equal(t, near.ID, spots[0].ID)
		assert.Equal(t, far.ID, spots[1].ID)
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		spots := uc.ListSpots(dto.ListSpotsQuery{})
		assert.Len(t, spots, 2)
	})
}

func TestSpotUseCase_ToggleFavorite(t *testing.T) {
	logger := zap.NewNop()
	repo := memory.NewSpotRepository(logger)
	uc := usecase.NewSpotUseCase(repo, logger)

	spot, err := uc.AddSpot(dto.AddSpotRequest{Lat: 47.37, Lng: 8.54})
	require.NoError(t, err)

	toggled, err := uc.ToggleFavorite(spot.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Favorite)

	_, err = uc.ToggleFavorite("unknown")
	assert.Error(t, err)
}
