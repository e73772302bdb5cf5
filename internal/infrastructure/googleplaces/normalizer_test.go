package googleplaces

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parking-microservice/internal/domain"
)

func TestNormalize(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("maps all provider fields", func(t *testing.T) {
		raw := domain.GooglePlace{
			PlaceID: "p1",
			Name:    "Parkhaus Altstadt",
			Geometry: domain.Geometry{
				Location: domain.LatLng{Lat: 47.378, Lng: 8.543},
			},
			FormattedAddress: "Altstadtgasse 1, 8001 Zürich",
			Rating:           4.2,
			Types:            []string{"parking"},
		}

		spot := Normalize(raw, now)

		assert.Equal(t, "google_p1", spot.ID)
		assert.Equal(t, 47.378, spot.Lat)
		assert.Equal(t, 8.543, spot.Lng)
		assert.Equal(t, domain.StatusFree, spot.Status)
		assert.Equal(t, now, spot.ReportedAt)
		assert.Equal(t, domain.SourceGoogle, spot.Source)
		require.NotNil(t, spot.Name)
		assert.Equal(t, "Parkhaus Altstadt", *spot.Name)
		require.NotNil(t, spot.Address)
		assert.Equal(t, "Altstadtgasse 1, 8001 Zürich", *spot.Address)
		require.NotNil(t, spot.Rating)
		assert.Equal(t, 4.2, *spot.Rating)
	})

	t.Run("optional fields stay nil when absent", func(t *testing.T) {
		raw := domain.GooglePlace{
			PlaceID: "p2",
			Name:    "Parkplatz Bahnhof",
			Geometry: domain.Geometry{
				Location: domain.LatLng{Lat: 47.379, Lng: 8.544},
			},
		}

		spot := Normalize(raw, now)

		assert.Equal(t, "google_p2", spot.ID)
		assert.Nil(t, spot.Address)
		assert.Nil(t, spot.Rating)
	})
}
