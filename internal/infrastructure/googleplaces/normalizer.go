package googleplaces

import (
	"time"

	"github.com/parking-microservice/internal/domain"
)

// Normalize преобразует запись Google Places в общую форму ParkingSpot.
// Рейтинг сохраняется в шкале провайдера без пересчёта.
func Normalize(raw domain.GooglePlace, now time.Time) domain.ParkingSpot {
	name := raw.Name

	spot := domain.ParkingSpot{
		ID:         "google_" + raw.PlaceID,
		Lat:        raw.Geometry.Location.Lat,
		Lng:        raw.Geometry.Location.Lng,
		Status:     domain.StatusFree,
		ReportedAt: now,
		Source:     domain.SourceGoogle,
		Name:       &name,
	}

	if raw.FormattedAddress != "" {
		address := raw.FormattedAddress
		spot.Address = &address
	}
	if raw.Rating != 0 {
		rating := raw.Rating
		spot.Rating = &rating
	}

	return spot
}
