package overpass

import (
	"strings"
	"time"

	"github.com/parking-microservice/internal/domain"
)

// Normalize преобразует сырую OSM-запись в общую форму ParkingSpot.
// Тотальна для записей с координатами: статус по умолчанию free,
// имя - из тегов или сгенерированный ярлык по хвосту идентификатора.
func Normalize(raw domain.OSMParkingSpot, now time.Time) domain.ParkingSpot {
	name := raw.Tags["name"]
	if name == "" {
		name = "Parkplatz " + idTail(raw.ID)
	}

	spot := domain.ParkingSpot{
		ID:         raw.ID,
		Lat:        raw.Lat,
		Lng:        raw.Lon,
		Status:     domain.StatusFree,
		ReportedAt: now,
		Source:     domain.SourceOSM,
		Name:       &name,
	}

	if capacity, ok := raw.Tags["capacity"]; ok && capacity != "" {
		spot.Capacity = &capacity
	}

	return spot
}

// idTail возвращает последние 6 символов нативного идентификатора,
// дополненные нулями слева: osm_42 -> "000042"
func idTail(id string) string {
	native := strings.TrimPrefix(id, "osm_")
	if len(native) < 6 {
		native = strings.Repeat("0", 6-len(native)) + native
	}
	return native[len(native)-6:]
}
