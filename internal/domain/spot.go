package domain

import "time"

// SpotStatus - статус парковочного места
type SpotStatus string

const (
	StatusFree     SpotStatus = "free"
	StatusOccupied SpotStatus = "occupied"
)

// Valid проверяет, что статус является одним из допустимых значений
func (s SpotStatus) Valid() bool {
	return s == StatusFree || s == StatusOccupied
}

// SpotSource - источник происхождения парковочного места
type SpotSource string

const (
	SourceOSM    SpotSource = "osm"
	SourceGoogle SpotSource = "google"
	SourceLocal  SpotSource = "local"
)

// ParkingSpot представляет парковочное место в объединённой коллекции.
// ID глобально уникален за счёт префикса источника: osm_<id>, google_<place_id>
// или local_<token> для краудсорсинговых записей.
type ParkingSpot struct {
	ID         string     `json:"id"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	Status     SpotStatus `json:"status"`
	ReportedAt time.Time  `json:"reported_at"`
	Source     SpotSource `json:"source"`
	Name       *string    `json:"name,omitempty"`
	Address    *string    `json:"address,omitempty"`
	Rating     *float64   `json:"rating,omitempty"`
	Capacity   *string    `json:"capacity,omitempty"`
	Favorite   bool       `json:"favorite"`
}
