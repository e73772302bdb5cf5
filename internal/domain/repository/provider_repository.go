package repository

import (
	"context"

	"github.com/parking-microservice/internal/domain"
)

// OSMRepository - клиент Overpass API для поиска парковок.
// Контракт: всегда возвращает список (возможно пустой), никогда не error.
type OSMRepository interface {
	// FetchParkingSpots ищет парковки-узлы в радиусе от координат (радиус в метрах)
	FetchParkingSpots(ctx context.Context, lat, lng float64, radius int) ([]domain.OSMParkingSpot, domain.FetchOutcome)
}

// PlacesRepository - клиент Google Places Text Search для поиска парковок.
// Контракт: всегда возвращает список (возможно пустой), никогда не error.
type PlacesRepository interface {
	// FetchParkingSpots ищет места с "Parkplatz" в радиусе от координат (радиус в метрах)
	FetchParkingSpots(ctx context.Context, lat, lng float64, radius int) ([]domain.GooglePlace, domain.FetchOutcome)
}
