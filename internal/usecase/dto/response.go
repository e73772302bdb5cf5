package dto

import "github.com/parking-microservice/internal/domain"

// SpotsResponse - ответ с коллекцией парковочных мест
type SpotsResponse struct {
	Spots []domain.ParkingSpot `json:"spots"`
	Total int                  `json:"total"`
}

// SpotResponse - ответ с одним парковочным местом
type SpotResponse struct {
	Spot domain.ParkingSpot `json:"spot"`
}
