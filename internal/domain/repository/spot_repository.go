package repository

import "github.com/parking-microservice/internal/domain"

// SpotRepository - in-memory коллекция парковочных мест.
// Мутации применяются атомарно: читатели никогда не видят частично
// обновлённую коллекцию.
type SpotRepository interface {
	// List возвращает снапшот всей коллекции
	List() []domain.ParkingSpot

	// Get возвращает место по ID
	Get(id string) (domain.ParkingSpot, bool)

	// Add добавляет краудсорсинговое место
	Add(spot domain.ParkingSpot)

	// MergeNew добавляет только записи с новыми ID одной атомарной операцией.
	// Уже существующие ID не перезаписываются (first-seen wins).
	// Возвращает количество добавленных записей.
	MergeNew(spots []domain.ParkingSpot) int

	// UpdateStatus меняет статус и время отчёта существующего места
	UpdateStatus(id string, status domain.SpotStatus) (domain.ParkingSpot, bool)

	// ToggleFavorite переключает флаг избранного для места
	ToggleFavorite(id string) (domain.ParkingSpot, bool)
}
