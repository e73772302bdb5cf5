package memory

import (
	"sync"
	"time"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// spotRepository - процессная коллекция парковочных мест.
// Единственный writer - агрегатор и пользовательские действия; все мутации
// применяются под одним мьютексом, читатели получают копию коллекции.
type spotRepository struct {
	mu     sync.RWMutex
	spots  map[string]*domain.ParkingSpot
	order  []string
	logger *zap.Logger
}

func NewSpotRepository(logger *zap.Logger) repository.SpotRepository {
	return &spotRepository{
		spots:  make(map[string]*domain.ParkingSpot),
		logger: logger,
	}
}

func (r *spotRepository) List() []domain.ParkingSpot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ParkingSpot, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.spots[id])
	}
	return result
}

func (r *spotRepository) Get(id string) (domain.ParkingSpot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spot, ok := r.spots[id]
	if !ok {
		return domain.ParkingSpot{}, false
	}
	return *spot, true
}

func (r *spotRepository) Add(spot domain.ParkingSpot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.spots[spot.ID]; exists {
		return
	}

	copied := spot
	r.spots[spot.ID] = &copied
	r.order = append(r.order, spot.ID)
}

// MergeNew добавляет только записи с ещё не известными ID. Существующие
// записи не перезаписываются: статус, однажды выставленный пользователем,
// не откатывается повторной выдачей провайдера.
func (r *spotRepository) MergeNew(spots []domain.ParkingSpot) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, spot := range spots {
		if _, exists := r.spots[spot.ID]; exists {
			continue
		}
		copied := spot
		r.spots[spot.ID] = &copied
		r.order = append(r.order, spot.ID)
		added++
	}

	if added > 0 {
		r.logger.Debug("Spots merged",
			zap.Int("added", added),
			zap.Int("total", len(r.order)))
	}
	return added
}

func (r *spotRepository) UpdateStatus(id string, status domain.SpotStatus) (domain.ParkingSpot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spot, ok := r.spots[id]
	if !ok {
		return domain.ParkingSpot{}, false
	}

	spot.Status = status
	spot.ReportedAt = time.Now()
	return *spot, true
}

func (r *spotRepository) ToggleFavorite(id string) (domain.ParkingSpot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spot, ok := r.spots[id]
	if !ok {
		return domain.ParkingSpot{}, false
	}

	spot.Favorite = !spot.Favorite
	return *spot, true
}
