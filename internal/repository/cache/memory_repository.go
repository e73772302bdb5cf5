package cache

import (
	"context"
	"sync"
	"time"

	"github.com/parking-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryRepository - процессный кеш провайдерских запросов.
// Запись с истекшим TTL считается отсутствующей и удаляется при чтении.
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  *zap.Logger
	now     func() time.Time
}

func NewMemoryRepository(logger *zap.Logger) repository.CacheRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		logger:  logger,
		now:     time.Now,
	}
}

func (r *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, nil // Cache miss
	}

	if r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		r.logger.Debug("Cache entry expired", zap.String("key", key))
		return nil, nil
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return entry.value, nil
}

func (r *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	r.entries[key] = memoryEntry{
		value:     value,
		expiresAt: r.now().Add(ttl),
	}
	r.mu.Unlock()

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

func (r *memoryRepository) Exists(ctx context.Context, key string) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}
