package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/utils"
	"go.uber.org/zap"
)

const cacheNamespace = "osm"

// overpassResponse - ответ Overpass API
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// overpassElement - элемент ответа; координаты либо на верхнем уровне
// (node), либо вложены в center (way/relation)
type overpassElement struct {
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type client struct {
	httpClient *http.Client
	endpoints  []string
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient создает клиент Overpass API с fallback-эндпоинтами.
// Контракт: FetchParkingSpots всегда возвращает список, никогда не error.
func NewClient(cfg *config.OSMConfig, cache repository.CacheRepository, logger *zap.Logger) repository.OSMRepository {
	return &client{
		httpClient: &http.Client{},
		endpoints:  cfg.Endpoints,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		timeout:    cfg.RequestTimeout,
		logger:     logger,
	}
}

// FetchParkingSpots ищет парковки-узлы в радиусе от координат.
// Эндпоинты перебираются в фиксированном порядке: таймаут и 503/504
// переключают на следующий, прочие ошибки завершают перебор.
func (c *client) FetchParkingSpots(
	ctx context.Context,
	lat, lng float64,
	radius int,
) ([]domain.OSMParkingSpot, domain.FetchOutcome) {
	cacheKey := utils.QueryCacheKey(cacheNamespace, lat, lng, radius)

	if spots, ok := c.fromCache(ctx, cacheKey); ok {
		if len(spots) == 0 {
			return spots, domain.OutcomeEmpty
		}
		return spots, domain.OutcomeSuccess
	}

	query := buildQuery(lat, lng, radius)

	for _, endpoint := range c.endpoints {
		spots, outcome := c.tryEndpoint(ctx, endpoint, query)
		switch outcome {
		case domain.OutcomeSuccess, domain.OutcomeEmpty:
			c.toCache(ctx, cacheKey, spots)
			return spots, outcome
		case domain.OutcomeUpstreamError:
			// Не кешируем: следующий запрос попробует снова
			return []domain.OSMParkingSpot{}, outcome
		}
		// OutcomeTimeout: пробуем следующий эндпоинт
	}

	c.logger.Warn("All Overpass endpoints failed",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.Int("radius", radius))
	return []domain.OSMParkingSpot{}, domain.OutcomeTimeout
}

func (c *client) tryEndpoint(ctx context.Context, endpoint, query string) ([]domain.OSMParkingSpot, domain.FetchOutcome) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("Failed to create Overpass request", zap.Error(err))
		return nil, domain.OutcomeTimeout
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Таймаут или сетевая ошибка - переходим к следующему эндпоинту
		c.logger.Warn("Overpass request failed, trying next endpoint",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, domain.OutcomeTimeout
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout {
		c.logger.Warn("Overpass endpoint busy, trying next",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode))
		return nil, domain.OutcomeTimeout
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Overpass endpoint returned error",
			zap.String("endpoint", endpoint),
			zap.Int("status_code", resp.StatusCode))
		return nil, domain.OutcomeUpstreamError
	}

	var overpassResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		c.logger.Warn("Failed to decode Overpass response, trying next endpoint",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, domain.OutcomeTimeout
	}

	if len(overpassResp.Elements) == 0 {
		return []domain.OSMParkingSpot{}, domain.OutcomeEmpty
	}

	spots := make([]domain.OSMParkingSpot, 0, len(overpassResp.Elements))
	for _, element := range overpassResp.Elements {
		spotLat, spotLon, ok := element.coordinates()
		if !ok {
			// Запись без координат отбрасывается
			continue
		}

		tags := element.Tags
		if tags == nil {
			tags = map[string]string{}
		}

		spots = append(spots, domain.OSMParkingSpot{
			ID:   fmt.Sprintf("osm_%d", element.ID),
			Lat:  spotLat,
			Lon:  spotLon,
			Tags: tags,
		})
	}

	c.logger.Debug("Overpass fetch successful",
		zap.String("endpoint", endpoint),
		zap.Int("spots", len(spots)))
	return spots, domain.OutcomeSuccess
}

func (e *overpassElement) coordinates() (float64, float64, bool) {
	if e.Lat != nil && e.Lon != nil {
		return *e.Lat, *e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// buildQuery собирает Overpass-запрос: только node с amenity=parking
// в радиусе от точки (node быстрее, чем way/relation)
func buildQuery(lat, lng float64, radius int) string {
	return fmt.Sprintf(
		"[out:json][timeout:10];(node[\"amenity\"=\"parking\"](around:%d,%f,%f););out tags;",
		radius, lat, lng,
	)
}

func (c *client) fromCache(ctx context.Context, key string) ([]domain.OSMParkingSpot, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var spots []domain.OSMParkingSpot
	if err := json.Unmarshal(data, &spots); err != nil {
		c.logger.Warn("Failed to unmarshal cached OSM spots", zap.Error(err))
		return nil, false
	}
	return spots, true
}

func (c *client) toCache(ctx context.Context, key string, spots []domain.OSMParkingSpot) {
	data, err := json.Marshal(spots)
	if err != nil {
		c.logger.Error("Failed to marshal OSM spots for cache", zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.logger.Warn("Failed to cache OSM spots", zap.Error(err))
	}
}
