package googleplaces

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

const (
	cacheNamespace = "google"
	searchQuery    = "Parkplatz"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// placesResponse - ответ Google Places Text Search API
type placesResponse struct {
	Results []domain.GooglePlace `json:"results"`
	Status  string               `json:"status"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	maxRadius  int
	nameFilter []string
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

// NewClient создает клиент Google Places Text Search.
// Без API-ключа провайдер считается отключенным и не делает сетевых запросов.
func NewClient(cfg *config.PlacesConfig, cache repository.CacheRepository, logger *zap.Logger) repository.PlacesRepository {
	return &client{
		httpClient: &http.Client{},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		maxRadius:  cfg.MaxRadius,
		nameFilter: cfg.NameFilter,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		timeout:    cfg.RequestTimeout,
		logger:     logger,
	}
}

// FetchParkingSpots ищет парковки текстовым поиском вокруг координат.
// TTL кеша длиннее, чем у OSM: каждый запрос к Google платный.
func (c *client) FetchParkingSpots(
	ctx context.Context,
	lat, lng float64,
	radius int,
) ([]domain.GooglePlace, domain.FetchOutcome) {
	if c.apiKey == "" {
		return []domain.GooglePlace{}, domain.OutcomeDisabled
	}

	if radius > c.maxRadius {
		radius = c.maxRadius
	}

	cacheKey := utils.QueryCacheKey(cacheNamespace, lat, lng, radius)

	if places, ok := c.fromCache(ctx, cacheKey); ok {
		if len(places) == 0 {
			return places, domain.OutcomeEmpty
		}
		return places, domain.OutcomeSuccess
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("query", searchQuery)
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", radius))
	params.Set("language", c.language)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("Failed to create Places request", zap.Error(err))
		return []domain.GooglePlace{}, domain.OutcomeTimeout
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Places request failed", zap.Error(err))
		return []domain.GooglePlace{}, domain.OutcomeTimeout
	}
	defer resp.Body.Close()

	// Ошибки не кешируем: следующий запрос попробует снова
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Places API returned error",
			zap.Int("status_code", resp.StatusCode))
		return []domain.GooglePlace{}, domain.OutcomeUpstreamError
	}

	var placesResp placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&placesResp); err != nil {
		c.logger.Warn("Failed to decode Places response", zap.Error(err))
		return []domain.GooglePlace{}, domain.OutcomeUpstreamError
	}

	if placesResp.Status != statusOK && placesResp.Status != statusZeroResults {
		c.logger.Warn("Places API returned non-OK status",
			zap.String("status", placesResp.Status))
		return []domain.GooglePlace{}, domain.OutcomeUpstreamError
	}

	if len(placesResp.Results) == 0 {
		empty := []domain.GooglePlace{}
		c.toCache(ctx, cacheKey, empty)
		return empty, domain.OutcomeEmpty
	}

	filtered := c.filterParking(placesResp.Results)

	c.logger.Debug("Places fetch successful",
		zap.Int("results", len(placesResp.Results)),
		zap.Int("after_filter", len(filtered)))

	c.toCache(ctx, cacheKey, filtered)
	if len(filtered) == 0 {
		return filtered, domain.OutcomeEmpty
	}
	return filtered, domain.OutcomeSuccess
}

// filterParking оставляет места с парковочным термином в имени или
// с категорией parking. Поиск и так таргетирован, но выдача текстового
// поиска содержит и нерелеватные места рядом.
func (c *client) filterParking(places []domain.GooglePlace) []domain.GooglePlace {
	filtered := make([]domain.GooglePlace, 0, len(places))
	for _, place := range places {
		if c.isParking(place) {
			filtered = append(filtered, place)
		}
	}
	return filtered
}

func (c *client) isParking(place domain.GooglePlace) bool {
	name := strings.ToLower(place.Name)
	for _, term := range c.nameFilter {
		if strings.Contains(name, term) {
			return true
		}
	}
	for _, placeType := range place.Types {
		if placeType == "parking" {
			return true
		}
	}
	return false
}

func (c *client) fromCache(ctx context.Context, key string) ([]domain.GooglePlace, bool) {
	data, err := c.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var places []domain.GooglePlace
	if err := json.Unmarshal(data, &places); err != nil {
		c.logger.Warn("Failed to unmarshal cached places", zap.Error(err))
		return nil, false
	}
	return places, true
}

func (c *client) toCache(ctx context.Context, key string, places []domain.GooglePlace) {
	data, err := json.Marshal(places)
	if err != nil {
		c.logger.Error("Failed to marshal places for cache", zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.logger.Warn("Failed to cache places", zap.Error(err))
	}
}
