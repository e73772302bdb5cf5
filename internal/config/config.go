package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Cache  CacheConfig
	OSM    OSMConfig
	Places PlacesConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig выбирает бекенд кеша провайдерских запросов.
// memory - процессный кеш (по умолчанию), redis - внешний Redis.
type CacheConfig struct {
	Backend string
}

// OSMConfig - настройки клиента Overpass API
type OSMConfig struct {
	Endpoints      []string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	Radius         int
}

// PlacesConfig - настройки клиента Google Places API
type PlacesConfig struct {
	APIKey         string
	BaseURL        string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	Radius         int
	MaxRadius      int
	Language       string
	NameFilter     []string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: без него конфигурация берется из окружения
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok &&
			!strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend: viper.GetString("CACHE_BACKEND"),
		},
		OSM: OSMConfig{
			Endpoints:      parseList(viper.GetString("OSM_ENDPOINTS")),
			CacheTTL:       time.Duration(viper.GetInt("OSM_CACHE_TTL")) * time.Second,
			RequestTimeout: time.Duration(viper.GetInt("OSM_REQUEST_TIMEOUT")) * time.Second,
			Radius:         viper.GetInt("OSM_RADIUS"),
		},
		Places: PlacesConfig{
			APIKey:         viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:        viper.GetString("PLACES_BASE_URL"),
			CacheTTL:       time.Duration(viper.GetInt("PLACES_CACHE_TTL")) * time.Second,
			RequestTimeout: time.Duration(viper.GetInt("PLACES_REQUEST_TIMEOUT")) * time.Second,
			Radius:         viper.GetInt("PLACES_RADIUS"),
			MaxRadius:      viper.GetInt("PLACES_MAX_RADIUS"),
			Language:       viper.GetString("PLACES_LANGUAGE"),
			NameFilter:     parseList(viper.GetString("PLACES_NAME_FILTER")),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if len(cfg.OSM.Endpoints) == 0 {
		cfg.OSM.Endpoints = []string{
			"https://overpass-api.de/api/interpreter",
			"https://overpass.kumi.systems/api/interpreter",
			"https://overpass.openstreetmap.fr/api/interpreter",
		}
	}
	if cfg.OSM.CacheTTL == 0 {
		cfg.OSM.CacheTTL = 5 * time.Minute
	}
	if cfg.OSM.RequestTimeout == 0 {
		cfg.OSM.RequestTimeout = 15 * time.Second
	}
	if cfg.OSM.Radius == 0 {
		cfg.OSM.Radius = 500
	}
	if cfg.Places.BaseURL == "" {
		cfg.Places.BaseURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	}
	if cfg.Places.CacheTTL == 0 {
		cfg.Places.CacheTTL = 10 * time.Minute
	}
	if cfg.Places.RequestTimeout == 0 {
		cfg.Places.RequestTimeout = 10 * time.Second
	}
	if cfg.Places.Radius == 0 {
		cfg.Places.Radius = 2000
	}
	if cfg.Places.MaxRadius == 0 {
		cfg.Places.MaxRadius = 2000
	}
	if cfg.Places.Language == "" {
		cfg.Places.Language = "de"
	}
	if len(cfg.Places.NameFilter) == 0 {
		cfg.Places.NameFilter = []string{"parkplatz", "parking", "parkhaus", "park deck"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
