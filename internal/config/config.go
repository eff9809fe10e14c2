package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

// MapboxConfig holds credentials for the directions/geocoding provider.
type MapboxConfig struct {
	AccessToken string `yaml:"access_token" validate:"required"`
}

// CacheConfig selects the persistent coordinate-cache backend.
type CacheConfig struct {
	Backend     string `yaml:"backend" validate:"oneof=sqlite postgres redis"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
	RedisAddr   string `yaml:"redis_addr"`
}

// PrewarmConfig controls startup geocoding of the cheapest stations.
type PrewarmConfig struct {
	Enabled bool `yaml:"enabled"`
	Limit   int  `yaml:"limit" validate:"gte=0"`
}

// DefaultsConfig provides planning defaults applied when a request omits them.
type DefaultsConfig struct {
	RangeMiles         float64 `yaml:"range_miles" validate:"gt=0"`
	MPG                float64 `yaml:"mpg" validate:"gt=0"`
	StationRadiusMiles float64 `yaml:"station_radius_miles" validate:"gt=0"`
	GeocodeBudget      int     `yaml:"geocode_budget" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Mapbox   MapboxConfig   `yaml:"mapbox"`
	FuelCSV  string         `yaml:"fuel_csv" validate:"required"`
	Cache    CacheConfig    `yaml:"cache"`
	Prewarm  PrewarmConfig  `yaml:"prewarm"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Load reads the YAML config file at path (if it exists), applies environment
// overrides, fills defaults, and validates the result. A missing file is not
// an error: everything can come from the environment.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return AppConfig{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: validate: %w", err)
	}

	switch cfg.Cache.Backend {
	case "sqlite":
		if cfg.Cache.SQLitePath == "" {
			return AppConfig{}, fmt.Errorf("config: sqlite backend requires sqlite_path")
		}
	case "postgres":
		if cfg.Cache.DatabaseURL == "" {
			return AppConfig{}, fmt.Errorf("config: postgres backend requires database_url or DATABASE_URL")
		}
	case "redis":
		if cfg.Cache.RedisAddr == "" {
			return AppConfig{}, fmt.Errorf("config: redis backend requires redis_addr or REDIS_ADDR")
		}
	}

	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MAPBOX_ACCESS_TOKEN"); v != "" {
		cfg.Mapbox.AccessToken = v
	}
	if v := os.Getenv("FUEL_CSV_PATH"); v != "" {
		cfg.FuelCSV = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Cache.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "sqlite"
	}
	if cfg.Cache.Backend == "sqlite" && cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/app.db"
	}
	if cfg.FuelCSV == "" {
		cfg.FuelCSV = "data/fuel-prices.csv"
	}
	if cfg.Prewarm.Limit == 0 {
		cfg.Prewarm.Limit = 100
	}
	if cfg.Defaults.RangeMiles == 0 {
		cfg.Defaults.RangeMiles = 500
	}
	if cfg.Defaults.MPG == 0 {
		cfg.Defaults.MPG = 10
	}
	if cfg.Defaults.StationRadiusMiles == 0 {
		cfg.Defaults.StationRadiusMiles = 50
	}
	if cfg.Defaults.GeocodeBudget == 0 {
		cfg.Defaults.GeocodeBudget = 50
	}
}
