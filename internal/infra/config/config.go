package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Weather  WeatherConfig  `yaml:"weather"`
	Model    ModelConfig    `yaml:"model"`
	Postgres PostgresConfig `yaml:"postgres"`
	Cache    CacheConfig    `yaml:"cache"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
}

// WeatherConfig points at the forecast provider.
type WeatherConfig struct {
	BaseURL string                `yaml:"baseUrl"`
	Horizon int                   `yaml:"horizon"`
	Cities  map[string]CityCoords `yaml:"cities"`
}

// CityCoords locates a supported city for the forecast API.
type CityCoords struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ModelConfig locates the prediction artifact and its encoders.
type ModelConfig struct {
	PredictorURL  string      `yaml:"predictorUrl"`
	EncodersPath  string      `yaml:"encodersPath"`
	FallbackPrice float64     `yaml:"fallbackPrice"`
	Minio         MinioConfig `yaml:"minio"`
}

// MinioConfig describes the optional object-storage source for the encoder
// artifact. When disabled the local EncodersPath is used directly.
type MinioConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSsl"`
	Bucket    string `yaml:"bucket"`
	Object    string `yaml:"object"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// CacheConfig controls the valkey forecast cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_HORIZON"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Weather.Horizon = parsed
		}
	}
	if v := os.Getenv("MODEL_PREDICTOR_URL"); v != "" {
		cfg.Model.PredictorURL = v
	}
	if v := os.Getenv("MODEL_ENCODERS_PATH"); v != "" {
		cfg.Model.EncodersPath = v
	}
	if v := os.Getenv("MODEL_FALLBACK_PRICE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Model.FallbackPrice = parsed
		}
	}
	if v := os.Getenv("MODEL_MINIO_ENABLED"); v != "" {
		cfg.Model.Minio.Enabled = isTruthy(v)
	}
	if v := os.Getenv("MODEL_MINIO_ENDPOINT"); v != "" {
		cfg.Model.Minio.Endpoint = v
	}
	if v := os.Getenv("MODEL_MINIO_ACCESS_KEY"); v != "" {
		cfg.Model.Minio.AccessKey = v
	}
	if v := os.Getenv("MODEL_MINIO_SECRET_KEY"); v != "" {
		cfg.Model.Minio.SecretKey = v
	}
	if v := os.Getenv("MODEL_MINIO_BUCKET"); v != "" {
		cfg.Model.Minio.Bucket = v
	}
	if v := os.Getenv("MODEL_MINIO_OBJECT"); v != "" {
		cfg.Model.Minio.Object = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = isTruthy(v)
	}
	if v := os.Getenv("CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Auth: AuthConfig{
			TokenTTL:        24 * time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.open-meteo.com/v1/forecast",
			Horizon: 10,
			Cities: map[string]CityCoords{
				"Bengaluru":    {Latitude: 12.9716, Longitude: 77.5946},
				"Ramanagar":    {Latitude: 12.7209, Longitude: 77.2799},
				"Siddlaghatta": {Latitude: 13.3867, Longitude: 77.8631},
			},
		},
		Model: ModelConfig{
			EncodersPath:  "model/encoders.json",
			FallbackPrice: 450.0,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("auth.refreshTokenTtl must be positive")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Weather.Horizon < 1 || c.Weather.Horizon > 16 {
		return errors.New("weather.horizon must be between 1 and 16")
	}
	if len(c.Weather.Cities) == 0 {
		return errors.New("weather.cities cannot be empty")
	}
	if c.Model.EncodersPath == "" && !c.Model.Minio.Enabled {
		return errors.New("model.encodersPath cannot be empty when minio is disabled")
	}
	if c.Model.FallbackPrice <= 0 {
		return errors.New("model.fallbackPrice must be positive")
	}
	if c.Model.Minio.Enabled {
		if c.Model.Minio.Endpoint == "" {
			return errors.New("model.minio.endpoint cannot be empty when enabled")
		}
		if c.Model.Minio.Bucket == "" || c.Model.Minio.Object == "" {
			return errors.New("model.minio.bucket and object cannot be empty when enabled")
		}
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
