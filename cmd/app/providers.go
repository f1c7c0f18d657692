package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/valkey-io/valkey-go"

	"github.com/seristack/cocoon-recommender/internal/domain/auth"
	"github.com/seristack/cocoon-recommender/internal/domain/farmer"
	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
	"github.com/seristack/cocoon-recommender/internal/domain/market"
	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/recommend"
	"github.com/seristack/cocoon-recommender/internal/infra/config"
	"github.com/seristack/cocoon-recommender/internal/infra/farmerrepo"
	"github.com/seristack/cocoon-recommender/internal/infra/forecastcache"
	"github.com/seristack/cocoon-recommender/internal/infra/marketrepo"
	"github.com/seristack/cocoon-recommender/internal/infra/ml"
	"github.com/seristack/cocoon-recommender/internal/infra/recrepo"
	"github.com/seristack/cocoon-recommender/internal/infra/userrepo"
	"github.com/seristack/cocoon-recommender/internal/infra/weather/openmeteo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideRecommendConfig(cfg *config.Config) recommend.Config {
	return recommend.Config{Horizon: cfg.Weather.Horizon}
}

func provideWeatherProvider(cfg *config.Config) forecast.Provider {
	cities := make(map[string]openmeteo.Coordinates, len(cfg.Weather.Cities))
	for name, coords := range cfg.Weather.Cities {
		cities[name] = openmeteo.Coordinates{Latitude: coords.Latitude, Longitude: coords.Longitude}
	}
	return openmeteo.NewClient(cfg.Weather.BaseURL, cities)
}

func providePredictor(cfg *config.Config) pricing.Predictor {
	return ml.NewClient(cfg.Model.PredictorURL)
}

func provideOracle(cfg *config.Config, predictor pricing.Predictor, logger *slog.Logger) *pricing.Oracle {
	encoders := loadEncoders(cfg, logger)
	return pricing.NewOracle(pricing.Config{FallbackPrice: cfg.Model.FallbackPrice}, encoders, predictor, logger)
}

// loadEncoders resolves the categorical vocabulary: object storage when
// enabled, then the local artifact path, then the vocabulary the bundled
// model was trained with.
func loadEncoders(cfg *config.Config, logger *slog.Logger) pricing.Encoders {
	if cfg.Model.Minio.Enabled {
		client, err := minio.New(cfg.Model.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Model.Minio.AccessKey, cfg.Model.Minio.SecretKey, ""),
			Secure: cfg.Model.Minio.UseSSL,
		})
		if err != nil {
			logger.Error("minio client init failed, trying local encoders", "error", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			encoders, err := ml.FetchEncoders(ctx, client, cfg.Model.Minio.Bucket, cfg.Model.Minio.Object)
			if err == nil {
				logger.Info("encoders loaded from object storage", "bucket", cfg.Model.Minio.Bucket, "object", cfg.Model.Minio.Object)
				return encoders
			}
			logger.Error("fetching encoders from object storage failed, trying local path", "error", err)
		}
	}
	if path := strings.TrimSpace(cfg.Model.EncodersPath); path != "" {
		encoders, err := ml.LoadEncodersFromFile(path)
		if err == nil {
			logger.Info("encoders loaded from file", "path", path)
			return encoders
		}
		logger.Warn("loading encoders from file failed, using bundled vocabulary", "path", path, "error", err)
	}
	return bundledEncoders()
}

// bundledEncoders mirrors the training-time label encoding of the shipped
// model artifact.
func bundledEncoders() pricing.Encoders {
	return pricing.Encoders{
		City:   map[string]int{"Bengaluru": 0, "Ramanagar": 1, "Siddlaghatta": 2},
		Season: map[string]int{"Monsoon": 0, "PostMonsoon": 1, "Summer": 2, "Winter": 3},
	}
}

func provideForecastCache(cfg *config.Config, logger *slog.Logger) forecast.Store {
	ttl := cfg.Cache.TTL
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return forecastcache.NewMemoryStore(ttl)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return forecastcache.NewMemoryStore(ttl)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("valkey forecast cache enabled", "addr", cfg.Cache.Addr)
			return forecastcache.NewValkeyStore(client, "forecast", ttl)
		}
	}
	return forecastcache.NewMemoryStore(ttl)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideRecommendationRepository(pool *pgxpool.Pool) recommend.Repository {
	if pool == nil {
		return recrepo.NewMemoryRepository()
	}
	return recrepo.NewPostgresRepository(pool)
}

func provideFarmerRepository(pool *pgxpool.Pool) farmer.Repository {
	if pool == nil {
		return farmerrepo.NewMemoryRepository()
	}
	return farmerrepo.NewPostgresRepository(pool)
}

func provideMarketRepository(pool *pgxpool.Pool) market.Repository {
	if pool == nil {
		return marketrepo.NewMemoryRepository()
	}
	return marketrepo.NewPostgresRepository(pool)
}

func provideFarmerService(repo farmer.Repository, oracle *pricing.Oracle, logger *slog.Logger) farmer.Service {
	return farmer.NewService(repo, oracle.Encoders().Cities(), logger)
}

func provideMarketService(repo market.Repository, oracle *pricing.Oracle, logger *slog.Logger) market.Service {
	return market.NewService(repo, oracle.Encoders().Cities(), logger)
}
