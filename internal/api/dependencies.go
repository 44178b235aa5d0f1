package api

import (
	"context"
	"fmt"

	"skycast/internal/common"
	"skycast/internal/config"
	"skycast/internal/db"
	"skycast/internal/db/repositories"
	"skycast/internal/logging"
	"skycast/internal/metrics"
	"skycast/internal/services"

	"github.com/jonboulle/clockwork"
)

// Dependencies wires the process-wide services: all of these are built
// once before serving begins and shared read-only by every request.
type Dependencies struct {
	Cfg        *config.Config
	Metrics    *metrics.MetricsRegistry
	Directory  *services.AirportDirectory
	Cache      common.CacheInterface
	Weather    *services.WeatherService
	Model      *services.ModelAdapter
	History    repositories.HistoryRepository
	Prediction *services.PredictionService
}

func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	// Airport directory: a missing or malformed dataset degrades to an
	// empty directory; every lookup then 404s but the service serves.
	directory, err := services.LoadAirportDirectory(cfg.AirportDataPath)
	if err != nil {
		logging.Error("Failed to load airport dataset, starting with empty directory",
			"path", cfg.AirportDataPath,
			"error", err.Error(),
		)
		directory = services.NewEmptyDirectory()
	} else {
		logging.Info("Airport directory loaded", "airports", directory.Count())
	}

	cache, err := initCache(cfg)
	if err != nil {
		return nil, err
	}

	weatherSvc := services.NewWeatherService(cfg, cache, metricsReg)

	// Model: absence is an explicit degraded mode, logged once here.
	model, err := services.LoadModelAdapter(cfg.ModelPath)
	if err != nil {
		logging.Warn("Prediction model unavailable, serving placeholder predictions",
			"path", cfg.ModelPath,
			"error", err.Error(),
		)
		model = services.NewPlaceholderAdapter()
	} else {
		logging.Info("Prediction model loaded", "path", cfg.ModelPath)
	}

	history, err := initHistory(cfg)
	if err != nil {
		return nil, err
	}

	predictionSvc := services.NewPredictionService(
		directory,
		weatherSvc,
		model,
		history,
		metricsReg,
		clockwork.NewRealClock(),
	)

	return &Dependencies{
		Cfg:        cfg,
		Metrics:    metricsReg,
		Directory:  directory,
		Cache:      cache,
		Weather:    weatherSvc,
		Model:      model,
		History:    history,
		Prediction: predictionSvc,
	}, nil
}

func initCache(cfg *config.Config) (common.CacheInterface, error) {
	if cfg.CacheBackend == "redis" {
		cache, err := common.NewRedisCacheService()
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
		logging.Info("Using Redis cache backend")
		return cache, nil
	}
	return common.NewCacheService(300, 600), nil
}

func initHistory(cfg *config.Config) (repositories.HistoryRepository, error) {
	ctx := context.Background()

	switch cfg.HistoryDriver {
	case "sqlite":
		orm, err := db.InitORM("sqlite", cfg.SqlitePath)
		if err != nil {
			return nil, fmt.Errorf("init sqlite history store: %w", err)
		}
		repo := repositories.NewGormHistoryRepository(orm)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("migrate history schema: %w", err)
		}
		logging.Info("History store ready", "driver", "sqlite", "path", cfg.SqlitePath)
		return repo, nil

	default: // postgres
		conn, err := db.InitPostgres(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to Postgres: %w", err)
		}
		repo := repositories.NewPostgresHistoryRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure history schema: %w", err)
		}
		logging.Info("History store ready", "driver", "postgres")
		return repo, nil
	}
}
