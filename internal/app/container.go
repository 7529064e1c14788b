package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"jobrank/internal/config"
	"jobrank/internal/database"
	dbpostgres "jobrank/internal/database/postgres"
	dbsqlite "jobrank/internal/database/sqlite"
	"jobrank/internal/infrastructure/cache"
	"jobrank/internal/oracle"
	"jobrank/internal/rank"
	"jobrank/internal/repository"
	"jobrank/internal/usecase"
)

// Container wires the whole service: corpus store, cache, oracle client and
// the three ranking stages behind the usecases.
type Container struct {
	Config config.Config
	Logger *log.Logger
	DB     database.DB
	Cache  *cache.Redis

	Recommendation usecase.RecommendationUsecase
	Assistant      usecase.AssistantUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := connectDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	store := repository.NewSQLJobStore(db)
	if cfg.Database.Driver == "sqlite" {
		// The embedded corpus is owned by this service; create it on boot.
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure sqlite schema: %w", err)
		}
	}

	rules, err := rank.LoadRules(cfg.Rank.RulesPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load ranking rules: %w", err)
	}

	oracleClient := oracle.NewClient(cfg.Oracle.BaseURL, cfg.Oracle.APIKey, cfg.Oracle.Model, cfg.Oracle.Timeout, logger)
	if oracleClient == nil {
		logger.Printf("[Oracle] disabled, running on deterministic fallbacks only")
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	extractor := rank.NewExtractor(intentOracle(oracleClient), rules, logger)
	selector := rank.NewSelector(store, rules, logger)
	ranker := rank.NewRanker(scoringOracle(oracleClient), rules, logger)

	recommendation := usecase.NewRecommendationUsecase(extractor, selector, ranker, redisCache, logger)
	assistant := usecase.NewAssistantUsecase(recommendation, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Cache:          redisCache,
		Recommendation: recommendation,
		Assistant:      assistant,
	}, nil
}

func connectDB(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	if cfg.Driver == "sqlite" {
		return dbsqlite.Open(ctx, cfg.SQLitePath)
	}
	return dbpostgres.Connect(ctx, cfg)
}

// A nil *oracle.Client must become a nil interface, not a typed nil.
func intentOracle(c *oracle.Client) rank.IntentOracle {
	if c == nil {
		return nil
	}
	return c
}

func scoringOracle(c *oracle.Client) rank.ScoringOracle {
	if c == nil {
		return nil
	}
	return c
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
