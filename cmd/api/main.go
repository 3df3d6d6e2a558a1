package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"infographic/internal/adapter/repo"
	"infographic/internal/domain"
	"infographic/internal/http/handlers"
	httpapi "infographic/internal/http/httpapi"
	"infographic/internal/infra"
	"infographic/internal/infra/geoip"
	"infographic/internal/providers/image"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("api exited")
	}
}

func run(ctx context.Context, cfg *infra.Config, logger infra.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip disabled")
	}
	defer func() { _ = resolver.Close() }()

	producer, err := image.NewProducer(cfg, logger)
	if err != nil {
		return fmt.Errorf("image producer: %w", err)
	}

	app := handlers.NewApp(logger, store, producer)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Config:        cfg,
		Logger:        logger,
		CountryLookup: resolver.Lookup(),
	})

	return infra.NewHTTPServer(cfg, router, logger).Run(ctx)
}

func openStore(ctx context.Context, cfg *infra.Config, logger infra.Logger) (domain.InfographicRepository, func(), error) {
	if cfg.StoreDriver == infra.StoreDriverMemory {
		logger.Warn().Msg("using in-memory store, records are lost on restart")
		return repo.NewMemoryInfographicRepository(), func() {}, nil
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if _, err := infra.Migrate(pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	runner := infra.NewSQLRunner(pool, logger)
	return repo.NewInfographicRepository(runner), pool.Close, nil
}
