package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/wholesale-api/internal/application/ordering"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/cache"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/memory"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/storage"
	"github.com/jhoicas/wholesale-api/pkg/config"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// repositories persistence chosen by DB_DRIVER.
type repositories struct {
	users      repository.UserRepository
	suppliers  repository.SupplierRepository
	holidays   repository.HolidayRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	deliveries repository.DeliveryRepository
	orders     repository.OrderRepository
	addresses  repository.AddressRepository
	cards      repository.CardRepository
	stats      repository.StatsRepository
	tx         ordering.TxRunner
	close      func()
}

func openRepositories(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*repositories, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: data is lost on restart")
		s := memory.NewStore()
		return &repositories{
			users:      s.Users(),
			suppliers:  s.Suppliers(),
			holidays:   s.Holidays(),
			categories: s.Categories(),
			products:   s.Products(),
			deliveries: s.Deliveries(),
			orders:     s.Orders(),
			addresses:  s.Addresses(),
			cards:      s.Cards(),
			stats:      s.Stats(),
			tx:         s,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migration applied")
		}
	}
	return &repositories{
		users:      postgres.NewUserRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		holidays:   postgres.NewHolidayRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		deliveries: postgres.NewDeliveryRepository(pool),
		orders:     postgres.NewOrderRepository(pool),
		addresses:  postgres.NewAddressRepository(pool),
		cards:      postgres.NewCardRepository(pool),
		stats:      postgres.NewStatsRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

// openStatsCache falls back to no caching when Redis is not configured or not reachable.
func openStatsCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (ports.StatsCache, func()) {
	if cfg.Addr == "" {
		return cache.NoopStatsCache{}, func() {}
	}
	rc := cache.NewRedisStatsCache(cfg.Addr, cfg.Password, cfg.DB)
	if err := rc.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, dashboard stats are not cached")
		_ = rc.Close()
		return cache.NoopStatsCache{}, func() {}
	}
	return rc, func() { _ = rc.Close() }
}

// openImageStore returns the store and, for the local driver, the directory to serve.
func openImageStore(ctx context.Context, cfg config.StorageConfig) (ports.ImageStore, string, func(), error) {
	if cfg.Driver == "gcs" {
		gcs, err := storage.NewGCSStore(ctx, storage.GCSConfig{
			Bucket:          cfg.GCSBucket,
			PublicBase:      cfg.GCSPublicBase,
			CredentialsJSON: cfg.GCSCredentialsJSON,
		})
		if err != nil {
			return nil, "", nil, err
		}
		return gcs, "", func() { _ = gcs.Close() }, nil
	}
	local, err := storage.NewLocalStore(cfg.LocalDir, cfg.PublicPath)
	if err != nil {
		return nil, "", nil, err
	}
	return local, cfg.LocalDir, func() {}, nil
}
