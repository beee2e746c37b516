package seeder

import (
	"io"

	"sample-data-seeder/internal/seeder/adapter/cache"
	"sample-data-seeder/internal/seeder/adapter/console"
	"sample-data-seeder/internal/seeder/adapter/fixtures"
	"sample-data-seeder/internal/seeder/adapter/persistence/mongodb"
	"sample-data-seeder/internal/seeder/adapter/security"
	"sample-data-seeder/internal/seeder/config"
	"sample-data-seeder/internal/seeder/domain/repository"
	"sample-data-seeder/internal/seeder/usecase"
	"sample-data-seeder/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// SeederModule bundles the adapters and the pipeline for one database.
type SeederModule struct {
	store    repository.SeedStore
	fixtures repository.FixtureSource
	cache    *cache.RedisInvalidator
	usecase  usecase.SeedUsecaseInterface
	config   *config.Config
}

// NewSeederModule wires the production adapters around db. Console tables
// are written to out. A Redis invalidator is created only when
// CacheRedisURL is set.
func NewSeederModule(db *mongo.Database, cfg *config.Config, out io.Writer, log logger.Logger, opts usecase.Options) (*SeederModule, error) {
	hasher, err := security.NewPasswordHasher(cfg.PasswordHashCost, log)
	if err != nil {
		return nil, err
	}

	m := &SeederModule{
		store:    mongodb.NewSeedStore(db, log),
		fixtures: fixtures.NewReader(cfg.FixturesDir, log),
		config:   cfg,
	}

	var invalidator repository.CacheInvalidator
	if cfg.CacheRedisURL != "" {
		client, err := cache.NewRedisClient(cfg.CacheRedisURL)
		if err != nil {
			return nil, err
		}
		m.cache = cache.NewRedisInvalidator(client, log)
		invalidator = m.cache
	}

	m.usecase = usecase.NewSeedUsecase(m.store, m.fixtures, console.NewReporter(out), invalidator, log, opts).
		WithTransformers(hasher)
	return m, nil
}

// GetUsecase returns the seeding pipeline.
func (m *SeederModule) GetUsecase() usecase.SeedUsecaseInterface {
	return m.usecase
}

// Stop releases the cache client, if any.
func (m *SeederModule) Stop() error {
	if m.cache == nil {
		return nil
	}
	err := m.cache.Close()
	m.cache = nil
	return err
}
