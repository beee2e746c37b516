package seeder

import (
	"bytes"
	"io"
	"testing"

	"sample-data-seeder/internal/seeder/config"
	"sample-data-seeder/internal/seeder/usecase"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestNewSeederModule(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	log := logger.NewLoggerWithConfig("error", "text", io.Discard)

	mt.Run("without_cache", func(mt *mtest.T) {
		cfg := &config.Config{FixturesDir: "sample_data", PasswordHashCost: 4}
		m, err := NewSeederModule(mt.DB, cfg, &bytes.Buffer{}, log, usecase.Options{})
		require.NoError(mt, err)

		assert.NotNil(mt, m.GetUsecase())
		assert.Nil(mt, m.cache)
		assert.NoError(mt, m.Stop())
	})

	mt.Run("with_cache", func(mt *mtest.T) {
		cfg := &config.Config{FixturesDir: "sample_data", PasswordHashCost: 4, CacheRedisURL: "redis://localhost:6399/1"}
		m, err := NewSeederModule(mt.DB, cfg, &bytes.Buffer{}, log, usecase.Options{SkipList: true})
		require.NoError(mt, err)

		assert.NotNil(mt, m.cache)
		assert.NoError(mt, m.Stop())
		assert.NoError(mt, m.Stop())
	})

	mt.Run("invalid_cache_url", func(mt *mtest.T) {
		cfg := &config.Config{FixturesDir: "sample_data", PasswordHashCost: 4, CacheRedisURL: "http://localhost"}
		_, err := NewSeederModule(mt.DB, cfg, &bytes.Buffer{}, log, usecase.Options{})
		require.Error(mt, err)
		assert.True(mt, apperrors.IsConfiguration(err))
	})
}

func TestNewSeederModule_InvalidHashCost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("cost_zero", func(mt *mtest.T) {
		cfg := &config.Config{FixturesDir: "sample_data"}
		_, err := NewSeederModule(mt.DB, cfg, &bytes.Buffer{}, logger.NewLoggerWithConfig("error", "text", io.Discard), usecase.Options{})
		require.Error(mt, err)
		assert.True(mt, apperrors.IsConfiguration(err))
	})
}
