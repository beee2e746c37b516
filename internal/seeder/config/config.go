package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "sample-data-seeder/internal/shared/errors"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the seeder.
type Config struct {
	// MongoDB Configuration. Transactions need a replica set, hence the default URI.
	MongoDBURI     string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/?replicaSet=rs0"`
	DatabaseName   string        `env:"DATABASE_NAME" envDefault:"talawa-api"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
	CommandLog     bool          `env:"MONGO_COMMAND_LOG" envDefault:"false"`

	// Fixture Configuration
	FixturesDir string `env:"FIXTURES_DIR" envDefault:"sample_data"`

	// PasswordHashCost is the bcrypt cost for plaintext fixture passwords.
	PasswordHashCost int `env:"PASSWORD_HASH_COST" envDefault:"10"`

	// CacheRedisURL points at the API's Redis cache. Empty disables invalidation.
	CacheRedisURL string `env:"CACHE_REDIS_URL"`

	// Logging
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// Override adjusts a parsed Config before validation, e.g. from CLI flags.
type Override func(*Config)

// LoadConfig loads configuration from environment variables, applies the
// overrides in order and validates the result.
func LoadConfig(overrides ...Override) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, apperrors.NewConfigurationError("failed to load configuration from environment").WithCause(err)
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that env tags can not express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoDBURI) == "" {
		return apperrors.NewConfigurationError("mongodb_uri is required")
	}
	if !strings.HasPrefix(c.MongoDBURI, "mongodb://") && !strings.HasPrefix(c.MongoDBURI, "mongodb+srv://") {
		return apperrors.NewConfigurationError(fmt.Sprintf("mongodb_uri has unsupported scheme: %q", c.MongoDBURI))
	}
	if strings.TrimSpace(c.DatabaseName) == "" {
		return apperrors.NewConfigurationError("database_name is required")
	}
	if strings.ContainsAny(c.DatabaseName, `/\. "$`) {
		return apperrors.NewConfigurationError(fmt.Sprintf("database_name contains invalid characters: %q", c.DatabaseName))
	}
	if strings.TrimSpace(c.FixturesDir) == "" {
		return apperrors.NewConfigurationError("fixtures_dir is required")
	}
	if c.ConnectTimeout <= 0 {
		return apperrors.NewConfigurationError("connect_timeout must be positive")
	}
	return nil
}
