package di

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"sample-data-seeder/internal/seeder"
	"sample-data-seeder/internal/seeder/config"
	"sample-data-seeder/internal/seeder/usecase"
	"sample-data-seeder/internal/shared/database"
	"sample-data-seeder/internal/shared/logger"
)

const closeTimeout = 10 * time.Second

// Container owns the resources of one seeding run and releases them in
// reverse order of initialization.
type Container struct {
	mu sync.Mutex

	Config       *config.Config
	Logger       logger.Logger
	Connection   *database.Connection
	SeederModule *seeder.SeederModule

	commandSink *logger.MongoLogSink
}

// NewContainer creates an empty container for cfg.
func NewContainer(cfg *config.Config, log logger.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: log.WithComponent("container"),
	}
}

// InitializeDatabase connects to MongoDB. When command logging is enabled
// the driver writes its command log to commandLog.
func (c *Container) InitializeDatabase(ctx context.Context, commandLog io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	settings := database.Settings{
		URI:            c.Config.MongoDBURI,
		Database:       c.Config.DatabaseName,
		ConnectTimeout: c.Config.ConnectTimeout,
	}
	if c.Config.CommandLog {
		c.commandSink = logger.NewMongoLogSink(commandLog)
		settings.CommandSink = c.commandSink
	}

	conn, err := database.Connect(ctx, settings, c.Logger)
	if err != nil {
		return err
	}
	c.Connection = conn
	return nil
}

// InitializeSeeder builds the seeder module on top of the open connection.
func (c *Container) InitializeSeeder(out io.Writer, opts usecase.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Connection == nil {
		return fmt.Errorf("database must be initialized before the seeder module")
	}

	module, err := seeder.NewSeederModule(c.Connection.Database(), c.Config, out, c.Logger, opts)
	if err != nil {
		return fmt.Errorf("failed to create seeder module: %w", err)
	}
	c.SeederModule = module
	return nil
}

// HealthCheck pings the database.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Connection == nil {
		return nil
	}
	if err := c.Connection.Ping(ctx); err != nil {
		return fmt.Errorf("MongoDB health check failed: %w", err)
	}
	return nil
}

// Cleanup releases the seeder module, the connection and the command sink.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.SeederModule != nil {
		if err := c.SeederModule.Stop(); err != nil {
			errs = append(errs, err)
		}
		c.SeederModule = nil
	}

	if c.Connection != nil {
		if err := c.Connection.Disconnect(ctx); err != nil {
			errs = append(errs, err)
		}
		c.Connection = nil
	}

	if c.commandSink != nil {
		// stderr does not support fsync on every platform
		_ = c.commandSink.Sync()
		c.commandSink = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close runs Cleanup with a bounded timeout.
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("Cleanup errors occurred: %v", err)
		return err
	}
	c.Logger.Debug("Container resources closed")
	return nil
}
