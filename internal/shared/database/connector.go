package database

import (
	"context"
	"fmt"
	"time"

	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const appName = "sample-data-seeder"

// Settings describe how to reach the seed database.
type Settings struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration

	// CommandSink, when set, receives every command the driver sends.
	CommandSink options.LogSink
}

// Connection owns the client used for one seeding run.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger
}

// ClientOptions builds the driver options for settings.
func ClientOptions(settings Settings) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(settings.URI).
		SetAppName(appName)

	if settings.ConnectTimeout > 0 {
		opts.SetConnectTimeout(settings.ConnectTimeout)
		opts.SetServerSelectionTimeout(settings.ConnectTimeout)
	}

	if settings.CommandSink != nil {
		opts.SetLoggerOptions(options.Logger().
			SetSink(settings.CommandSink).
			SetComponentLevel(options.LogComponentCommand, options.LogLevelDebug))
	}

	return opts
}

// Connect dials the server and verifies it answers a ping before returning.
func Connect(ctx context.Context, settings Settings, log logger.Logger) (*Connection, error) {
	if settings.URI == "" {
		return nil, apperrors.NewConfigurationError("database URI is empty")
	}
	if settings.Database == "" {
		return nil, apperrors.NewConfigurationError("database name is empty")
	}

	if settings.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, ClientOptions(settings))
	if err != nil {
		return nil, notConnected(err).WithDetail("database", settings.Database)
	}

	conn := NewConnection(client, settings.Database, log)
	if err := conn.Ping(ctx); err != nil {
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			conn.logger.Warnf("Failed to disconnect after ping failure: %v", dErr)
		}
		return nil, err
	}

	conn.logger.Info("Database connection established")
	return conn, nil
}

// NewConnection wraps an existing client.
func NewConnection(client *mongo.Client, database string, log logger.Logger) *Connection {
	return &Connection{
		client: client,
		db:     client.Database(database),
		logger: log.WithComponent("database").WithFields(map[string]interface{}{
			"database": database,
		}),
	}
}

// Ping checks that the primary is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return notConnected(err).WithDetail("database", c.db.Name())
	}
	return nil
}

func (c *Connection) Database() *mongo.Database {
	return c.db
}

func (c *Connection) Client() *mongo.Client {
	return c.client
}

// Disconnect closes the client. It is safe to call on a nil Connection.
func (c *Connection) Disconnect(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return apperrors.NewDatabaseError("failed to disconnect").WithCause(err)
	}
	c.logger.Debug("Database connection closed")
	return nil
}

func notConnected(err error) *apperrors.AppError {
	return apperrors.NewDatabaseError("failed to connect to database").
		WithCause(fmt.Errorf("%w: %v", apperrors.ErrNotConnected, err))
}
