package mongodb

import (
	"context"
	"fmt"

	"sample-data-seeder/internal/seeder/domain/model"
	"sample-data-seeder/internal/seeder/domain/repository"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const component = "mongo_seed_store"

// SeedStore implements repository.SeedStore on a single MongoDB database.
type SeedStore struct {
	db     DatabaseInterface
	txn    TransactionRunner
	logger logger.Logger
}

var _ repository.SeedStore = (*SeedStore)(nil)

// NewSeedStore creates a store bound to db. Resets run in a session
// transaction on db's client, which requires a replica set or sharded cluster.
func NewSeedStore(db *mongo.Database, log logger.Logger) *SeedStore {
	return &SeedStore{
		db:     NewMongoDatabaseAdapter(db),
		txn:    NewSessionTransactionRunner(db.Client()),
		logger: log.WithComponent(component),
	}
}

// ResetAll empties every collection in one transaction.
func (s *SeedStore) ResetAll(ctx context.Context, collections []model.Collection) error {
	deleted := make(map[string]int64, len(collections))

	err := s.txn.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, c := range collections {
			n, err := s.db.Collection(c.StoreName).DeleteMany(txCtx, bson.D{})
			if err != nil {
				return fmt.Errorf("failed to clear %s: %w", c.Name, err)
			}
			deleted[c.Name] = n
		}
		return nil
	})
	if err != nil {
		return apperrors.NewDatabaseError("failed to reset collections").
			WithCause(err).WithComponent(component).WithDetail("database", s.db.Name())
	}

	for _, c := range collections {
		s.logger.Debugf("Cleared %d documents from %s", deleted[c.Name], c.StoreName)
	}
	return nil
}

// InsertMany bulk-inserts records. An empty slice is a no-op.
func (s *SeedStore) InsertMany(ctx context.Context, collection model.Collection, records []model.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = r
	}

	n, err := s.db.Collection(collection.StoreName).InsertMany(ctx, docs)
	if err != nil {
		return n, apperrors.NewDatabaseError(fmt.Sprintf("failed to insert into %s", collection.StoreName)).
			WithCause(err).WithComponent(component).WithDetail("collection", collection.Name)
	}
	return n, nil
}

// Count returns the number of documents in a collection.
func (s *SeedStore) Count(ctx context.Context, collection model.Collection) (int64, error) {
	n, err := s.db.Collection(collection.StoreName).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, apperrors.NewDatabaseError(fmt.Sprintf("failed to count %s", collection.StoreName)).
			WithCause(err).WithComponent(component).WithDetail("collection", collection.Name)
	}
	return n, nil
}
