package repository

import (
	"context"

	"sample-data-seeder/internal/seeder/domain/model"
)

// SeedStore is the database contract the seeding pipeline depends on.
//
// ResetAll must be atomic: either every collection is emptied or none is.
// Callers must ensure no other writer touches the store while a reset and the
// following inserts run; the store does not lock against concurrent seeders.
type SeedStore interface {
	// ResetAll deletes every document of the given collections in one transaction.
	ResetAll(ctx context.Context, collections []model.Collection) error

	// InsertMany bulk-inserts records into a collection and returns the number inserted.
	InsertMany(ctx context.Context, collection model.Collection, records []model.Record) (int, error)

	// Count returns the number of documents currently stored in a collection.
	Count(ctx context.Context, collection model.Collection) (int64, error)
}

// FixtureSource reads fixture files.
type FixtureSource interface {
	// List returns every regular file in the fixture directory with its record count.
	List(ctx context.Context) ([]model.FixtureSummary, error)

	// Read parses the fixture file of a collection.
	Read(ctx context.Context, collection model.Collection) ([]model.Record, error)
}

// RecordTransformer rewrites fixture records in place before they are inserted.
type RecordTransformer interface {
	Transform(ctx context.Context, collection model.Collection, records []model.Record) error
}

// CacheInvalidator drops cached API state after the database was reseeded.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Reporter renders the operator-facing console output.
type Reporter interface {
	FixtureTable(rows []model.FixtureSummary)
	CountTable(rows []model.CollectionCount)
	Loaded(collection model.Collection, documents int)
	Skipped(name string)
}
