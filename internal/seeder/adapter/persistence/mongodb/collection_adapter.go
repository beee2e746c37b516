package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// --- Hexagonal interfaces for the MongoDB calls the seeder makes ---

// CollectionInterface is the subset of *mongo.Collection used for seeding.
type CollectionInterface interface {
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	InsertMany(ctx context.Context, docs []interface{}) (int, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

// DatabaseInterface hands out collections by name.
type DatabaseInterface interface {
	Name() string
	Collection(name string) CollectionInterface
}

// MongoCollectionAdapter makes *mongo.Collection compatible with CollectionInterface.
type MongoCollectionAdapter struct {
	col *mongo.Collection
}

func NewMongoCollectionAdapter(col *mongo.Collection) *MongoCollectionAdapter {
	return &MongoCollectionAdapter{col: col}
}

func (m *MongoCollectionAdapter) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := m.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m *MongoCollectionAdapter) InsertMany(ctx context.Context, docs []interface{}) (int, error) {
	res, err := m.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (m *MongoCollectionAdapter) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return m.col.CountDocuments(ctx, filter)
}

// MongoDatabaseAdapter makes *mongo.Database compatible with DatabaseInterface.
type MongoDatabaseAdapter struct {
	db *mongo.Database
}

func NewMongoDatabaseAdapter(db *mongo.Database) *MongoDatabaseAdapter {
	return &MongoDatabaseAdapter{db: db}
}

func (m *MongoDatabaseAdapter) Name() string {
	return m.db.Name()
}

func (m *MongoDatabaseAdapter) Collection(name string) CollectionInterface {
	return NewMongoCollectionAdapter(m.db.Collection(name))
}
