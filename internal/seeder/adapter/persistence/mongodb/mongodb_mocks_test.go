package mongodb

import (
	"context"
	"errors"
	"io"

	"sample-data-seeder/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// memoryDatabase is an in-memory DatabaseInterface. failOn makes a named
// operation on a named collection fail.
type memoryDatabase struct {
	name   string
	data   map[string][]interface{}
	failOn map[string]string // collection -> "delete" | "insert" | "count"
	calls  []string
}

func newMemoryDatabase() *memoryDatabase {
	return &memoryDatabase{
		name:   "seed_test",
		data:   make(map[string][]interface{}),
		failOn: make(map[string]string),
	}
}

func (m *memoryDatabase) Name() string { return m.name }

func (m *memoryDatabase) Collection(name string) CollectionInterface {
	return &memoryCollection{db: m, name: name}
}

func (m *memoryDatabase) snapshot() map[string][]interface{} {
	out := make(map[string][]interface{}, len(m.data))
	for k, v := range m.data {
		out[k] = append([]interface{}(nil), v...)
	}
	return out
}

var errInjected = errors.New("injected failure")

type memoryCollection struct {
	db   *memoryDatabase
	name string
}

func (c *memoryCollection) fail(op string) bool {
	c.db.calls = append(c.db.calls, op+":"+c.name)
	return c.db.failOn[c.name] == op
}

func (c *memoryCollection) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	if c.fail("delete") {
		return 0, errInjected
	}
	n := int64(len(c.db.data[c.name]))
	delete(c.db.data, c.name)
	return n, nil
}

func (c *memoryCollection) InsertMany(ctx context.Context, docs []interface{}) (int, error) {
	if c.fail("insert") {
		return 0, errInjected
	}
	c.db.data[c.name] = append(c.db.data[c.name], docs...)
	return len(docs), nil
}

func (c *memoryCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if c.fail("count") {
		return 0, errInjected
	}
	return int64(len(c.db.data[c.name])), nil
}

// snapshotTransactionRunner restores the memory database when fn fails.
type snapshotTransactionRunner struct {
	db        *memoryDatabase
	started   int
	aborted   int
	committed int
}

func (r *snapshotTransactionRunner) RunInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	r.started++
	before := r.db.snapshot()
	if err := fn(ctx); err != nil {
		r.db.data = before
		r.aborted++
		return err
	}
	r.committed++
	return nil
}

// failingSessionClient simulates a deployment without session support.
type failingSessionClient struct{}

func (failingSessionClient) StartSession(opts ...*options.SessionOptions) (mongo.Session, error) {
	return nil, mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}
}

func newTestStore(db *memoryDatabase) (*SeedStore, *snapshotTransactionRunner) {
	txn := &snapshotTransactionRunner{db: db}
	return &SeedStore{
		db:     db,
		txn:    txn,
		logger: logger.NewLoggerWithConfig("error", "text", io.Discard),
	}, txn
}
