package usecase_test

import (
	"context"
	"io"
	"sync"

	"sample-data-seeder/internal/seeder/domain/model"
	"sample-data-seeder/internal/shared/logger"

	"github.com/stretchr/testify/mock"
)

type MockSeedStore struct{ mock.Mock }

func (m *MockSeedStore) ResetAll(ctx context.Context, collections []model.Collection) error {
	return m.Called(ctx, collections).Error(0)
}

func (m *MockSeedStore) InsertMany(ctx context.Context, collection model.Collection, records []model.Record) (int, error) {
	args := m.Called(ctx, collection, records)
	return args.Int(0), args.Error(1)
}

func (m *MockSeedStore) Count(ctx context.Context, collection model.Collection) (int64, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(int64), args.Error(1)
}

type MockFixtureSource struct{ mock.Mock }

func (m *MockFixtureSource) List(ctx context.Context) ([]model.FixtureSummary, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.FixtureSummary)
	return rows, args.Error(1)
}

func (m *MockFixtureSource) Read(ctx context.Context, collection model.Collection) ([]model.Record, error) {
	args := m.Called(ctx, collection)
	records, _ := args.Get(0).([]model.Record)
	return records, args.Error(1)
}

type MockCacheInvalidator struct{ mock.Mock }

func (m *MockCacheInvalidator) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordingReporter keeps everything the pipeline reports.
type recordingReporter struct {
	fixtureTables [][]model.FixtureSummary
	countTables   [][]model.CollectionCount
	loaded        []string
	skipped       []string
}

func (r *recordingReporter) FixtureTable(rows []model.FixtureSummary) {
	r.fixtureTables = append(r.fixtureTables, rows)
}

func (r *recordingReporter) CountTable(rows []model.CollectionCount) {
	r.countTables = append(r.countTables, rows)
}

func (r *recordingReporter) Loaded(collection model.Collection, documents int) {
	r.loaded = append(r.loaded, collection.Name)
}

func (r *recordingReporter) Skipped(name string) {
	r.skipped = append(r.skipped, name)
}

func (r *recordingReporter) lastCounts() map[string]int64 {
	if len(r.countTables) == 0 {
		return nil
	}
	out := make(map[string]int64)
	for _, row := range r.countTables[len(r.countTables)-1] {
		out[row.Collection.Name] = row.Documents
	}
	return out
}

// memoryStore is an in-memory SeedStore. It fails the whole call when a
// concurrent call is detected, which the pipeline must never cause.
type memoryStore struct {
	mu        sync.Mutex
	busy      bool
	docs      map[string][]model.Record
	resets    int
	inserts   []string
	resetSeen map[string]int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string][]model.Record)}
}

func (s *memoryStore) enter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		panic("concurrent store access")
	}
	s.busy = true
}

func (s *memoryStore) leave() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *memoryStore) ResetAll(ctx context.Context, collections []model.Collection) error {
	s.enter()
	defer s.leave()
	for _, c := range collections {
		delete(s.docs, c.StoreName)
	}
	s.resets++
	s.resetSeen = make(map[string]int64)
	for _, c := range model.All() {
		s.resetSeen[c.Name] = int64(len(s.docs[c.StoreName]))
	}
	return nil
}

func (s *memoryStore) InsertMany(ctx context.Context, collection model.Collection, records []model.Record) (int, error) {
	s.enter()
	defer s.leave()
	s.docs[collection.StoreName] = append(s.docs[collection.StoreName], records...)
	s.inserts = append(s.inserts, collection.Name)
	return len(records), nil
}

func (s *memoryStore) Count(ctx context.Context, collection model.Collection) (int64, error) {
	s.enter()
	defer s.leave()
	return int64(len(s.docs[collection.StoreName])), nil
}

func quietLogger() logger.Logger {
	return logger.NewLoggerWithConfig("error", "text", io.Discard)
}
