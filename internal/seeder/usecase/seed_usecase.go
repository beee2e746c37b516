package usecase

import (
	"context"
	"errors"
	"fmt"

	"sample-data-seeder/internal/seeder/domain/model"
	"sample-data-seeder/internal/seeder/domain/repository"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"
	"sample-data-seeder/internal/shared/utils"

	"github.com/google/uuid"
)

const component = "seeder"

const (
	operationList       = "list"
	operationReset      = "reset"
	operationLoad       = "load"
	operationInvalidate = "invalidate"
	operationVerify     = "verify"
)

// SeedUsecaseInterface is the library entry point of the seeder.
type SeedUsecaseInterface interface {
	ListFixtures(ctx context.Context) ([]model.FixtureSummary, error)
	Reset(ctx context.Context) error
	Load(ctx context.Context, names []string) (*model.LoadResult, error)
	Verify(ctx context.Context) ([]model.CollectionCount, error)
	Run(ctx context.Context, names []string) error
}

// Options tweak a pipeline run.
type Options struct {
	// SkipList disables the informational fixture listing.
	SkipList bool
}

// SeedUsecase sequences the List, Reset, Load and Verify stages.
// All stages run one after another on the caller's goroutine.
type SeedUsecase struct {
	store    repository.SeedStore
	fixtures repository.FixtureSource
	reporter repository.Reporter
	cache    repository.CacheInvalidator // optional
	logger   logger.Logger
	opts     Options

	transformers []repository.RecordTransformer
}

var _ SeedUsecaseInterface = (*SeedUsecase)(nil)

// NewSeedUsecase creates a seeding pipeline. cache may be nil.
func NewSeedUsecase(
	store repository.SeedStore,
	fixtures repository.FixtureSource,
	reporter repository.Reporter,
	cache repository.CacheInvalidator,
	log logger.Logger,
	opts Options,
) *SeedUsecase {
	return &SeedUsecase{
		store:    store,
		fixtures: fixtures,
		reporter: reporter,
		cache:    cache,
		logger:   log.WithComponent(component),
		opts:     opts,
	}
}

// WithTransformers appends record transformers, applied in order to every
// fixture between reading and inserting.
func (uc *SeedUsecase) WithTransformers(transformers ...repository.RecordTransformer) *SeedUsecase {
	uc.transformers = append(uc.transformers, transformers...)
	return uc
}

func (uc *SeedUsecase) log(ctx context.Context) logger.Logger {
	return uc.logger.WithContext(ctx)
}

// ListFixtures reports the record count of every file in the fixture directory.
func (uc *SeedUsecase) ListFixtures(ctx context.Context) ([]model.FixtureSummary, error) {
	ctx = utils.WithOperation(ctx, operationList)

	rows, err := uc.fixtures.List(ctx)
	if err != nil {
		return nil, err
	}
	uc.reporter.FixtureTable(rows)
	uc.log(ctx).Debugf("Listed %d fixture files", len(rows))
	return rows, nil
}

// Reset empties all registered collections atomically. It assumes no other
// writer uses the database until the following Load completes.
func (uc *SeedUsecase) Reset(ctx context.Context) error {
	ctx = utils.WithOperation(ctx, operationReset)
	collections := model.All()

	uc.log(ctx).Infof("Clearing %d collections", len(collections))
	if err := uc.store.ResetAll(ctx, collections); err != nil {
		return err
	}
	uc.log(ctx).Info("All collections cleared")
	return nil
}

// Load resets the database and then inserts the fixtures of the named
// collections in order. Unknown names are reported and skipped. The first
// read, parse, transform or insert failure aborts the load.
func (uc *SeedUsecase) Load(ctx context.Context, names []string) (*model.LoadResult, error) {
	if len(names) == 0 {
		names = model.DefaultNames()
	}

	if err := uc.Reset(ctx); err != nil {
		return nil, err
	}

	ctx = utils.WithOperation(ctx, operationLoad)
	result := &model.LoadResult{}

	for _, name := range names {
		collection, ok := model.Lookup(name)
		if !ok {
			uc.log(ctx).Warnf("Skipping %q: %v", name, apperrors.ErrUnknownCollection)
			uc.reporter.Skipped(name)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		n, err := uc.loadCollection(utils.WithCollection(ctx, collection.Name), collection)
		if err != nil {
			return result, fmt.Errorf("failed to load %s: %w", collection.Name, err)
		}
		result.Loaded = append(result.Loaded, model.LoadedCollection{Collection: collection, Documents: n})
		uc.reporter.Loaded(collection, n)
	}

	uc.log(ctx).Info(result.String())
	return result, nil
}

func (uc *SeedUsecase) loadCollection(ctx context.Context, collection model.Collection) (int, error) {
	records, err := uc.fixtures.Read(ctx, collection)
	if err != nil {
		return 0, err
	}

	for _, t := range uc.transformers {
		if err := t.Transform(ctx, collection, records); err != nil {
			return 0, err
		}
	}

	n, err := uc.store.InsertMany(ctx, collection, records)
	if err != nil {
		return n, err
	}
	uc.log(ctx).Debugf("Inserted %d of %d records", n, len(records))
	return n, nil
}

// Verify reports the current document count of every registered collection.
// A failed count is recorded in its row; the table is rendered regardless and
// the joined errors are returned.
func (uc *SeedUsecase) Verify(ctx context.Context) ([]model.CollectionCount, error) {
	ctx = utils.WithOperation(ctx, operationVerify)

	var errs []error
	rows := make([]model.CollectionCount, 0, len(model.All()))
	for _, c := range model.All() {
		collectionCtx := utils.WithCollection(ctx, c.Name)
		n, err := uc.store.Count(collectionCtx, c)
		if err != nil {
			uc.log(collectionCtx).Warnf("Failed to count documents: %v", err)
			errs = append(errs, err)
		}
		rows = append(rows, model.CollectionCount{Collection: c, Documents: n, Err: err})
	}
	uc.reporter.CountTable(rows)
	return rows, errors.Join(errs...)
}

// Run executes the whole pipeline: List, Reset+Load, cache invalidation and
// Verify. Listing, invalidation and verification failures are logged only.
// The returned error is the Reset+Load failure, if any. Run never exits the
// process.
func (uc *SeedUsecase) Run(ctx context.Context, names []string) error {
	if _, err := utils.GetRunIDFromContext(ctx); err != nil {
		ctx = utils.WithRunID(ctx, uuid.NewString())
	}
	ctx = utils.WithComponent(ctx, component)
	uc.log(ctx).Info("Starting sample data import")

	if !uc.opts.SkipList {
		if _, err := uc.ListFixtures(ctx); err != nil {
			uc.log(ctx).Errorf("Failed to list sample data files: %v", err)
		}
	}

	_, loadErr := uc.Load(ctx, names)
	if loadErr != nil {
		uc.log(ctx).Errorf("Failed to import sample data: %v", loadErr)
	} else if uc.cache != nil {
		invalidateCtx := utils.WithOperation(ctx, operationInvalidate)
		if err := uc.cache.Invalidate(invalidateCtx); err != nil {
			uc.log(invalidateCtx).Errorf("Failed to invalidate cache: %v", err)
		}
	}

	if _, err := uc.Verify(ctx); err != nil {
		uc.log(ctx).Errorf("Failed to verify document counts: %v", err)
	}

	if loadErr != nil {
		return loadErr
	}
	uc.log(ctx).Info("Sample data import complete")
	return nil
}
