package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"sample-data-seeder/internal/seeder/domain/model"
	"sample-data-seeder/internal/seeder/domain/repository"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
)

const component = "fixture_reader"

// Reader reads JSON fixture files from a single directory.
type Reader struct {
	dir    string
	logger logger.Logger
}

var _ repository.FixtureSource = (*Reader)(nil)

// NewReader creates a reader rooted at dir.
func NewReader(dir string, log logger.Logger) *Reader {
	return &Reader{dir: dir, logger: log.WithComponent(component)}
}

// Dir returns the fixture directory.
func (r *Reader) Dir() string {
	return r.dir
}

// List returns every regular file in the fixture directory, sorted by name,
// with the number of top-level array elements it holds.
func (r *Reader) List(ctx context.Context) ([]model.FixtureSummary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, apperrors.NewFilesystemError(fmt.Sprintf("failed to read fixture directory %s", r.dir)).
			WithCause(err).WithComponent(component)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	summaries := make([]model.FixtureSummary, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return nil, apperrors.NewFilesystemError(fmt.Sprintf("failed to read %s", entry.Name())).
				WithCause(err).WithComponent(component)
		}
		count, err := CountRecords(data)
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("failed to parse %s", entry.Name())).
				WithCause(err).WithComponent(component).WithDetail("file", entry.Name())
		}

		r.logger.Debugf("Fixture %s holds %d records", entry.Name(), count)
		summaries = append(summaries, model.FixtureSummary{File: entry.Name(), Documents: count})
	}
	return summaries, nil
}

// Read loads the fixture file of a collection. Records may use MongoDB
// Extended JSON ({"$oid": ...}, {"$date": ...}).
func (r *Reader) Read(ctx context.Context, collection model.Collection) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(r.dir, collection.FixtureFile)
	data, err := os.ReadFile(path)
	if err != nil {
		appErr := apperrors.NewFilesystemError(fmt.Sprintf("failed to read fixture %s", collection.FixtureFile)).
			WithComponent(component).WithDetail("path", path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErr.WithCause(fmt.Errorf("%w: %v", apperrors.ErrFixtureNotFound, err))
		}
		return nil, appErr.WithCause(err)
	}

	records, err := DecodeRecords(data)
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("failed to parse fixture %s", collection.FixtureFile)).
			WithCause(err).WithComponent(component).WithDetail("path", path)
	}
	return records, nil
}

// CountRecords returns the length of the top-level JSON array in data.
func CountRecords(data []byte) (int, error) {
	raw, err := splitArray(data)
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

// DecodeRecords parses a JSON array of objects into records.
func DecodeRecords(data []byte) ([]model.Record, error) {
	raw, err := splitArray(data)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(raw))
	for i, element := range raw {
		var record model.Record
		if err := bson.UnmarshalExtJSON(element, false, &record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func splitArray(data []byte) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperrors.ErrFixtureNotArray
		}
		return nil, err
	}
	if raw == nil {
		// "null" decodes to a nil slice without error.
		return nil, apperrors.ErrFixtureNotArray
	}
	return raw, nil
}
