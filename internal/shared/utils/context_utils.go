package utils

import (
	"context"
	"errors"

	"sample-data-seeder/internal/shared/contextkeys"
)

var (
	ErrRunIDNotFound  = errors.New("runID not found in context")
	ErrRunIDNotString = errors.New("runID in context is not a string")
)

// GetRunIDFromContext retrieves the seeding run ID from the context.
func GetRunIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RunIDKey)
	if val == nil {
		return "", ErrRunIDNotFound
	}
	runID, ok := val.(string)
	if !ok {
		return "", ErrRunIDNotString
	}
	return runID, nil
}

// GetStringFromContext returns the string stored under key, or "" when absent.
func GetStringFromContext(ctx context.Context, key interface{}) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, contextkeys.RunIDKey, runID)
}

func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

func WithCollection(ctx context.Context, collection string) context.Context {
	return context.WithValue(ctx, contextkeys.CollectionKey, collection)
}
