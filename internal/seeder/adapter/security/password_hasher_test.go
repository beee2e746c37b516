package security

import (
	"context"
	"io"
	"strings"
	"testing"

	"sample-data-seeder/internal/seeder/domain/model"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(bcrypt.MinCost, logger.NewLoggerWithConfig("error", "text", io.Discard))
	require.NoError(t, err)
	return h
}

func collection(t *testing.T, name string) model.Collection {
	t.Helper()
	c, ok := model.Lookup(name)
	require.True(t, ok)
	return c
}

func TestPasswordHasher_HashesPlaintext(t *testing.T) {
	h := newTestHasher(t)
	existing, err := bcrypt.GenerateFromPassword([]byte("kept"), bcrypt.MinCost)
	require.NoError(t, err)

	records := []model.Record{
		{"email": "a@example.com", "password": "Pass@123"},
		{"email": "b@example.com", "password": string(existing)},
		{"email": "c@example.com"},
		{"email": "d@example.com", "password": 42},
	}
	require.NoError(t, h.Transform(context.Background(), collection(t, "users"), records))

	first := records[0]["password"].(string)
	assert.True(t, strings.HasPrefix(first, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(first), []byte("Pass@123")))
	assert.Equal(t, string(existing), records[1]["password"])
	assert.NotContains(t, records[2], "password")
	assert.Equal(t, 42, records[3]["password"])
}

func TestPasswordHasher_OtherCollectionsUntouched(t *testing.T) {
	h := newTestHasher(t)
	records := []model.Record{{"password": "plain"}}

	require.NoError(t, h.Transform(context.Background(), collection(t, "posts"), records))
	assert.Equal(t, "plain", records[0]["password"])
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	h := newTestHasher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Transform(ctx, collection(t, "users"), []model.Record{{"password": "plain"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MaxCost+1, logger.NewLoggerWithConfig("error", "text", io.Discard))
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}
