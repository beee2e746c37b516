package security

import (
	"context"
	"fmt"

	"sample-data-seeder/internal/seeder/domain/model"
	apperrors "sample-data-seeder/internal/shared/errors"
	"sample-data-seeder/internal/shared/logger"

	"golang.org/x/crypto/bcrypt"
)

const passwordField = "password"

// PasswordHasher replaces plaintext "password" values of user fixtures with
// bcrypt hashes, so fixtures can carry readable dev credentials. Values that
// already are bcrypt hashes are left alone.
type PasswordHasher struct {
	cost        int
	collections map[string]bool
	logger      logger.Logger
}

// NewPasswordHasher creates a hasher for the users collection.
func NewPasswordHasher(cost int, log logger.Logger) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	return &PasswordHasher{
		cost:        cost,
		collections: map[string]bool{"users": true},
		logger:      log.WithComponent("password_hasher"),
	}, nil
}

func (h *PasswordHasher) Transform(ctx context.Context, collection model.Collection, records []model.Record) error {
	if !h.collections[collection.Name] {
		return nil
	}

	hashed := 0
	for i, rec := range records {
		plain, ok := rec[passwordField].(string)
		if !ok || plain == "" || isBcryptHash(plain) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		if err != nil {
			return apperrors.NewValidationError("failed to hash password").
				WithCause(err).
				WithDetail("collection", collection.Name).
				WithDetail("index", i)
		}
		rec[passwordField] = string(hash)
		hashed++
	}

	if hashed > 0 {
		h.logger.WithContext(ctx).Debugf("Hashed %d plaintext passwords", hashed)
	}
	return nil
}

func isBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
