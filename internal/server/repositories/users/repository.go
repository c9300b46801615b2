// Package users provides the credential store: one row per registered
// identity, unique by email.
package users

import (
	"context"

	"github.com/dpavlenko/liftlog/internal/server/models"
)

type Repository interface {
	// Create inserts a new identity. A second insert with an existing
	// email fails with common.ErrorDuplicateEmail, never overwrites.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the identity stored under email, or
	// common.ErrorNotFound. The comparison is byte-for-byte.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
