// Package exercises provides the local exercise catalog store, populated by
// the seed command and read by the catalog query.
package exercises

import (
	"context"

	"github.com/dpavlenko/liftlog/internal/server/models"
)

// Filter narrows a catalog listing. Muscle and Equipment match exact
// membership; Name matches case-insensitive substrings. Limit <= 0 falls
// back to DefaultLimit.
type Filter struct {
	Muscle    string
	Name      string
	Equipment string
	Limit     int
	Offset    int
}

// DefaultLimit bounds catalog listings when the caller does not.
const DefaultLimit = 50

type Repository interface {
	// Upsert inserts or replaces the entry stored under exercise.ID.
	Upsert(ctx context.Context, exercise *models.Exercise) error

	// List returns catalog entries matching filter, ordered by name.
	List(ctx context.Context, filter Filter) ([]*models.Exercise, error)
}
