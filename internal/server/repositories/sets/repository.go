// Package sets provides the workout record store. Every row is owned by
// exactly one identity; rows are created and read, never updated or deleted.
package sets

import (
	"context"

	"github.com/dpavlenko/liftlog/internal/server/models"
)

// Filter narrows a history listing. Zero values mean "no filter".
// Name and ID match exactly.
type Filter struct {
	ExerciseName string
	ExerciseID   string
}

type Repository interface {
	// Create inserts a record and returns it with the server-assigned
	// created-at timestamp.
	Create(ctx context.Context, set *models.Set) (*models.Set, error)

	// ListByOwner returns records owned by ownerID, newest first by
	// performed-at timestamp.
	ListByOwner(ctx context.Context, ownerID string, filter Filter) ([]*models.Set, error)
}
