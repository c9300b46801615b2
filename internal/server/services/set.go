package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dpavlenko/liftlog/internal/common"
	"github.com/dpavlenko/liftlog/internal/server/models"
	"github.com/dpavlenko/liftlog/internal/server/repositories/sets"
)

// LogSetInput carries the caller-supplied fields of a new workout record.
// The owner is never part of the input: it comes from the verified identity.
type LogSetInput struct {
	ExerciseName string
	ExerciseID   string
	Reps         int
	Weight       float64
	PerformedAt  time.Time
}

type SetService struct {
	repo sets.Repository
}

func NewSetService(repo sets.Repository) *SetService {
	return &SetService{repo: repo}
}

// LogSet validates input and stores a record owned by ownerID. Reps must be
// a positive integer; weight must be a finite number >= 0 (zero is valid,
// e.g. bodyweight exercises). PerformedAt defaults to the current time.
func (s *SetService) LogSet(ctx context.Context, ownerID string, in LogSetInput) (*models.Set, error) {

	if in.ExerciseName == "" {
		return nil, fmt.Errorf("%w: exercise name is required", common.ErrorInvalidInput)
	}
	if in.Reps <= 0 {
		return nil, fmt.Errorf("%w: reps must be a positive integer", common.ErrorInvalidInput)
	}
	if in.Weight < 0 || math.IsNaN(in.Weight) || math.IsInf(in.Weight, 0) {
		return nil, fmt.Errorf("%w: weight must be a non-negative number", common.ErrorInvalidInput)
	}

	performedAt := in.PerformedAt
	if performedAt.IsZero() {
		performedAt = time.Now().UTC()
	}

	set := &models.Set{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		ExerciseID:   in.ExerciseID,
		ExerciseName: in.ExerciseName,
		Reps:         in.Reps,
		Weight:       in.Weight,
		PerformedAt:  performedAt,
	}

	set, err := s.repo.Create(ctx, set)
	if err != nil {
		return nil, fmt.Errorf("error creating set: %w", err)
	}

	return set, nil
}

// History returns the caller's records, newest first, optionally narrowed to
// one exercise by name or id.
func (s *SetService) History(ctx context.Context, ownerID string, filter sets.Filter) ([]*models.Set, error) {
	result, err := s.repo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing sets: %w", err)
	}
	return result, nil
}
