package services

import (
	"context"

	"github.com/dpavlenko/liftlog/internal/logging"
	"github.com/dpavlenko/liftlog/internal/server/catalogapi"
	"github.com/dpavlenko/liftlog/internal/server/models"
	"github.com/dpavlenko/liftlog/internal/server/repositories/exercises"
)

// UpstreamCatalog fetches catalog entries from the third-party exercise API.
// *catalogapi.Client satisfies this interface.
type UpstreamCatalog interface {
	Fetch(ctx context.Context, q catalogapi.Query) ([]*models.Exercise, error)
}

type CatalogService struct {
	repo     exercises.Repository
	upstream UpstreamCatalog
	logger   logging.Logger
}

func NewCatalogService(repo exercises.Repository, upstream UpstreamCatalog, logger logging.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		upstream: upstream,
		logger:   logger.With("module", "catalog"),
	}
}

// List returns catalog entries matching filter. The seeded local store is
// authoritative; the upstream API is consulted only when the local store has
// no matching rows. The catalog path never fails an operation: local errors
// and every upstream failure degrade to an empty result.
func (s *CatalogService) List(ctx context.Context, filter exercises.Filter) []*models.Exercise {

	local, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "catalog store query failed", "error", err.Error())
	}
	if len(local) > 0 {
		return local
	}

	fetched, err := s.upstream.Fetch(ctx, catalogapi.Query{
		Muscle: filter.Muscle,
		Name:   filter.Name,
		Offset: filter.Offset,
	})
	if err != nil {
		s.logger.Warn(ctx, "upstream catalog unavailable", "error", err.Error())
		return []*models.Exercise{}
	}

	return fetched
}
