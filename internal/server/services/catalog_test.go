package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpavlenko/liftlog/internal/common"
	"github.com/dpavlenko/liftlog/internal/logging"
	"github.com/dpavlenko/liftlog/internal/server/catalogapi"
	"github.com/dpavlenko/liftlog/internal/server/models"
	"github.com/dpavlenko/liftlog/internal/server/repositories/exercises"
)

type fakeExercisesRepo struct {
	entries []*models.Exercise
	err     error
}

func (f *fakeExercisesRepo) Upsert(ctx context.Context, exercise *models.Exercise) error {
	f.entries = append(f.entries, exercise)
	return nil
}

func (f *fakeExercisesRepo) List(ctx context.Context, filter exercises.Filter) ([]*models.Exercise, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type fakeUpstream struct {
	entries []*models.Exercise
	err     error
	calls   int
}

func (f *fakeUpstream) Fetch(ctx context.Context, q catalogapi.Query) ([]*models.Exercise, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCatalogList_LocalStorePreferred(t *testing.T) {
	repo := &fakeExercisesRepo{entries: []*models.Exercise{{ID: "bench-press", Name: "Bench Press"}}}
	upstream := &fakeUpstream{}
	svc := NewCatalogService(repo, upstream, testLogger())

	got := svc.List(context.Background(), exercises.Filter{})

	assert.Len(t, got, 1)
	assert.Equal(t, "bench-press", got[0].ID)
	assert.Zero(t, upstream.calls, "upstream must not be consulted when the local store matches")
}

func TestCatalogList_UpstreamFallback(t *testing.T) {
	repo := &fakeExercisesRepo{}
	upstream := &fakeUpstream{entries: []*models.Exercise{{ID: "squat", Name: "Squat"}}}
	svc := NewCatalogService(repo, upstream, testLogger())

	got := svc.List(context.Background(), exercises.Filter{Muscle: "quadriceps"})

	assert.Len(t, got, 1)
	assert.Equal(t, "squat", got[0].ID)
	assert.Equal(t, 1, upstream.calls)
}

func TestCatalogList_UpstreamFailureDegradesToEmpty(t *testing.T) {
	repo := &fakeExercisesRepo{}
	upstream := &fakeUpstream{err: common.ErrorUpstreamUnavailable}
	svc := NewCatalogService(repo, upstream, testLogger())

	got := svc.List(context.Background(), exercises.Filter{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCatalogList_LocalErrorFallsThroughToUpstream(t *testing.T) {
	repo := &fakeExercisesRepo{err: errors.New("db down")}
	upstream := &fakeUpstream{entries: []*models.Exercise{{ID: "deadlift", Name: "Deadlift"}}}
	svc := NewCatalogService(repo, upstream, testLogger())

	got := svc.List(context.Background(), exercises.Filter{})

	assert.Len(t, got, 1)
	assert.Equal(t, "deadlift", got[0].ID)
}

func TestCatalogList_EverythingDownStillNotFatal(t *testing.T) {
	repo := &fakeExercisesRepo{err: errors.New("db down")}
	upstream := &fakeUpstream{err: errors.New("connection refused")}
	svc := NewCatalogService(repo, upstream, testLogger())

	got := svc.List(context.Background(), exercises.Filter{})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
