package exercises

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dpavlenko/liftlog/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var exerciseColumns = []string{"id", "name", "category", "equipment", "primary_muscles", "secondary_muscles", "instructions", "images"}

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+exercises\s+.*ON\s+CONFLICT\s+\(id\)\s+DO\s+UPDATE\s+SET`

	mock.ExpectExec(q).
		WithArgs("bench-press", "Bench Press", "strength",
			[]byte(`["barbell"]`), []byte(`["chest"]`), []byte(`["triceps"]`), []byte(`["Lie on the bench."]`), []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Exercise{
		ID:               "bench-press",
		Name:             "Bench Press",
		Category:         "strength",
		Equipment:        []string{"barbell"},
		PrimaryMuscles:   []string{"chest"},
		SecondaryMuscles: []string{"triceps"},
		Instructions:     []string{"Lie on the bench."},
	})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+exercises`).WillReturnError(errors.New("db down"))

	err := repo.Upsert(context.Background(), &models.Exercise{ID: "x", Name: "X"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList_NoFilter_DefaultLimit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+TRUE\s+ORDER\s+BY\s+name\s+LIMIT\s+\$1\s*$`

	rows := sqlmock.NewRows(exerciseColumns).
		AddRow("bench-press", "Bench Press", "strength",
			[]byte(`["barbell"]`), []byte(`["chest"]`), []byte(`[]`), []byte(`["Lie on the bench."]`), []byte(`[]`))
	mock.ExpectQuery(q).WithArgs(DefaultLimit).WillReturnRows(rows)

	got, err := repo.List(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got))
	}
	if got[0].PrimaryMuscles[0] != "chest" || got[0].Equipment[0] != "barbell" {
		t.Fatalf("unexpected exercise: %+v", got[0])
	}
}

func TestList_AllFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+TRUE\s+AND\s+primary_muscles\s+\?\s+\$1\s+AND\s+name\s+ILIKE\s+\$2\s+AND\s+equipment\s+\?\s+\$3\s+ORDER\s+BY\s+name\s+LIMIT\s+\$4\s+OFFSET\s+\$5`

	mock.ExpectQuery(q).
		WithArgs("chest", "%press%", "barbell", 10, 20).
		WillReturnRows(sqlmock.NewRows(exerciseColumns))

	got, err := repo.List(context.Background(), Filter{
		Muscle: "chest", Name: "press", Equipment: "barbell", Limit: 10, Offset: 20,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestList_CorruptRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(exerciseColumns).
		AddRow("bad", "Bad", "", []byte(`not-json`), []byte(`[]`), []byte(`[]`), []byte(`[]`), []byte(`[]`))
	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

	_, err := repo.List(context.Background(), Filter{})
	if err == nil || !regexp.MustCompile(`corrupt catalog row bad`).MatchString(err.Error()) {
		t.Fatalf("expected corrupt row error, got %v", err)
	}
}
