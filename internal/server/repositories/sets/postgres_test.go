package sets

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

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

var setColumns = []string{"id", "user_id", "exercise_id", "exercise_name", "reps", "weight", "performed_at", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+sets\s*\(id,\s*user_id,\s*exercise_id,\s*exercise_name,\s*reps,\s*weight,\s*performed_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+created_at\s*$`

	performed := time.Now().Add(-time.Hour)
	created := time.Now()
	mock.ExpectQuery(q).
		WithArgs("s-1", "u-1", "bench-press", "Bench Press", 5, 60.0, performed).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	set := &models.Set{
		ID: "s-1", UserID: "u-1", ExerciseID: "bench-press", ExerciseName: "Bench Press",
		Reps: 5, Weight: 60, PerformedAt: performed,
	}
	got, err := repo.Create(context.Background(), set)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+sets`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Set{ID: "s-1", UserID: "u-1", ExerciseName: "Bench Press", Reps: 5, PerformedAt: time.Now()})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByOwner_NoFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*user_id,\s*exercise_id,\s*exercise_name,\s*reps,\s*weight,\s*performed_at,\s*created_at\s+FROM\s+sets\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+performed_at\s+DESC\s*$`

	now := time.Now()
	rows := sqlmock.NewRows(setColumns).
		AddRow("s-2", "u-1", "", "Squat", 8, 100.0, now, now).
		AddRow("s-1", "u-1", "bench-press", "Bench Press", 5, 60.0, now.Add(-time.Hour), now)
	mock.ExpectQuery(q).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1", Filter{})
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(got))
	}
	if got[0].ExerciseName != "Squat" || got[1].ExerciseName != "Bench Press" {
		t.Fatalf("unexpected order: %q, %q", got[0].ExerciseName, got[1].ExerciseName)
	}
}

func TestListByOwner_NameFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+exercise_name\s*=\s*\$2\s+ORDER\s+BY\s+performed_at\s+DESC`

	rows := sqlmock.NewRows(setColumns).
		AddRow("s-1", "u-1", "bench-press", "Bench Press", 5, 60.0, time.Now(), time.Now())
	mock.ExpectQuery(q).WithArgs("u-1", "Bench Press").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1", Filter{ExerciseName: "Bench Press"})
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByOwner_IDFilter(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+AND\s+exercise_id\s*=\s*\$2\s+ORDER\s+BY\s+performed_at\s+DESC`

	mock.ExpectQuery(q).WithArgs("u-1", "bench-press").
		WillReturnRows(sqlmock.NewRows(setColumns))

	got, err := repo.ListByOwner(context.Background(), "u-1", Filter{ExerciseID: "bench-press"})
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(got))
	}
}

func TestListByOwner_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("db err"))

	_, err := repo.ListByOwner(context.Background(), "u-1", Filter{})
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
