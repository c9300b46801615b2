package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dpavlenko/liftlog/internal/server/migrations"
	"github.com/dpavlenko/liftlog/internal/server/repositories/exercises"
	"github.com/dpavlenko/liftlog/internal/server/repositories/sets"
	"github.com/dpavlenko/liftlog/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	sets      sets.Repository
	exercises exercises.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Sets() sets.Repository {
	return m.sets
}

func (m *PostgresRepositoryManager) Exercises() exercises.Repository {
	return m.exercises
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// NewPostgresRepositoryManager opens the database, verifies connectivity and
// applies migrations. Any failure here is a startup failure: the server must
// not serve traffic against an unreachable or unmigrated database.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		sets:      sets.NewPostgresRepository(db),
		exercises: exercises.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
