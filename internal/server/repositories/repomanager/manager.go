// Package repomanager owns the process-wide database handle. It opens the
// connection, constructs the repositories, and runs migrations at startup.
package repomanager

import (
	"database/sql"

	"github.com/dpavlenko/liftlog/internal/server/repositories/exercises"
	"github.com/dpavlenko/liftlog/internal/server/repositories/sets"
	"github.com/dpavlenko/liftlog/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Sets() sets.Repository
	Exercises() exercises.Repository
	Close() error
}
