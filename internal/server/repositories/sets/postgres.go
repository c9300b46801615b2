package sets

import (
	"context"
	"fmt"

	"github.com/dpavlenko/liftlog/internal/dbx"
	"github.com/dpavlenko/liftlog/internal/server/models"
)

// PostgresRepository implements the workout record store over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, set *models.Set) (*models.Set, error) {

	query :=
		`INSERT INTO sets (id, user_id, exercise_id, exercise_name, reps, weight, performed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		set.ID, set.UserID, set.ExerciseID, set.ExerciseName, set.Reps, set.Weight, set.PerformedAt).
		Scan(&set.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return set, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, filter Filter) ([]*models.Set, error) {

	query :=
		`SELECT id, user_id, exercise_id, exercise_name, reps, weight, performed_at, created_at FROM sets
		 WHERE user_id = $1`
	args := []any{ownerID}

	if filter.ExerciseName != "" {
		args = append(args, filter.ExerciseName)
		query += fmt.Sprintf(" AND exercise_name = $%d", len(args))
	}
	if filter.ExerciseID != "" {
		args = append(args, filter.ExerciseID)
		query += fmt.Sprintf(" AND exercise_id = $%d", len(args))
	}

	query += " ORDER BY performed_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Set
	for rows.Next() {
		var item models.Set
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ExerciseID, &item.ExerciseName,
			&item.Reps, &item.Weight, &item.PerformedAt, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
