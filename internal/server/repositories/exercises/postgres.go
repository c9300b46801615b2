package exercises

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dpavlenko/liftlog/internal/dbx"
	"github.com/dpavlenko/liftlog/internal/server/models"
)

// PostgresRepository implements the catalog store over a dbx.DBTX
// (*sql.DB or *sql.Tx). String-list fields are stored as jsonb.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, exercise *models.Exercise) error {

	query := `
		INSERT INTO exercises (id, name, category, equipment, primary_muscles, secondary_muscles, instructions, images, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			equipment = EXCLUDED.equipment,
			primary_muscles = EXCLUDED.primary_muscles,
			secondary_muscles = EXCLUDED.secondary_muscles,
			instructions = EXCLUDED.instructions,
			images = EXCLUDED.images,
			updated_at = now();
	`

	equipment, err := marshalList(exercise.Equipment)
	if err != nil {
		return err
	}
	primary, err := marshalList(exercise.PrimaryMuscles)
	if err != nil {
		return err
	}
	secondary, err := marshalList(exercise.SecondaryMuscles)
	if err != nil {
		return err
	}
	instructions, err := marshalList(exercise.Instructions)
	if err != nil {
		return err
	}
	images, err := marshalList(exercise.Images)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		exercise.ID, exercise.Name, exercise.Category,
		equipment, primary, secondary, instructions, images)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.Exercise, error) {

	query :=
		`SELECT id, name, category, equipment, primary_muscles, secondary_muscles, instructions, images FROM exercises
		 WHERE TRUE`
	var args []any

	if filter.Muscle != "" {
		args = append(args, filter.Muscle)
		query += fmt.Sprintf(" AND primary_muscles ? $%d", len(args))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Equipment != "" {
		args = append(args, filter.Equipment)
		query += fmt.Sprintf(" AND equipment ? $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d", len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Exercise
	for rows.Next() {
		var item models.Exercise
		var equipment, primary, secondary, instructions, images []byte
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category,
			&equipment, &primary, &secondary, &instructions, &images,
		); err != nil {
			return nil, err
		}
		for _, pair := range []struct {
			raw []byte
			dst *[]string
		}{
			{equipment, &item.Equipment},
			{primary, &item.PrimaryMuscles},
			{secondary, &item.SecondaryMuscles},
			{instructions, &item.Instructions},
			{images, &item.Images},
		} {
			if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
				return nil, fmt.Errorf("corrupt catalog row %s: %w", item.ID, err)
			}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func marshalList(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}
