// Command seed downloads the free-exercise-db dataset and upserts it into
// the local exercise catalog. Reseeding is idempotent: entries are keyed by
// a slug derived from the exercise name.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dpavlenko/liftlog/internal/dbx"
	"github.com/dpavlenko/liftlog/internal/server/models"
	"github.com/dpavlenko/liftlog/internal/server/repositories/exercises"
	"github.com/dpavlenko/liftlog/internal/server/repositories/repomanager"
)

const (
	defaultDatasetURL = "https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/dist/exercises.json"
	defaultImageBase  = "https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/dist/images/"
)

// datasetExercise mirrors the free-exercise-db JSON document.
type datasetExercise struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Equipment        string   `json:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Images           []string `json:"images"`
}

func main() {

	var (
		dsn        string
		datasetURL string
		timeout    int
	)
	flag.StringVar(&dsn, "d", "", "database DSN")
	flag.StringVar(&datasetURL, "u", defaultDatasetURL, "exercise dataset URL")
	flag.IntVar(&timeout, "t", 60, "download timeout (in seconds)")
	flag.Parse()

	if dsn == "" {
		log.Fatal("database DSN is required (-d)")
	}

	ctx := context.Background()

	if err := seed(ctx, dsn, datasetURL, time.Duration(timeout)*time.Second); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func seed(ctx context.Context, dsn, datasetURL string, timeout time.Duration) error {

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer repos.Close()

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, datasetURL, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("dataset download error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset download error: unexpected status %d", resp.StatusCode)
	}

	var entries []datasetExercise
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return fmt.Errorf("dataset decode error: %w", err)
	}

	// one transaction: a partially applied reseed leaves the catalog torn
	seeded := 0
	err = dbx.WithTx(ctx, repos.Conn(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := exercises.NewPostgresRepository(tx)

		for _, e := range entries {
			if e.Name == "" {
				continue
			}

			exercise := &models.Exercise{
				ID:               models.SlugID(e.Name),
				Name:             e.Name,
				Category:         e.Category,
				PrimaryMuscles:   e.PrimaryMuscles,
				SecondaryMuscles: e.SecondaryMuscles,
				Instructions:     e.Instructions,
			}
			if e.Equipment != "" {
				exercise.Equipment = []string{e.Equipment}
			}
			for _, img := range e.Images {
				exercise.Images = append(exercise.Images, defaultImageBase+img)
			}

			if err := repo.Upsert(ctx, exercise); err != nil {
				return fmt.Errorf("upsert error for %q: %w", e.Name, err)
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d exercises", seeded)
	return nil
}
