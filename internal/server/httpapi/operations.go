package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dpavlenko/liftlog/internal/common"
	"github.com/dpavlenko/liftlog/internal/server/models"
	"github.com/dpavlenko/liftlog/internal/server/repositories/exercises"
	"github.com/dpavlenko/liftlog/internal/server/repositories/sets"
	"github.com/dpavlenko/liftlog/internal/server/services"
)

// Wire DTOs. Field names follow the original client vocabulary.

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authPayloadDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type setDTO struct {
	ID           string  `json:"id"`
	ExerciseID   string  `json:"exerciseId,omitempty"`
	ExerciseName string  `json:"exerciseName"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	Date         string  `json:"date"`
}

type exerciseDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category,omitempty"`
	Equipment        []string `json:"equipment"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
	Images           []string `json:"images"`
}

func toAuthPayloadDTO(res *services.AuthResult) authPayloadDTO {
	return authPayloadDTO{
		Token: res.Token,
		User:  userDTO{ID: res.User.ID, Email: res.User.Email},
	}
}

func toSetDTO(set *models.Set) setDTO {
	return setDTO{
		ID:           set.ID,
		ExerciseID:   set.ExerciseID,
		ExerciseName: set.ExerciseName,
		Reps:         set.Reps,
		Weight:       set.Weight,
		Date:         set.PerformedAt.UTC().Format(time.RFC3339),
	}
}

func toExerciseDTO(ex *models.Exercise) exerciseDTO {
	dto := exerciseDTO{
		ID:               ex.ID,
		Name:             ex.Name,
		Category:         ex.Category,
		Equipment:        ex.Equipment,
		PrimaryMuscles:   ex.PrimaryMuscles,
		SecondaryMuscles: ex.SecondaryMuscles,
		Instructions:     ex.Instructions,
		Images:           ex.Images,
	}
	// empty lists serialize as [], not null
	for _, p := range []*[]string{&dto.Equipment, &dto.PrimaryMuscles, &dto.SecondaryMuscles, &dto.Instructions, &dto.Images} {
		if *p == nil {
			*p = []string{}
		}
	}
	return dto
}

func decodeVars(vars json.RawMessage, dst any) error {
	if len(vars) == 0 {
		return nil
	}
	if err := json.Unmarshal(vars, dst); err != nil {
		return fmt.Errorf("%w: malformed variables", common.ErrorInvalidInput)
	}
	return nil
}

type credentialsVars struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(ctx context.Context, vars json.RawMessage) (any, error) {
	var v credentialsVars
	if err := decodeVars(vars, &v); err != nil {
		return nil, err
	}

	res, err := s.users.Register(ctx, v.Email, v.Password)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "identity registered", "email", res.User.Email)
	return toAuthPayloadDTO(res), nil
}

func (s *Server) handleLogin(ctx context.Context, vars json.RawMessage) (any, error) {
	var v credentialsVars
	if err := decodeVars(vars, &v); err != nil {
		return nil, err
	}

	res, err := s.users.Login(ctx, v.Email, v.Password)
	if err != nil {
		return nil, err
	}

	return toAuthPayloadDTO(res), nil
}

type exercisesVars struct {
	Muscle    string `json:"muscle"`
	Name      string `json:"name"`
	Equipment string `json:"equipment"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

func (s *Server) handleExercises(ctx context.Context, vars json.RawMessage) (any, error) {
	var v exercisesVars
	if err := decodeVars(vars, &v); err != nil {
		return nil, err
	}

	entries := s.catalog.List(ctx, exercises.Filter{
		Muscle:    v.Muscle,
		Name:      v.Name,
		Equipment: v.Equipment,
		Limit:     v.Limit,
		Offset:    v.Offset,
	})

	result := make([]exerciseDTO, 0, len(entries))
	for _, ex := range entries {
		result = append(result, toExerciseDTO(ex))
	}
	return result, nil
}

type setsVars struct {
	ExerciseName string `json:"exerciseName"`
	ExerciseID   string `json:"exerciseId"`
}

func (s *Server) handleSets(ctx context.Context, vars json.RawMessage) (any, error) {
	var v setsVars
	if err := decodeVars(vars, &v); err != nil {
		return nil, err
	}

	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return nil, common.ErrorUnauthenticated
	}

	records, err := s.sets.History(ctx, claims.UserID, sets.Filter{
		ExerciseName: v.ExerciseName,
		ExerciseID:   v.ExerciseID,
	})
	if err != nil {
		return nil, err
	}

	result := make([]setDTO, 0, len(records))
	for _, set := range records {
		result = append(result, toSetDTO(set))
	}
	return result, nil
}

type addWorkoutVars struct {
	ExerciseName string  `json:"exerciseName"`
	ExerciseID   string  `json:"exerciseId"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
}

func (s *Server) handleAddWorkout(ctx context.Context, vars json.RawMessage) (any, error) {
	var v addWorkoutVars
	if err := decodeVars(vars, &v); err != nil {
		return nil, err
	}

	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return nil, common.ErrorUnauthenticated
	}

	set, err := s.sets.LogSet(ctx, claims.UserID, services.LogSetInput{
		ExerciseName: v.ExerciseName,
		ExerciseID:   v.ExerciseID,
		Reps:         v.Reps,
		Weight:       v.Weight,
	})
	if err != nil {
		return nil, err
	}

	return toSetDTO(set), nil
}
