package models

import "time"

// Set is one logged exercise performance. UserID is stamped from the
// authenticated identity at creation and is immutable: no exposed
// operation updates or deletes a set.
type Set struct {
	ID           string
	UserID       string
	ExerciseID   string
	ExerciseName string
	Reps         int
	Weight       float64
	PerformedAt  time.Time
	CreatedAt    time.Time
}
