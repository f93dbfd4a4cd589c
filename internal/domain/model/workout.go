package model

import (
	"time"
)

// Workout is a single exercise entry owned by one user.
type Workout struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	Title     string    `json:"title"`
	Reps      int       `json:"reps"`
	Load      float64   `json:"load"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutPatch holds the fields of a partial update; nil means "leave unchanged".
type WorkoutPatch struct {
	Title *string
	Reps  *int
	Load  *float64
}

// Empty reports whether the patch changes nothing.
func (p WorkoutPatch) Empty() bool {
	return p.Title == nil && p.Reps == nil && p.Load == nil
}

// Apply returns a copy of w with the patch fields merged in.
func (p WorkoutPatch) Apply(w Workout) Workout {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Reps != nil {
		w.Reps = *p.Reps
	}
	if p.Load != nil {
		w.Load = *p.Load
	}
	return w
}
