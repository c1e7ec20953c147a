// ABOUTME: Workout, WorkoutExercise, and SetDetail models for the training log.
// ABOUTME: A workout owns its exercises, an exercise owns its sets.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// ID prefixes identify the kind of record an identifier belongs to.
const (
	WorkoutIDPrefix  = "w"
	ExerciseIDPrefix = "e"
	SetIDPrefix      = "s"
)

// NewID returns a fresh identifier with the given kind prefix.
// Random UUIDs keep identifiers unique even when many are created in the
// same millisecond.
func NewID(prefix string) string {
	return prefix + uuid.NewString()
}

// SetDetail is one set of an exercise: weight in kg and repetitions.
type SetDetail struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// NewSetDetail creates a zero-valued set with a generated ID.
func NewSetDetail() SetDetail {
	return SetDetail{ID: NewID(SetIDPrefix)}
}

// Volume returns weight × reps for the set.
func (s SetDetail) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// WorkoutExercise is a named exercise within a workout.
type WorkoutExercise struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Sets []SetDetail `json:"sets"`
}

// NewWorkoutExercise creates an exercise holding a single zero-valued set.
func NewWorkoutExercise(name string) WorkoutExercise {
	return WorkoutExercise{
		ID:   NewID(ExerciseIDPrefix),
		Name: name,
		Sets: []SetDetail{NewSetDetail()},
	}
}

// Volume returns the summed volume of all sets.
func (e WorkoutExercise) Volume() float64 {
	var total float64
	for _, s := range e.Sets {
		total += s.Volume()
	}
	return total
}

// MaxWeight returns the heaviest set weight, or 0 when there are no sets.
func (e WorkoutExercise) MaxWeight() float64 {
	var heaviest float64
	for _, s := range e.Sets {
		if s.Weight > heaviest {
			heaviest = s.Weight
		}
	}
	return heaviest
}

// Workout represents one logged training session on a calendar day.
type Workout struct {
	ID        string            `json:"id"`
	Date      Date              `json:"date"`
	Name      string            `json:"name"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// NewWorkout creates an empty workout for the given day.
func NewWorkout(name string, date Date) *Workout {
	return &Workout{
		ID:        NewID(WorkoutIDPrefix),
		Date:      date,
		Name:      name,
		Exercises: []WorkoutExercise{},
	}
}

// WithExercise appends an exercise with the given sets.
func (w *Workout) WithExercise(name string, sets ...SetDetail) *Workout {
	ex := WorkoutExercise{ID: NewID(ExerciseIDPrefix), Name: name, Sets: []SetDetail{}}
	for _, s := range sets {
		if s.ID == "" {
			s.ID = NewID(SetIDPrefix)
		}
		ex.Sets = append(ex.Sets, s)
	}
	w.Exercises = append(w.Exercises, ex)
	return w
}

// HasName reports whether the workout has a non-blank name.
func (w *Workout) HasName() bool {
	return strings.TrimSpace(w.Name) != ""
}

// Exercise returns the exercise with the given ID, or nil.
func (w *Workout) Exercise(id string) *WorkoutExercise {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i]
		}
	}
	return nil
}

// FindExerciseByName returns the first exercise whose name matches exactly.
func (w *Workout) FindExerciseByName(name string) *WorkoutExercise {
	for i := range w.Exercises {
		if w.Exercises[i].Name == name {
			return &w.Exercises[i]
		}
	}
	return nil
}

// Volume returns the summed volume of every set in the workout.
func (w *Workout) Volume() float64 {
	var total float64
	for _, ex := range w.Exercises {
		total += ex.Volume()
	}
	return total
}

// Clone returns a deep copy so callers can edit without touching the original.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	out := &Workout{ID: w.ID, Date: w.Date, Name: w.Name}
	if w.Exercises != nil {
		out.Exercises = make([]WorkoutExercise, len(w.Exercises))
		for i, ex := range w.Exercises {
			out.Exercises[i] = WorkoutExercise{ID: ex.ID, Name: ex.Name, Sets: cloneSlice(ex.Sets)}
		}
	}
	return out
}
