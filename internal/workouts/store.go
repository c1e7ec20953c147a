// ABOUTME: Workout log store: in-memory workouts written through to a BlobStore.
// ABOUTME: Every mutation is persisted before the in-memory copy changes.
package workouts

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Store holds the workout log. It is safe for concurrent use.
type Store struct {
	blobs storage.BlobStore

	mu       sync.RWMutex
	workouts map[string]*models.Workout
}

// Open loads every persisted workout. Blobs that fail to decode are deleted.
// When seed is true and the log has never been seeded, the sample workouts
// are written into an empty log.
func Open(blobs storage.BlobStore, seed bool) (*Store, error) {
	s := &Store{blobs: blobs, workouts: make(map[string]*models.Workout)}

	keys, err := blobs.Keys(storage.WorkoutPrefix)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	for _, key := range keys {
		w, err := storage.GetJSON[models.Workout](blobs, key)
		if err != nil && !errors.Is(err, storage.ErrCorrupt) {
			return nil, fmt.Errorf("read workout %s: %w", key, err)
		}
		if err != nil || w.ID == "" {
			logrus.WithField("key", key).WithError(err).Warn("dropping unreadable workout")
			if derr := blobs.Delete(key); derr != nil {
				return nil, fmt.Errorf("delete corrupt workout %s: %w", key, derr)
			}
			continue
		}
		s.workouts[w.ID] = w
	}

	if seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) seed() error {
	_, err := s.blobs.Get(storage.KeySeeded)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("read seed marker: %w", err)
	}

	if len(s.workouts) == 0 {
		for _, w := range models.SampleWorkouts() {
			w := w
			if err := s.persist(&w); err != nil {
				return err
			}
			s.workouts[w.ID] = &w
		}
		logrus.WithField("count", len(s.workouts)).Info("seeded sample workouts")
	}
	return s.blobs.Set(storage.KeySeeded, []byte("true"))
}

// List returns copies of every workout in no particular order.
func (s *Store) List() []*models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Workout, 0, len(s.workouts))
	for _, w := range s.workouts {
		out = append(out, w.Clone())
	}
	return out
}

// ListByDate returns copies of the workouts on exactly date.
func (s *Store) ListByDate(date models.Date) []*models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Workout
	for _, w := range s.workouts {
		if w.Date == date {
			out = append(out, w.Clone())
		}
	}
	return out
}

// Get returns a copy of the workout with the given ID.
func (s *Store) Get(id string) (*models.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workouts[id]
	if !ok {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return w.Clone(), nil
}

// Upsert replaces the workout with the same ID or inserts a new one.
// Missing workout, exercise and set IDs are generated. A blank name, an
// unparseable date or a negative set value is rejected and nothing is stored.
func (s *Store) Upsert(w *models.Workout) (*models.Workout, error) {
	if err := validate(w); err != nil {
		return nil, err
	}

	next := w.Clone()
	if next.ID == "" {
		next.ID = models.NewID(models.WorkoutIDPrefix)
	}
	for i := range next.Exercises {
		ex := &next.Exercises[i]
		if ex.ID == "" {
			ex.ID = models.NewID(models.ExerciseIDPrefix)
		}
		for j := range ex.Sets {
			if ex.Sets[j].ID == "" {
				ex.Sets[j].ID = models.NewID(models.SetIDPrefix)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.workouts[next.ID] = next
	return next.Clone(), nil
}

// Remove deletes a workout. Removing an unknown ID is a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workouts[id]; !ok {
		return nil
	}
	if err := s.blobs.Delete(storage.WorkoutKey(id)); err != nil {
		return fmt.Errorf("delete workout %s: %w", id, err)
	}
	delete(s.workouts, id)
	return nil
}

// AddExercise appends an exercise holding one zero-valued set.
func (s *Store) AddExercise(workoutID, name string) (*models.WorkoutExercise, error) {
	var added models.WorkoutExercise
	err := s.mutate(workoutID, func(w *models.Workout) error {
		added = models.NewWorkoutExercise(name)
		w.Exercises = append(w.Exercises, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// RemoveExercise drops an exercise and its sets. An unknown exercise is a no-op.
func (s *Store) RemoveExercise(workoutID, exerciseID string) error {
	return s.mutate(workoutID, func(w *models.Workout) error {
		for i := range w.Exercises {
			if w.Exercises[i].ID == exerciseID {
				w.Exercises = append(w.Exercises[:i], w.Exercises[i+1:]...)
				return nil
			}
		}
		return errUnchanged
	})
}

// AddSet appends a zero-valued set to an exercise.
func (s *Store) AddSet(workoutID, exerciseID string) (*models.SetDetail, error) {
	var added models.SetDetail
	err := s.mutate(workoutID, func(w *models.Workout) error {
		ex := w.Exercise(exerciseID)
		if ex == nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
		}
		added = models.NewSetDetail()
		ex.Sets = append(ex.Sets, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// RemoveSet drops a set. An already absent set is a no-op.
func (s *Store) RemoveSet(workoutID, exerciseID, setID string) error {
	return s.mutate(workoutID, func(w *models.Workout) error {
		ex := w.Exercise(exerciseID)
		if ex == nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
		}
		for i := range ex.Sets {
			if ex.Sets[i].ID == setID {
				ex.Sets = append(ex.Sets[:i], ex.Sets[i+1:]...)
				return nil
			}
		}
		return errUnchanged
	})
}

// UpdateSet sets the weight and reps of an existing set.
func (s *Store) UpdateSet(workoutID, exerciseID, setID string, weight float64, reps int) error {
	if weight < 0 || reps < 0 {
		return fmt.Errorf("%w: weight and reps must not be negative", ErrInvalidInput)
	}
	return s.mutate(workoutID, func(w *models.Workout) error {
		ex := w.Exercise(exerciseID)
		if ex == nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
		}
		for i := range ex.Sets {
			if ex.Sets[i].ID == setID {
				ex.Sets[i].Weight = weight
				ex.Sets[i].Reps = reps
				return nil
			}
		}
		return fmt.Errorf("set %s: %w", setID, ErrNotFound)
	})
}

// Import upserts every workout, keeping their IDs. Every entry is checked
// first, so a batch with any invalid entry stores nothing. It returns how
// many were stored.
func (s *Store) Import(workouts []*models.Workout) (int, error) {
	for i, w := range workouts {
		if err := validate(w); err != nil {
			return 0, fmt.Errorf("import workout %d: %w", i+1, err)
		}
	}

	n := 0
	for _, w := range workouts {
		if _, err := s.Upsert(w); err != nil {
			return n, fmt.Errorf("import workout %s: %w", w.ID, err)
		}
		n++
	}
	return n, nil
}

func validate(w *models.Workout) error {
	if w == nil || !w.HasName() {
		return fmt.Errorf("%w: workout name is required", ErrInvalidInput)
	}
	if !w.Date.Valid() {
		return fmt.Errorf("%w: invalid date %q (use YYYY-MM-DD)", ErrInvalidInput, w.Date)
	}
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Weight < 0 || set.Reps < 0 {
				return fmt.Errorf("%w: weight and reps must not be negative", ErrInvalidInput)
			}
		}
	}
	return nil
}

// Dates returns the set of days that have at least one workout.
func (s *Store) Dates() map[models.Date]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make(map[models.Date]bool, len(s.workouts))
	for _, w := range s.workouts {
		dates[w.Date] = true
	}
	return dates
}

// ExerciseNames returns every distinct exercise name, sorted.
func (s *Store) ExerciseNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, w := range s.workouts {
		for _, ex := range w.Exercises {
			if !seen[ex.Name] {
				seen[ex.Name] = true
				names = append(names, ex.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// SortByDateDesc orders workouts newest first, breaking ties by ID.
func SortByDateDesc(ws []*models.Workout) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].Date != ws[j].Date {
			return ws[i].Date > ws[j].Date
		}
		return ws[i].ID < ws[j].ID
	})
}

// errUnchanged tells mutate the edit found nothing to change.
var errUnchanged = errors.New("unchanged")

// mutate applies fn to a copy of the workout, persists it, then swaps it in.
func (s *Store) mutate(workoutID string, fn func(w *models.Workout) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.workouts[workoutID]
	if !ok {
		return fmt.Errorf("workout %s: %w", workoutID, ErrNotFound)
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.workouts[workoutID] = next
	return nil
}

func (s *Store) persist(w *models.Workout) error {
	if err := storage.SetJSON(s.blobs, storage.WorkoutKey(w.ID), w); err != nil {
		return fmt.Errorf("persist workout %s: %w", w.ID, err)
	}
	return nil
}
